// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package optimizer

import "github.com/blendsdk/blend65core/pkg/il"

// threadTrivialJumps redirects every jump/branch target that names an
// empty block closed only by an unconditional JUMP to that block's own
// target, transitively. The entry block is never threaded through (a
// caller may rely on its id), although its own jump/branch targets are
// redirected like any other block's. It leaves the now-unreferenced trivial blocks
// themselves for eliminateUnreachableBlocks to remove on the next pass
// iteration.
func threadTrivialJumps(f *il.Function) bool {
	redirect := map[il.BlockID]il.BlockID{}

	for _, b := range f.Blocks {
		if b.ID == f.Entry {
			continue
		}

		if len(b.Instructions) == 0 && b.Term == il.TermJump && b.Target != b.ID {
			redirect[b.ID] = b.Target
		}
	}

	if len(redirect) == 0 {
		return false
	}

	resolve := func(id il.BlockID) il.BlockID {
		seen := map[il.BlockID]bool{}

		for {
			next, ok := redirect[id]
			if !ok || seen[id] {
				return id
			}

			seen[id] = true
			id = next
		}
	}

	changed := false

	for _, b := range f.Blocks {
		switch b.Term {
		case il.TermJump:
			if r := resolve(b.Target); r != b.Target {
				b.Target = r
				changed = true
			}
		case il.TermBranch:
			if r := resolve(b.TrueTarget); r != b.TrueTarget {
				b.TrueTarget = r
				changed = true
			}

			if r := resolve(b.FalseTarget); r != b.FalseTarget {
				b.FalseTarget = r
				changed = true
			}
		}
	}

	return changed
}
