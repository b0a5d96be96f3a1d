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

// eliminateUnreachableBlocks drops every block not reachable from the
// entry block via Successors(), since a block no predecessor can ever
// reach contributes nothing to the function (§4.4's block-structure
// invariants are unaffected: a dropped block was, by definition, never a
// jump/branch target any surviving block still names).
func eliminateUnreachableBlocks(f *il.Function) bool {
	reachable := map[il.BlockID]bool{f.Entry: true}
	queue := []il.BlockID{f.Entry}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		for _, succ := range f.Block(id).Successors() {
			if !reachable[succ] {
				reachable[succ] = true
				queue = append(queue, succ)
			}
		}
	}

	before := len(f.Blocks)
	kept := f.Blocks[:0]

	for _, b := range f.Blocks {
		if reachable[b.ID] {
			kept = append(kept, b)
		}
	}

	f.Blocks = kept

	return len(f.Blocks) != before
}

// eliminateDeadInstructions drops an instruction whose result register is
// never read anywhere in the function and whose opcode has no effect
// beyond producing that result (a fence, a store, a call and every CPU/
// intrinsic opcode with observable side effects are never dropped, even
// when nothing reads their "result").
func eliminateDeadInstructions(f *il.Function) bool {
	used := map[il.RegisterID]bool{}

	mark := func(op il.Operand) {
		if op.Kind == il.OperandRegister {
			used[op.Reg] = true
		}
	}

	for _, b := range f.Blocks {
		for _, inst := range b.Instructions {
			for _, op := range inst.Operands {
				mark(op)
			}
		}

		if b.Term == il.TermBranch && b.Cond != nil {
			mark(*b.Cond)
		}

		if b.Term == il.TermReturn && b.ReturnValue != nil {
			mark(*b.ReturnValue)
		}
	}

	changed := false

	for _, b := range f.Blocks {
		out := b.Instructions[:0]

		for _, inst := range b.Instructions {
			if inst.Result != nil && !used[*inst.Result] && !hasSideEffect(inst.Opcode) {
				changed = true

				continue
			}

			out = append(out, inst)
		}

		b.Instructions = out
	}

	return changed
}

// hasSideEffect reports whether an instruction must be kept regardless of
// whether anything reads its result.
func hasSideEffect(op il.Opcode) bool {
	if op.IsFence() {
		return true
	}

	switch op {
	case il.STORE, il.STORE_GLOBAL, il.STORE_PARAM, il.CALL,
		il.INTRINSIC_POKE, il.INTRINSIC_POKEW,
		il.CPU_SEI, il.CPU_CLI, il.CPU_NOP, il.CPU_BRK,
		il.CPU_PHA, il.CPU_PLA, il.CPU_PHP, il.CPU_PLP:
		return true
	default:
		return false
	}
}
