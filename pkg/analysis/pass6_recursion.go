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
package analysis

import (
	"strings"

	"github.com/blendsdk/blend65core/pkg/source"
)

// pass6RecursionCheck is §4.3 pass 6: recursion (direct or indirect) is a
// hard compile-time error, since the backend uses Static Frame Allocation
// (§9 glossary "SFA") -- every function's locals occupy fixed memory, so a
// recursive call would alias its own frame. Returns the distinct function
// names found on any cycle, for PassResults.RecursionErrors.
func (a *analyzer) pass6RecursionCheck() []string {
	cycles := a.calls.FindCycles()
	if len(cycles) == 0 {
		return nil
	}

	seen := map[string]bool{}

	var named []string

	for _, c := range cycles {
		members := c.Functions[:len(c.Functions)-1] // drop the repeated closing element

		loc := source.Synthetic
		if decl, ok := a.funcDecl[members[0]]; ok {
			loc = decl.Loc
		}

		a.bag.Add(source.Errorf(source.CodeRecursionProhibited, loc,
			"recursion prohibited: %s", strings.Join(members, " -> ")))

		for _, name := range members {
			if !seen[name] {
				seen[name] = true
				named = append(named, name)
			}
		}
	}

	return named
}
