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
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/callgraph"
)

// pass5CallGraph is §4.3 pass 5: walks every call expression inside every
// function body, adding an edge for each call whose callee is a
// user-defined function. Calls to intrinsics (anything not in funcDecl)
// are skipped, matching §3.6 "Intrinsics do not participate".
func (a *analyzer) pass5CallGraph(mod *ast.Module) {
	for _, decl := range mod.Declarations {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		caller := fd.Name

		walkFunctionExprs(fd.Body, func(e ast.Expression) {
			call, ok := e.(*ast.CallExpr)
			if !ok {
				return
			}

			if _, isUserFunc := a.funcDecl[call.Callee.Name]; isUserFunc {
				a.calls.AddCall(callgraph.CallSite{
					Caller:   caller,
					Callee:   call.Callee.Name,
					Location: call.Loc,
				})
			}
		})
	}
}
