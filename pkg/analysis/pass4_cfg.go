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
	"github.com/blendsdk/blend65core/pkg/cfg"
)

// pass4ControlFlow is §4.3 pass 4: builds and reachability-analyzes one CFG
// per function, in AST declaration order.
func (a *analyzer) pass4ControlFlow(mod *ast.Module) {
	for _, decl := range mod.Declarations {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		g := cfg.Build(fd.Name, fd.Body)
		g.ComputeReachability()
		a.cfgs[fd.Name] = g
	}
}
