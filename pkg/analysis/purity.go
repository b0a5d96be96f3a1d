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
	"github.com/blendsdk/blend65core/pkg/symbols"
)

// ImpurityReason names why a function is not pure (§4.3.e).
type ImpurityReason uint8

const (
	ReasonNone ImpurityReason = iota
	GlobalWrite
	ArrayWrite
	IntrinsicSideEffect
	UnknownBody
)

// pureIntrinsics never contaminate purity even though they're calls
// (§4.3.e): "hi, lo, len do not contaminate".
var pureIntrinsics = map[string]bool{"hi": true, "lo": true, "length": true, "sizeof": true}

// impureIntrinsics have hardware side effects (§4.3.e).
var impureIntrinsics = map[string]bool{"poke": true, "pokew": true}

// PurityResult is one function's purity classification (§4.3.e).
type PurityResult struct {
	FunctionName   string
	Pure           bool
	Reasons        []ImpurityReason
	ReadsGlobals   bool
	WritesGlobals  bool
	WritesArrays   bool
	CallsIntrinsic bool
	Callees        []string
}

// runPurity is §4.3.e: seeds direct impurity per function, then propagates
// impurity through the call graph by fixed point -- a caller of any impure
// callee becomes impure, even though neither self- nor mutual recursion is
// itself impurity (recursion is separately prohibited by pass 6, so any
// cycle here is already a compile error; propagation still terminates
// because FindCycles/AddCall bookkeeping is finite).
func (a *analyzer) runPurity(funcs []*ast.FuncDecl, result *AdvancedAnalysisResult) {
	moduleVars := a.moduleScopeVariables()

	for _, fd := range funcs {
		result.Purity[fd.Name] = a.seedPurity(fd, moduleVars)
	}

	changed := true
	for changed {
		changed = false

		for _, fd := range funcs {
			pr := result.Purity[fd.Name]
			if !pr.Pure {
				continue
			}

			for _, callee := range pr.Callees {
				if cp, ok := result.Purity[callee]; ok && !cp.Pure {
					pr.Pure = false
					changed = true

					break
				}
			}
		}
	}
}

// moduleScopeVariables reports which module-root-scope names are
// variables/map-variables (candidates for "global" in §4.3.e's sense).
func (a *analyzer) moduleScopeVariables() map[string]bool {
	out := map[string]bool{}

	for _, name := range a.arena.Scope(a.arena.Root()).Names() {
		if id, ok := a.arena.LookupLocal(a.arena.Root(), name); ok {
			sym := a.arena.Symbol(id)
			if sym.Kind == symbols.Variable || sym.Kind == symbols.MapVariable {
				out[name] = true
			}
		}
	}

	return out
}

func (a *analyzer) seedPurity(fd *ast.FuncDecl, moduleVars map[string]bool) *PurityResult {
	pr := &PurityResult{FunctionName: fd.Name, Pure: true}

	if len(fd.Body) == 0 {
		return pr
	}

	calleeSeen := map[string]bool{}

	walkFunctionExprs(fd.Body, func(e ast.Expression) {
		call, ok := e.(*ast.CallExpr)
		if !ok {
			return
		}

		name := call.Callee.Name

		if impureIntrinsics[name] {
			pr.CallsIntrinsic = true
			pr.Reasons = append(pr.Reasons, IntrinsicSideEffect)
			pr.Pure = false
		}

		if pureIntrinsics[name] {
			return
		}

		if _, isUser := a.funcDecl[name]; isUser {
			if !calleeSeen[name] {
				calleeSeen[name] = true
				pr.Callees = append(pr.Callees, name)
			}
		}
	})

	for _, s := range fd.Body {
		a.scanPurityStatement(s, moduleVars, pr)
	}

	if pr.ReadsGlobals && a.opts.StrictGlobalReads {
		pr.Pure = false
	}

	return pr
}

func (a *analyzer) scanPurityStatement(s ast.Statement, moduleVars map[string]bool, pr *PurityResult) {
	markReads := func(e ast.Expression) {
		ast.WalkExpression(e, func(sub ast.Expression) {
			if id, ok := sub.(*ast.Identifier); ok && moduleVars[id.Name] {
				pr.ReadsGlobals = true
			}
		})
	}

	ast.WalkStatements([]ast.Statement{s}, func(st ast.Statement) {
		if assign, ok := st.(*ast.AssignStmt); ok {
			a.scanPurityTarget(assign.Target, moduleVars, pr)
			markReads(assign.Value)

			if _, isIdent := assign.Target.(*ast.Identifier); !isIdent {
				markReads(assign.Target)
			}

			return
		}

		for _, e := range exprsIn(st) {
			markReads(e)
		}
	})
}

func (a *analyzer) scanPurityTarget(target ast.Expression, moduleVars map[string]bool, pr *PurityResult) {
	switch t := target.(type) {
	case *ast.Identifier:
		if moduleVars[t.Name] {
			pr.WritesGlobals = true
			pr.Reasons = append(pr.Reasons, GlobalWrite)
			pr.Pure = false
		}
	case *ast.IndexExpr:
		pr.WritesArrays = true
		pr.Reasons = append(pr.Reasons, ArrayWrite)
		pr.Pure = false
	case *ast.MemberExpr:
		pr.WritesGlobals = true
		pr.Reasons = append(pr.Reasons, GlobalWrite)
		pr.Pure = false
	}
}
