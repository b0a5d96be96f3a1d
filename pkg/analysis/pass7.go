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

import "github.com/blendsdk/blend65core/pkg/ast"

// AdvancedAnalysisResult aggregates the dataflow family from §4.3 pass 7
// (a-g), gated by Options.RunAdvancedAnalysis. Each sub-analysis also
// appends its findings to the shared diagnostic bag, preserving the §5
// ordering guarantee that later-pass diagnostics sort after earlier ones.
type AdvancedAnalysisResult struct {
	DefiniteAssignment map[string]*FunctionAssignmentState
	Usage              map[string]*UsageRecord
	Liveness           map[string]*LivenessResult
	DeadCode           []DeadCodeFinding
	Purity             map[string]*PurityResult
	Complexity         map[ast.Expression]*ComplexityScore
	SpillCandidates    []ast.Expression
	Coercions          []CoercionSite
}

// pass7Advanced runs the optional dataflow family over every function in
// declaration order, sharing the symbol table, type system, CFG map and
// call graph built by passes 1-6 (§4.3 pass 7).
func (a *analyzer) pass7Advanced(mod *ast.Module) *AdvancedAnalysisResult {
	result := &AdvancedAnalysisResult{
		DefiniteAssignment: make(map[string]*FunctionAssignmentState),
		Usage:              make(map[string]*UsageRecord),
		Liveness:           make(map[string]*LivenessResult),
		Purity:             make(map[string]*PurityResult),
		Complexity:         make(map[ast.Expression]*ComplexityScore),
	}

	var funcs []*ast.FuncDecl

	for _, decl := range mod.Declarations {
		if fd, ok := decl.(*ast.FuncDecl); ok {
			funcs = append(funcs, fd)
		}
	}

	for _, fd := range funcs {
		scope := a.scopeOf(fd, a.arena.Current())

		result.DefiniteAssignment[fd.Name] = a.runDefiniteAssignment(fd, scope)
		result.Liveness[fd.Name] = a.runLiveness(fd)
		result.DeadCode = append(result.DeadCode, a.runDeadCode(fd)...)

		for expr, score := range a.runComplexity(fd, scope) {
			result.Complexity[expr] = score

			if score.RegisterPressure >= 3 {
				result.SpillCandidates = append(result.SpillCandidates, expr)
			}
		}

		result.Coercions = append(result.Coercions, a.runCoercion(fd, scope)...)
	}

	a.runUsage(funcs, result)
	a.runPurity(funcs, result)

	return result
}
