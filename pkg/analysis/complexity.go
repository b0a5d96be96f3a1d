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

// ComplexityScore is one expression's register-pressure estimate (§4.3.f),
// consumed by IL generation to choose register-like evaluation versus
// explicit temporaries/spills.
type ComplexityScore struct {
	Score                 int
	RegisterPressure      int
	TreeDepth             int
	OperationCount        int
	ContainsCall          bool
	ContainsMemoryAccess  bool
}

const maxComplexityScore = 100

// runComplexity is §4.3.f: scores every expression reachable from a
// function body, keyed by the *ast.Expression node itself so a downstream
// pass can look a specific site back up.
func (a *analyzer) runComplexity(fd *ast.FuncDecl, _ symbols.ScopeID) map[ast.Expression]*ComplexityScore {
	out := map[ast.Expression]*ComplexityScore{}

	walkFunctionExprs(fd.Body, func(e ast.Expression) {
		scoreExpression(e, out)
	})

	return out
}

// scoreExpression computes (and memoizes into `out`) the bottom-up score
// for `e`, recursing into children first so composite scores are built from
// already-computed child scores -- a node already present in `out` (shared
// via aliasing, which does not happen in this AST, or revisited by an outer
// walkFunctionExprs call) is reused rather than rescored.
func scoreExpression(e ast.Expression, out map[ast.Expression]*ComplexityScore) *ComplexityScore {
	if s, ok := out[e]; ok {
		return s
	}

	var s *ComplexityScore

	switch expr := e.(type) {
	case *ast.Literal:
		s = &ComplexityScore{Score: 1, TreeDepth: 1, OperationCount: 0}
	case *ast.Identifier:
		s = &ComplexityScore{Score: 1, TreeDepth: 1, OperationCount: 0}
	case *ast.UnaryExpr:
		child := scoreExpression(expr.Operand, out)
		s = &ComplexityScore{
			Score:                3 + child.Score,
			RegisterPressure:     child.RegisterPressure,
			TreeDepth:            1 + child.TreeDepth,
			OperationCount:       1 + child.OperationCount,
			ContainsCall:         child.ContainsCall,
			ContainsMemoryAccess: child.ContainsMemoryAccess,
		}
	case *ast.BinaryExpr:
		left := scoreExpression(expr.Left, out)
		right := scoreExpression(expr.Right, out)

		pressure := left.RegisterPressure
		if right.RegisterPressure > pressure {
			pressure = right.RegisterPressure
		}

		if left.RegisterPressure > 1 && right.RegisterPressure > 1 {
			pressure++
		}

		depth := left.TreeDepth
		if right.TreeDepth > depth {
			depth = right.TreeDepth
		}

		s = &ComplexityScore{
			Score:                5 + left.Score + right.Score,
			RegisterPressure:     pressure,
			TreeDepth:            1 + depth,
			OperationCount:       1 + left.OperationCount + right.OperationCount,
			ContainsCall:         left.ContainsCall || right.ContainsCall,
			ContainsMemoryAccess: left.ContainsMemoryAccess || right.ContainsMemoryAccess,
		}
	case *ast.IndexExpr:
		obj := scoreExpression(expr.Array, out)
		idx := scoreExpression(expr.Index, out)

		pressure := obj.RegisterPressure
		if idx.RegisterPressure > pressure {
			pressure = idx.RegisterPressure
		}

		depth := obj.TreeDepth
		if idx.TreeDepth > depth {
			depth = idx.TreeDepth
		}

		s = &ComplexityScore{
			Score:                8 + obj.Score + idx.Score,
			RegisterPressure:     pressure,
			TreeDepth:            1 + depth,
			OperationCount:       1 + obj.OperationCount + idx.OperationCount,
			ContainsMemoryAccess: true,
		}
	case *ast.MemberExpr:
		obj := scoreExpression(expr.Object, out)
		s = &ComplexityScore{
			Score:                8 + obj.Score,
			RegisterPressure:     obj.RegisterPressure,
			TreeDepth:            1 + obj.TreeDepth,
			OperationCount:       1 + obj.OperationCount,
			ContainsMemoryAccess: true,
		}
	case *ast.CallExpr:
		sum := 0
		depth := 0
		maxArgPressure := 0
		ops := 0

		for _, arg := range expr.Args {
			as := scoreExpression(arg, out)
			sum += as.Score
			ops += as.OperationCount

			if as.TreeDepth > depth {
				depth = as.TreeDepth
			}

			if as.RegisterPressure > maxArgPressure {
				maxArgPressure = as.RegisterPressure
			}
		}

		s = &ComplexityScore{
			Score:            12 + sum,
			RegisterPressure: maxArgPressure,
			TreeDepth:        1 + depth,
			OperationCount:   1 + ops,
			ContainsCall:     true,
		}
	default:
		s = &ComplexityScore{Score: 1, TreeDepth: 1}
	}

	if s.Score > maxComplexityScore {
		s.Score = maxComplexityScore
	}

	if s.RegisterPressure > 3 {
		s.RegisterPressure = 3
	}

	out[e] = s

	return s
}
