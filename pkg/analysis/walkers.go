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

// exprsIn returns the direct (non-nested-statement) expressions a
// statement carries, e.g. a condition or an assignment's sides. Combined
// with ast.WalkStatements and ast.WalkExpression, this lets a pass visit
// every expression in a function body without reimplementing AST
// traversal per pass.
func exprsIn(s ast.Statement) []ast.Expression {
	switch st := s.(type) {
	case *ast.LocalVarStmt:
		if st.Decl.Init != nil {
			return []ast.Expression{st.Decl.Init}
		}
	case *ast.AssignStmt:
		return []ast.Expression{st.Target, st.Value}
	case *ast.ExprStmt:
		return []ast.Expression{st.Expr}
	case *ast.IfStmt:
		return []ast.Expression{st.Cond}
	case *ast.WhileStmt:
		return []ast.Expression{st.Cond}
	case *ast.ForStmt:
		exprs := []ast.Expression{st.Start, st.End}
		if st.Step != nil {
			exprs = append(exprs, st.Step)
		}

		return exprs
	case *ast.ReturnStmt:
		if st.Value != nil {
			return []ast.Expression{st.Value}
		}
	}

	return nil
}

// walkFunctionExprs visits every expression (and subexpression) appearing
// anywhere in a function body, in source order.
func walkFunctionExprs(body []ast.Statement, visit func(ast.Expression)) {
	ast.WalkStatements(body, func(s ast.Statement) {
		for _, e := range exprsIn(s) {
			ast.WalkExpression(e, visit)
		}
	})
}
