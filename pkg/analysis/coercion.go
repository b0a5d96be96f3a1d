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
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/symbols"
	"github.com/blendsdk/blend65core/pkg/types"
)

// CoercionSite is one place pass 3 found an implicit conversion is needed
// (§4.3.g): an assignment, a local's initializer, a `return`, or a call
// argument.
type CoercionSite struct {
	FunctionName string
	Expr         ast.Expression
	From         types.Info
	To           types.Info
	Kind         types.CoercionKind
	Cost         int
}

// runCoercion is §4.3.g: re-walks the bodies pass 3 already type-checked,
// reading back each expression's ast.MetaExpressionType rather than
// recomputing it, and tags every site where the source and target types
// differ with the types.CoercionKind/cycle cost that connects them.
func (a *analyzer) runCoercion(fd *ast.FuncDecl, _ symbols.ScopeID) []CoercionSite {
	var sites []CoercionSite

	consider := func(expr ast.Expression, to types.Info) {
		from, ok := exprType(expr)
		if !ok {
			return
		}

		if from.Name() == to.Name() {
			return
		}

		kind, reachable := types.Classify(from, to)
		if !reachable {
			a.bag.Add(source.Errorf(source.CodeTypeMismatch, expr.Location(),
				"cannot implicitly convert %s to %s", from.Name(), to.Name()))

			return
		}

		if an, ok := expr.(interface{ Set(ast.MetadataKey, any) }); ok {
			an.Set(ast.MetaCoercion, kind)
		}

		sites = append(sites, CoercionSite{
			FunctionName: fd.Name,
			Expr:         expr,
			From:         from,
			To:           to,
			Kind:         kind,
			Cost:         types.CycleCost(kind),
		})
	}

	ast.WalkStatements(fd.Body, func(s ast.Statement) {
		switch st := s.(type) {
		case *ast.LocalVarStmt:
			if st.Decl.Type == nil || st.Decl.Init == nil {
				return
			}

			to, ok := a.resolveTypeRef(st.Decl.Type)
			if ok {
				consider(st.Decl.Init, to)
			}
		case *ast.AssignStmt:
			if to, ok := exprType(st.Target); ok {
				consider(st.Value, to)
			}
		case *ast.ReturnStmt:
			if st.Value == nil {
				return
			}

			if sig, ok := a.funcSig[fd.Name]; ok {
				consider(st.Value, sig.Return())
			}
		}
	})

	walkFunctionExprs(fd.Body, func(e ast.Expression) {
		if call, ok := e.(*ast.CallExpr); ok {
			a.considerCallArgCoercions(call, consider)
		}
	})

	return sites
}

func (a *analyzer) considerCallArgCoercions(call *ast.CallExpr, consider func(ast.Expression, types.Info)) {
	sig, ok := a.funcSig[call.Callee.Name]
	if !ok {
		return
	}

	params := sig.Params()

	for i, arg := range call.Args {
		if i >= len(params) {
			break
		}

		consider(arg, params[i])
	}
}

// exprType reads back the types.Info pass 3 attached to `e` as
// ast.MetaExpressionType.
func exprType(e ast.Expression) (types.Info, bool) {
	an, ok := e.(interface {
		Get(ast.MetadataKey) (any, bool)
	})
	if !ok {
		return types.Unknown, false
	}

	v, ok := an.Get(ast.MetaExpressionType)
	if !ok {
		return types.Unknown, false
	}

	t, ok := v.(types.Info)

	return t, ok
}
