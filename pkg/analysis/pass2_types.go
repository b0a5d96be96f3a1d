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

// pass2TypeResolution is §4.3 pass 2. Explicit type annotations are
// resolved against the type system and attached to the symbol pass 1
// declared; variables with no annotation are left Unknown here and
// inferred from their initializer in pass 3.
func (a *analyzer) pass2TypeResolution(mod *ast.Module) {
	a.funcSig = make(map[string]types.Info)
	a.mapFields = make(map[string]map[string]fieldInfo)

	for _, decl := range mod.Declarations {
		a.resolveTop(decl)
	}
}

type fieldInfo struct {
	Type   types.Info
	Offset int
}

func (a *analyzer) resolveTop(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		a.resolveVarType(d)
	case *ast.FuncDecl:
		a.resolveFuncType(d)
	case *ast.MapDecl:
		a.resolveMapType(d)
	}
}

func (a *analyzer) resolveTypeRef(ref *ast.TypeRef) (types.Info, bool) {
	if ref.CallbackReturn != nil {
		params := make([]types.Info, len(ref.CallbackParams))
		names := make([]string, len(ref.CallbackParams))

		for i := range ref.CallbackParams {
			p, ok := a.resolveTypeRef(&ref.CallbackParams[i])
			if !ok {
				return types.Unknown, false
			}

			params[i] = p
			names[i] = ref.CallbackParams[i].Name
		}

		ret, ok := a.resolveTypeRef(ref.CallbackReturn)
		if !ok {
			return types.Unknown, false
		}

		return types.Callback(params, names, ret), true
	}

	if ref.IsArray {
		elem, ok := types.Builtin(ref.Name)
		if !ok {
			return types.Unknown, false
		}

		size := -1
		if ref.ArraySize != nil {
			size = *ref.ArraySize
		}

		return types.Array(elem, size), true
	}

	return types.Builtin(ref.Name)
}

func (a *analyzer) symbolOf(node ast.Node) (symbols.SymbolID, bool) {
	an, ok := node.(interface {
		Get(ast.MetadataKey) (any, bool)
	})
	if !ok {
		return symbols.NoSymbol, false
	}

	v, ok := an.Get(ast.MetaSymbol)
	if !ok {
		return symbols.NoSymbol, false
	}

	id, ok := v.(symbols.SymbolID)

	return id, ok
}

func (a *analyzer) updateSymbolType(node ast.Node, t types.Info) {
	id, ok := a.symbolOf(node)
	if !ok {
		return
	}

	sym := a.arena.Symbol(id)
	sym.Type = t
	a.arena.Update(id, sym)
}

func (a *analyzer) resolveVarType(d *ast.VarDecl) {
	if d.Type == nil {
		return
	}

	t, ok := a.resolveTypeRef(d.Type)
	if !ok {
		a.bag.Add(source.Errorf(source.CodeUnknownType, d.Type.Loc, "unknown type: %s", d.Type.Name))
		t = types.Unknown
	}

	a.updateSymbolType(d, t)
}

func (a *analyzer) resolveFuncType(d *ast.FuncDecl) {
	paramTypes := make([]types.Info, len(d.Params))
	paramNames := make([]string, len(d.Params))

	for i := range d.Params {
		p := &d.Params[i]

		t, ok := a.resolveTypeRef(&p.Type)
		if !ok {
			a.bag.Add(source.Errorf(source.CodeUnknownType, p.Type.Loc, "unknown type: %s", p.Type.Name))
			t = types.Unknown
		}

		a.updateSymbolType(p, t)
		paramTypes[i] = t
		paramNames[i] = p.Name
	}

	retType, ok := a.resolveTypeRef(&d.ReturnType)
	if !ok {
		a.bag.Add(source.Errorf(source.CodeUnknownType, d.ReturnType.Loc, "unknown type: %s", d.ReturnType.Name))
		retType = types.Unknown
	}

	sig := types.Callback(paramTypes, paramNames, retType)
	a.updateSymbolType(d, sig)
	a.funcSig[d.Name] = sig

	a.resolveStatementTypes(d.Body)
}

func (a *analyzer) resolveMapType(d *ast.MapDecl) {
	fields := make(map[string]fieldInfo, len(d.Fields))

	for i := range d.Fields {
		f := &d.Fields[i]

		t, ok := a.resolveTypeRef(&f.Type)
		if !ok {
			a.bag.Add(source.Errorf(source.CodeUnknownType, f.Type.Loc, "unknown type: %s", f.Type.Name))
			t = types.Unknown
		}

		fields[f.Name] = fieldInfo{Type: t, Offset: f.Offset}
	}

	a.mapFields[d.Name] = fields
}

// resolveStatementTypes recurses through a function body resolving local
// variable annotations; mirrors pass 1's structural traversal without
// re-declaring anything.
func (a *analyzer) resolveStatementTypes(stmts []ast.Statement) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.Block:
			a.resolveStatementTypes(st.Statements)
		case *ast.LocalVarStmt:
			a.resolveVarType(&st.Decl)
		case *ast.IfStmt:
			a.resolveStatementTypes(st.Then.Statements)
			if st.Else != nil {
				a.resolveStatementTypes(st.Else.Statements)
			}
		case *ast.WhileStmt:
			a.resolveStatementTypes(st.Body.Statements)
		case *ast.ForStmt:
			a.resolveStatementTypes(st.Body.Statements)
		}
	}
}
