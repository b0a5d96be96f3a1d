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
)

// pass1SymbolTable is §4.3 pass 1: a single declaration-only walk. It never
// looks at expressions -- VarDecl.Init, call arguments, conditions, etc are
// left untouched until pass 3. Every declared node gets MetaSymbol, and
// every node that opens a scope gets MetaScope, so later passes can
// re-enter the same scope/symbol tree without re-declaring anything.
func (a *analyzer) pass1SymbolTable(mod *ast.Module) {
	for _, decl := range mod.Declarations {
		a.declareTop(decl)
		a.stats.TotalDeclarations++
	}
}

func (a *analyzer) declareTop(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		a.declareVar(d, a.arena.Current())
	case *ast.FuncDecl:
		a.declareFunc(d)
	case *ast.MapDecl:
		a.declareMap(d)
	case *ast.ImportDecl:
		a.declareImport(d)
	}
}

func (a *analyzer) declareVar(d *ast.VarDecl, scope symbols.ScopeID) symbols.SymbolID {
	kind := symbols.Variable
	if d.IsParameter {
		kind = symbols.Parameter
	}

	sym := symbols.Symbol{
		Name:           d.Name,
		Kind:           kind,
		IsExported:     d.IsExported,
		IsConst:        d.IsConst,
		Scope:          scope,
		Location:       d.Loc,
		HasInitializer: d.Init != nil,
	}

	id, err := a.arena.Declare(sym)
	if err != nil {
		a.bag.Add(source.Errorf(source.CodeDuplicateDeclaration, d.Loc, "duplicate declaration: %s", d.Name))
		return symbols.NoSymbol
	}

	d.Set(ast.MetaSymbol, id)

	return id
}

func (a *analyzer) declareFunc(d *ast.FuncDecl) {
	sym := symbols.Symbol{
		Name:       d.Name,
		Kind:       symbols.Function,
		IsExported: d.IsExported,
		Scope:      a.arena.Current(),
		Location:   d.Loc,
	}

	id, err := a.arena.Declare(sym)
	if err != nil {
		a.bag.Add(source.Errorf(source.CodeDuplicateDeclaration, d.Loc, "duplicate declaration: %s", d.Name))
		return
	}

	d.Set(ast.MetaSymbol, id)
	a.funcSyms[d.Name] = id
	a.funcDecl[d.Name] = d
	a.calls.Declare(d.Name, d.Loc)

	scope := a.arena.EnterFunctionScope()
	d.Set(ast.MetaScope, scope)

	for i := range d.Params {
		p := &d.Params[i]
		psym := symbols.Symbol{
			Name:           p.Name,
			Kind:           symbols.Parameter,
			Scope:          a.arena.Current(),
			Location:       p.Loc,
			HasInitializer: true,
		}

		pid, err := a.arena.Declare(psym)
		if err != nil {
			a.bag.Add(source.Errorf(source.CodeDuplicateDeclaration, p.Loc, "duplicate parameter: %s", p.Name))
			continue
		}

		p.Set(ast.MetaSymbol, pid)
	}

	a.declareStatements(d.Body)
	a.arena.ExitScope()
}

func (a *analyzer) declareMap(d *ast.MapDecl) {
	sym := symbols.Symbol{
		Name:         d.Name,
		Kind:         symbols.MapVariable,
		IsExported:   d.IsExported,
		Scope:        a.arena.Current(),
		Location:     d.Loc,
		StorageClass: symbols.Map,
	}

	id, err := a.arena.Declare(sym)
	if err != nil {
		a.bag.Add(source.Errorf(source.CodeDuplicateDeclaration, d.Loc, "duplicate declaration: %s", d.Name))
		return
	}

	d.Set(ast.MetaSymbol, id)
}

func (a *analyzer) declareImport(d *ast.ImportDecl) {
	for _, name := range d.Names {
		sym := symbols.Symbol{
			Name:     name,
			Kind:     symbols.ImportedSymbol,
			Scope:    a.arena.Current(),
			Location: d.Loc,
		}

		if _, err := a.arena.Declare(sym); err != nil {
			a.bag.Add(source.Errorf(source.CodeDuplicateDeclaration, d.Loc, "duplicate declaration: %s", name))
		}
	}
}

// declareStatements recurses through statement structure creating block
// scopes and declaring locals, without evaluating any expression.
func (a *analyzer) declareStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		a.declareStatement(s)
	}
}

func (a *analyzer) declareStatement(s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		scope := a.arena.EnterBlockScope()
		st.Set(ast.MetaScope, scope)
		a.declareStatements(st.Statements)
		a.arena.ExitScope()
	case *ast.LocalVarStmt:
		a.declareVar(&st.Decl, a.arena.Current())
	case *ast.IfStmt:
		a.declareBranch(st.Then)
		if st.Else != nil {
			a.declareBranch(st.Else)
		}
	case *ast.WhileStmt:
		scope := a.arena.EnterBlockScope()
		st.Set(ast.MetaScope, scope)
		a.declareStatements(st.Body.Statements)
		a.arena.ExitScope()
	case *ast.ForStmt:
		scope := a.arena.EnterBlockScope()
		st.Set(ast.MetaScope, scope)

		counterSym := symbols.Symbol{
			Name:           st.Counter,
			Kind:           symbols.Variable,
			Scope:          a.arena.Current(),
			Location:       st.Loc,
			HasInitializer: true,
		}

		if _, err := a.arena.Declare(counterSym); err != nil {
			a.bag.Add(source.Errorf(source.CodeDuplicateDeclaration, st.Loc, "duplicate declaration: %s", st.Counter))
		}

		a.declareStatements(st.Body.Statements)
		a.arena.ExitScope()
	}
}

func (a *analyzer) declareBranch(b *ast.Block) {
	scope := a.arena.EnterBlockScope()
	b.Set(ast.MetaScope, scope)
	a.declareStatements(b.Statements)
	a.arena.ExitScope()
}
