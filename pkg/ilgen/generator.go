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

// Package ilgen lowers an annotated AST to the pkg/il intermediate
// representation (§4.4): three-address expression lowering, short-circuit
// branch/merge for `&&`/`||`, constant folding, structural statement
// lowering to blocks and terminators, and intrinsic calls resolved through
// pkg/il's registry.
package ilgen

import (
	log "github.com/sirupsen/logrus"

	"github.com/blendsdk/blend65core/pkg/analysis"
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/il"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/symbols"
)

// Options configures the generator (§6 build options, `optimization`/
// `debug` are consumed downstream by pkg/optimizer; ilgen itself has no
// knobs beyond whether to fold constants, which is always on per §4.4).
type Options struct{}

// loopTargets records the jump targets `break`/`continue` resolve to
// inside the loop currently being lowered.
type loopTargets struct {
	breakTarget    il.BlockID
	continueTarget il.BlockID
}

// generator carries the mutable state threaded through one module's
// lowering (mirrors pkg/analysis's analyzer struct: one value per module,
// reset per function).
type generator struct {
	bag    source.Bag
	arena  *symbols.Arena
	module *il.Module

	fn    *il.Function
	block *il.Block

	// locals binds a name to the operand currently representing its value.
	// Binding a name to a fresh operand on every assignment is a lightweight
	// substitution discipline (valid here because Blend65 has no pointers
	// into locals): no physical register copy is ever required for a
	// reassignment of an immutable virtual register.
	locals map[string]il.Operand
	loops  []loopTargets

	curScope symbols.ScopeID
	mapDecls map[string]*ast.MapDecl
}

// Generate lowers one analyzed program to an ILModule (§4.4). The caller is
// expected to have run a successful analysis.Analyze first; Generate does
// not re-run type checking.
func Generate(program *ast.Program, result *analysis.AnalysisResult, _ Options) (*il.Module, []source.Diagnostic) {
	g := &generator{
		arena:    result.SymbolTable,
		module:   il.NewModule(program.Module.Name),
		mapDecls: map[string]*ast.MapDecl{},
	}

	log.WithField("module", program.Module.Name).Debug("lowering module to IL")

	for _, d := range program.Module.Declarations {
		if m, ok := d.(*ast.MapDecl); ok {
			g.mapDecls[m.Name] = m
		}
	}

	for _, d := range program.Module.Declarations {
		switch decl := d.(type) {
		case *ast.VarDecl:
			g.lowerGlobal(decl)
		case *ast.FuncDecl:
			g.lowerFunction(decl)
		case *ast.MapDecl:
			g.lowerMap(decl)
		case *ast.ImportDecl:
			// Cross-module symbol resolution is a linker-level concern;
			// nothing to lower here.
		}
	}

	if entry, ok := g.arena.Lookup(g.arena.Root(), "main"); ok {
		if g.arena.Symbol(entry).Kind == symbols.Function {
			g.module.EntryPoint = "main"
		}
	}

	return g.module, g.bag.Diagnostics()
}

func (g *generator) lowerGlobal(d *ast.VarDecl) {
	var init any
	if d.Init != nil {
		if v, _, ok := tryFold(d.Init); ok {
			init = v
		}
	}

	g.module.AddGlobal(il.Global{
		Name:         d.Name,
		Type:         g.resolveDeclType(d),
		Exported:     d.IsExported,
		InitialValue: init,
	})
}

// lowerMap registers a `@map` declaration's field layout with the module as
// a set of exported byte/word globals at fixed offsets, so the address
// computation in expr.go has a single source of truth (the AST node
// itself, via g.mapDecls) rather than a second derived table.
func (g *generator) lowerMap(d *ast.MapDecl) {
	for _, f := range d.Fields {
		g.module.AddGlobal(il.Global{
			Name:     d.Name + "." + f.Name,
			Type:     g.resolveTypeRef(f.Type),
			Exported: d.IsExported,
		})
	}
}

func (g *generator) resolveDeclType(d *ast.VarDecl) il.Type {
	if d.Type != nil {
		return g.resolveTypeRef(*d.Type)
	}

	if d.Init != nil {
		if t, ok := exprType(d.Init); ok {
			return toILType(t)
		}
	}

	return il.VoidType
}
