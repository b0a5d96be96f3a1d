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
	"strings"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/symbols"
)

// UsageClass classifies a variable/parameter's observed usage (§4.3.b).
type UsageClass uint8

const (
	Unused UsageClass = iota
	WriteOnly
	ReadOnly
	Live
)

// UsageRecord is one symbol's usage counters (§4.3.b).
type UsageRecord struct {
	Symbol         symbols.SymbolID
	Name           string
	ReadCount      int
	WriteCount     int
	HotPathAccess  int
	MaxLoopDepth   int
	Class          UsageClass
}

func classify(reads, writes int) UsageClass {
	switch {
	case reads == 0 && writes == 0:
		return Unused
	case writes > 0 && reads == 0:
		return WriteOnly
	case reads > 0 && writes == 0:
		return ReadOnly
	default:
		return Live
	}
}

// runUsage is §4.3.b: counts reads/writes/hot-path accesses per
// variable/parameter declared in any analyzed function, then emits
// unused/write-only warnings, exempting exported symbols, underscore-
// prefixed names, and (when configured) declared loop counters.
func (a *analyzer) runUsage(funcs []*ast.FuncDecl, result *AdvancedAnalysisResult) {
	counts := map[symbols.SymbolID]*UsageRecord{}

	// Seed every local variable and parameter so that ones never accessed
	// are classified Unused.
	for i, sym := range a.arena.AllSymbols() {
		if (sym.Kind == symbols.Variable || sym.Kind == symbols.Parameter) && sym.Scope != a.arena.Root() {
			counts[symbols.SymbolID(i)] = &UsageRecord{}
		}
	}

	for _, fd := range funcs {
		scope := a.scopeOf(fd, a.arena.Current())
		u := &usageWalker{a: a, counts: counts}
		u.statements(scope, fd.Body, 0)
	}

	for id, rec := range counts {
		rec.Symbol = id
		rec.Name = a.arena.Symbol(id).Name
		rec.Class = classify(rec.ReadCount, rec.WriteCount)
		result.Usage[rec.Name] = rec

		a.reportUsage(id, rec)
	}
}

func (a *analyzer) reportUsage(id symbols.SymbolID, rec *UsageRecord) {
	sym := a.arena.Symbol(id)

	if sym.IsExported || strings.HasPrefix(sym.Name, "_") {
		return
	}

	if a.opts.IgnoreLoopCounters && rec.MaxLoopDepth > 0 && rec.WriteCount > 0 && rec.ReadCount == 0 {
		return
	}

	switch rec.Class {
	case Unused:
		a.bag.Add(source.Warnf(source.CodeUnusedVariable, sym.Location, "%s is declared but never used", sym.Name))
	case WriteOnly:
		a.bag.Add(source.Warnf(source.CodeWriteOnlyVariable, sym.Location, "%s is written but never read", sym.Name))
	}
}

type usageWalker struct {
	a      *analyzer
	counts map[symbols.SymbolID]*UsageRecord
}

func (u *usageWalker) entry(id symbols.SymbolID) *UsageRecord {
	if r, ok := u.counts[id]; ok {
		return r
	}

	r := &UsageRecord{}
	u.counts[id] = r

	return r
}

func (u *usageWalker) recordRead(scope symbols.ScopeID, name string, loopDepth int) {
	id, ok := u.a.arena.Lookup(scope, name)
	if !ok {
		return
	}

	r := u.entry(id)
	r.ReadCount++

	if loopDepth > 0 {
		r.HotPathAccess++
	}

	if loopDepth > r.MaxLoopDepth {
		r.MaxLoopDepth = loopDepth
	}
}

func (u *usageWalker) recordWrite(scope symbols.ScopeID, name string, loopDepth int) {
	id, ok := u.a.arena.Lookup(scope, name)
	if !ok {
		return
	}

	r := u.entry(id)
	r.WriteCount++

	if loopDepth > r.MaxLoopDepth {
		r.MaxLoopDepth = loopDepth
	}
}

func (u *usageWalker) exprReads(scope symbols.ScopeID, e ast.Expression, loopDepth int) {
	ast.WalkExpression(e, func(sub ast.Expression) {
		if id, ok := sub.(*ast.Identifier); ok {
			u.recordRead(scope, id.Name, loopDepth)
		}
	})
}

func (u *usageWalker) statements(scope symbols.ScopeID, stmts []ast.Statement, loopDepth int) {
	for _, s := range stmts {
		u.statement(scope, s, loopDepth)
	}
}

func (u *usageWalker) statement(scope symbols.ScopeID, s ast.Statement, loopDepth int) {
	switch st := s.(type) {
	case *ast.Block:
		u.statements(u.a.scopeOf(st, scope), st.Statements, loopDepth)
	case *ast.LocalVarStmt:
		if st.Decl.Init != nil {
			u.exprReads(scope, st.Decl.Init, loopDepth)
			u.recordWrite(scope, st.Decl.Name, loopDepth)
		}
	case *ast.AssignStmt:
		u.exprReads(scope, st.Value, loopDepth)

		if id, ok := st.Target.(*ast.Identifier); ok {
			u.recordWrite(scope, id.Name, loopDepth)
		} else {
			u.exprReads(scope, st.Target, loopDepth)
		}
	case *ast.ExprStmt:
		u.exprReads(scope, st.Expr, loopDepth)
	case *ast.IfStmt:
		u.exprReads(scope, st.Cond, loopDepth)
		u.statements(u.a.scopeOf(st.Then, scope), st.Then.Statements, loopDepth)

		if st.Else != nil {
			u.statements(u.a.scopeOf(st.Else, scope), st.Else.Statements, loopDepth)
		}
	case *ast.WhileStmt:
		u.exprReads(scope, st.Cond, loopDepth)
		u.statements(u.a.scopeOf(st, scope), st.Body.Statements, loopDepth+1)
	case *ast.ForStmt:
		u.exprReads(scope, st.Start, loopDepth)
		u.exprReads(scope, st.End, loopDepth)

		if st.Step != nil {
			u.exprReads(scope, st.Step, loopDepth)
		}

		bodyScope := u.a.scopeOf(st, scope)
		u.recordWrite(bodyScope, st.Counter, loopDepth+1)
		u.statements(bodyScope, st.Body.Statements, loopDepth+1)
	case *ast.ReturnStmt:
		if st.Value != nil {
			u.exprReads(scope, st.Value, loopDepth)
		}
	}
}
