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

// AssignState classifies how definitely a local has been written at a
// given program point (§4.3.a).
type AssignState uint8

const (
	Unassigned AssignState = iota
	MaybeAssigned
	DefinitelyAssigned
)

// FunctionAssignmentState is the final per-local state after analyzing one
// function's body (§4.3.a).
type FunctionAssignmentState struct {
	FunctionName string
	Final        map[symbols.SymbolID]AssignState
}

// joinAssignState implements §4.3.a's merge rule: `Definitely ∧ Definitely
// = Definitely`; otherwise `Maybe` -- except when both paths never touch
// the variable at all, which stays Unassigned.
func joinAssignState(x, y AssignState) AssignState {
	if x == DefinitelyAssigned && y == DefinitelyAssigned {
		return DefinitelyAssigned
	}

	if x == Unassigned && y == Unassigned {
		return Unassigned
	}

	return MaybeAssigned
}

type daWalker struct {
	a    *analyzer
	fn   *ast.FuncDecl
	seen map[symbols.SymbolID]AssignState
}

// runDefiniteAssignment is §4.3.a, driven structurally over the AST:
// parameters start DefinitelyAssigned, `if`/`while`/`for` fork and rejoin
// state at their merge points, and each read is checked against the
// current state.
func (a *analyzer) runDefiniteAssignment(fd *ast.FuncDecl, scope symbols.ScopeID) *FunctionAssignmentState {
	w := &daWalker{a: a, fn: fd, seen: map[symbols.SymbolID]AssignState{}}

	for i := range fd.Params {
		if id, ok := a.symbolOf(&fd.Params[i]); ok {
			w.seen[id] = DefinitelyAssigned
		}
	}

	w.statements(scope, fd.Body)

	return &FunctionAssignmentState{FunctionName: fd.Name, Final: w.seen}
}

func (w *daWalker) clone() map[symbols.SymbolID]AssignState {
	cp := make(map[symbols.SymbolID]AssignState, len(w.seen))
	for k, v := range w.seen {
		cp[k] = v
	}

	return cp
}

func (w *daWalker) join(other map[symbols.SymbolID]AssignState) {
	merged := make(map[symbols.SymbolID]AssignState, len(w.seen))

	for id, st := range w.seen {
		merged[id] = joinAssignState(st, other[id])
	}

	for id, st := range other {
		if _, ok := merged[id]; !ok {
			merged[id] = joinAssignState(Unassigned, st)
		}
	}

	w.seen = merged
}

func (w *daWalker) record(id symbols.SymbolID) {
	if id == symbols.NoSymbol {
		return
	}

	w.seen[id] = DefinitelyAssigned
}

func (w *daWalker) checkRead(scope symbols.ScopeID, id *ast.Identifier) {
	sid, ok := w.a.arena.Lookup(scope, id.Name)
	if !ok {
		return
	}

	switch w.seen[sid] {
	case Unassigned:
		w.a.bag.Add(source.Errorf(source.CodeUsedBeforeAssigned, id.Loc, "%s used before assignment", id.Name))
	case MaybeAssigned:
		w.a.bag.Add(source.Warnf(source.CodePossiblyUninitialized, id.Loc, "%s possibly uninitialized", id.Name))
	}
}

// checkReadsIn walks an expression checking every identifier read (not the
// assignment target of an AssignStmt, which is handled by the caller).
func (w *daWalker) checkReadsIn(scope symbols.ScopeID, e ast.Expression) {
	ast.WalkExpression(e, func(sub ast.Expression) {
		if id, ok := sub.(*ast.Identifier); ok {
			w.checkRead(scope, id)
		}
	})
}

func (w *daWalker) statements(scope symbols.ScopeID, stmts []ast.Statement) {
	for _, s := range stmts {
		w.statement(scope, s)
	}
}

func (w *daWalker) statement(scope symbols.ScopeID, s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		w.statements(w.a.scopeOf(st, scope), st.Statements)
	case *ast.LocalVarStmt:
		if st.Decl.Init != nil {
			w.checkReadsIn(scope, st.Decl.Init)
		}

		if id, ok := w.a.symbolOf(&st.Decl); ok && st.Decl.Init != nil {
			w.record(id)
		}
	case *ast.AssignStmt:
		w.checkReadsIn(scope, st.Value)

		if id, ok := st.Target.(*ast.Identifier); ok {
			if sid, found := w.a.arena.Lookup(scope, id.Name); found {
				w.record(sid)
			}
		} else {
			w.checkReadsIn(scope, st.Target)
		}
	case *ast.ExprStmt:
		w.checkReadsIn(scope, st.Expr)
	case *ast.IfStmt:
		w.checkReadsIn(scope, st.Cond)

		entry := w.clone()
		thenScope := w.a.scopeOf(st.Then, scope)
		w.statements(thenScope, st.Then.Statements)
		thenExit := w.seen

		if st.Else != nil {
			w.seen = entry
			elseScope := w.a.scopeOf(st.Else, scope)
			w.statements(elseScope, st.Else.Statements)
			elseExit := w.seen

			w.seen = thenExit
			w.join(elseExit)
		} else {
			w.seen = thenExit
			w.join(entry)
		}
	case *ast.WhileStmt:
		w.checkReadsIn(scope, st.Cond)

		entry := w.clone()
		bodyScope := w.a.scopeOf(st, scope)
		w.statements(bodyScope, st.Body.Statements)
		w.join(entry)
	case *ast.ForStmt:
		w.checkReadsIn(scope, st.Start)
		w.checkReadsIn(scope, st.End)

		if st.Step != nil {
			w.checkReadsIn(scope, st.Step)
		}

		bodyScope := w.a.scopeOf(st, scope)
		if sid, ok := w.a.arena.LookupLocal(bodyScope, st.Counter); ok {
			w.record(sid)
		}

		entry := w.clone()
		w.statements(bodyScope, st.Body.Statements)
		w.join(entry)
	case *ast.ReturnStmt:
		if st.Value != nil {
			w.checkReadsIn(scope, st.Value)
		}
	}
}
