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
package symbols

import "github.com/blendsdk/blend65core/pkg/source"

// Arena owns every Scope and Symbol constructed for one module compilation,
// plus the scope stack used to drive `EnterScope`/`ExitScope` structurally
// while walking declarations. Scopes and symbols are arena-allocated and
// live for the lifetime of one compilation (§3.4).
type Arena struct {
	scopes  []*Scope
	symbols []Symbol
	stack   []ScopeID
	root    ScopeID
}

// NewArena constructs an arena with a single, already-entered module root
// scope.
func NewArena() *Arena {
	a := &Arena{}
	root := a.allocScope(noParent, ModuleScopeKind)
	a.root = root
	a.stack = []ScopeID{root}

	return a
}

// Root returns the module's root scope id.
func (a *Arena) Root() ScopeID { return a.root }

// Current returns the scope currently on top of the scope stack.
func (a *Arena) Current() ScopeID {
	return a.stack[len(a.stack)-1]
}

func (a *Arena) allocScope(parent ScopeID, kind ScopeKind) ScopeID {
	id := ScopeID(len(a.scopes))
	s := newScope(id, parent, kind)
	a.scopes = append(a.scopes, s)

	if parent != noParent {
		ps := a.scopes[parent]
		ps.Children = append(ps.Children, id)
	}

	return id
}

// Scope dereferences a ScopeID.
func (a *Arena) Scope(id ScopeID) *Scope {
	return a.scopes[id]
}

// Symbol dereferences a SymbolID.
func (a *Arena) Symbol(id SymbolID) Symbol {
	return a.symbols[id]
}

// EnterScope creates a new child of the current scope, pushes it on the
// scope stack, and returns its id (§4.1 `enterScope`).
func (a *Arena) EnterScope(kind ScopeKind) ScopeID {
	id := a.allocScope(a.Current(), kind)
	a.stack = append(a.stack, id)

	return id
}

// EnterFunctionScope is a dedicated helper matching §4.1's
// `enterFunctionScope`; parameters are declared inside the returned scope,
// never the module scope.
func (a *Arena) EnterFunctionScope() ScopeID {
	return a.EnterScope(FunctionScopeKind)
}

// EnterBlockScope is a dedicated helper matching §4.1's `enterBlockScope`.
func (a *Arena) EnterBlockScope() ScopeID {
	return a.EnterScope(BlockScopeKind)
}

// ExitScope pops the scope stack, sealing the popped scope (§5). Panics if
// the stack would become empty, per §4.1 ("asserting the stack is
// non-empty").
func (a *Arena) ExitScope() ScopeID {
	if len(a.stack) <= 1 {
		panic("ExitScope: cannot pop the module root scope")
	}

	n := len(a.stack) - 1
	id := a.stack[n]
	a.stack = a.stack[:n]
	a.scopes[id].sealed = true

	return id
}

// Declare inserts a symbol into the current scope. On success it returns
// the new SymbolID. On a duplicate name within the same scope, the new
// symbol is discarded and a *DuplicateDeclarationError is returned — this
// is the §4.1 "recoverable error: the new symbol is discarded ... analysis
// continues" semantics; callers are expected to turn this into a
// `source.Diagnostic` at the CodeDuplicateDeclaration code and keep going.
func (a *Arena) Declare(sym Symbol) (SymbolID, error) {
	scope := a.scopes[sym.Scope]
	if _, exists := scope.byName[sym.Name]; exists {
		return NoSymbol, &DuplicateDeclarationError{sym.Name}
	}

	id := SymbolID(len(a.symbols))
	a.symbols = append(a.symbols, sym)
	scope.byName[sym.Name] = id
	scope.order = append(scope.order, sym.Name)

	return id, nil
}

// LookupLocal checks only the given scope (§4.1 `lookupLocal`).
func (a *Arena) LookupLocal(scope ScopeID, name string) (SymbolID, bool) {
	id, ok := a.scopes[scope].byName[name]
	return id, ok
}

// Lookup walks from `scope` up through parents to the module root,
// returning the nearest hit (§4.1 `lookup`, §8 property 1).
func (a *Arena) Lookup(scope ScopeID, name string) (SymbolID, bool) {
	for cur := scope; ; {
		if id, ok := a.LookupLocal(cur, name); ok {
			return id, true
		}

		s := a.scopes[cur]
		if s.Parent == noParent {
			return NoSymbol, false
		}

		cur = s.Parent
	}
}

// DeclareVariable is a convenience wrapper used by Pass 1 / Pass 2.
func (a *Arena) DeclareVariable(scope ScopeID, name string, kind Kind, loc source.Location) (SymbolID, error) {
	return a.Declare(Symbol{Name: name, Kind: kind, Scope: scope, Location: loc})
}

// Update replaces the stored copy of an already-declared symbol, e.g. to
// attach a resolved types.Info from pass 2 onto the symbol pass 1 declared.
// This is not a relaxation of the append-only scope discipline (§5): no new
// binding is introduced and no name can be looked up under a different
// SymbolID than before.
func (a *Arena) Update(id SymbolID, sym Symbol) {
	a.symbols[id] = sym
}

// AllSymbols returns every symbol declared in this arena, indexed by
// SymbolID, for passes that need to iterate the whole table (e.g. unused-
// variable reporting).
func (a *Arena) AllSymbols() []Symbol {
	out := make([]Symbol, len(a.symbols))
	copy(out, a.symbols)

	return out
}

// ScopeCount returns the number of allocated scopes.
func (a *Arena) ScopeCount() int { return len(a.scopes) }
