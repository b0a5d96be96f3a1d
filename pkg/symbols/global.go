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

// ModuleTable is one module's contribution to a GlobalSymbolTable: its own
// arena plus the subset of root-scope symbols marked exported.
type ModuleTable struct {
	Name     string
	Arena    *Arena
	Exported []SymbolID
}

// GlobalSymbolTable aggregates per-module root scopes (§3.4). Modules are
// kept in an insertion-ordered slice (never a bare Go map) so that
// cross-module lookup order is deterministic, satisfying §5's "no
// iteration over unordered maps in user-visible output".
type GlobalSymbolTable struct {
	order   []string
	modules map[string]*ModuleTable
}

// NewGlobalSymbolTable constructs an empty table.
func NewGlobalSymbolTable() *GlobalSymbolTable {
	return &GlobalSymbolTable{modules: make(map[string]*ModuleTable)}
}

// AddModule registers a module's completed arena (after its own passes 1-6
// have run, per §4.3's `analyzeMultiple`) and computes its exported subset.
func (g *GlobalSymbolTable) AddModule(name string, arena *Arena) *ModuleTable {
	root := arena.Scope(arena.Root())

	mt := &ModuleTable{Name: name, Arena: arena}

	for _, symName := range root.Names() {
		id := root.byName[symName]
		if arena.Symbol(id).IsExported {
			mt.Exported = append(mt.Exported, id)
		}
	}

	g.modules[name] = mt
	g.order = append(g.order, name)

	return mt
}

// Module returns a previously registered module table.
func (g *GlobalSymbolTable) Module(name string) (*ModuleTable, bool) {
	mt, ok := g.modules[name]
	return mt, ok
}

// Modules returns the registered module names in insertion order.
func (g *GlobalSymbolTable) Modules() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)

	return out
}

// Lookup resolves `name` as seen from `fromModule` (§3.4 cross-module
// `lookup`): in-module lookup first (any symbol kind, via the module's own
// root scope), then the exports of every *other* module in insertion
// order, returning the first match.
func (g *GlobalSymbolTable) Lookup(fromModule, name string) (moduleName string, id SymbolID, ok bool) {
	if mt, exists := g.modules[fromModule]; exists {
		if sid, found := mt.Arena.LookupLocal(mt.Arena.Root(), name); found {
			return fromModule, sid, true
		}
	}

	for _, modName := range g.order {
		if modName == fromModule {
			continue
		}

		mt := g.modules[modName]

		for _, sid := range mt.Exported {
			if mt.Arena.Symbol(sid).Name == name {
				return modName, sid, true
			}
		}
	}

	return "", NoSymbol, false
}
