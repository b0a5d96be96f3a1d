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

// Package symbols implements the declaration/scope model (§3.4, §4.1): an
// arena of Scopes and Symbols linked by index (never by pointer) per
// DESIGN NOTES §9's "Scope/symbol back-references" guidance, which avoids
// the owning-cycle that a naive Symbol<->Scope pointer pair would create.
package symbols

import (
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/types"
)

// Kind enumerates the categories of declared symbol (§3.4).
type Kind uint8

const (
	// Variable is a locally or globally declared `let`.
	Variable Kind = iota
	// Parameter is a function parameter.
	Parameter
	// Function is a user-defined function.
	Function
	// Intrinsic is a built-in operation (peek/poke/sizeof/...).
	Intrinsic
	// MapVariable is a `@map` hardware-register-backed declaration.
	MapVariable
	// ImportedSymbol is a symbol brought in from another module's exports.
	ImportedSymbol
)

// StorageClass records where a variable's storage will live in the final
// binary (§3.4); this is a hint consumed by the (out of scope) backend, not
// used to change IL semantics.
type StorageClass uint8

const (
	// RAM is the default: ordinary addressable memory.
	RAM StorageClass = iota
	// ZeroPage requests placement in the target's zero page (§3.9).
	ZeroPage
	// Data places the symbol in a read-only data segment (e.g. string
	// literals, const arrays).
	Data
	// Map indicates a `@map` hardware-register alias; storage is fixed by
	// the map declaration's base address, not allocated by the backend.
	Map
)

// ScopeID indexes the scopes of an Arena.
type ScopeID int

// SymbolID indexes the symbols of an Arena.
type SymbolID int

// NoSymbol is the sentinel SymbolID (-1) meaning "no symbol"; the zero
// value of SymbolID is a valid id.
const NoSymbol SymbolID = -1

// Symbol is a single declared name (§3.4). The `Scope` field is a weak
// back-reference (an index, not an owning pointer): the owning Arena
// entry is the only thing that keeps a Symbol reachable, matching the
// "scopes own their symbols; a symbol is destroyed with its scope" rule.
type Symbol struct {
	Name         string
	Kind         Kind
	IsExported   bool
	IsConst      bool
	Scope        ScopeID
	Location     source.Location
	StorageClass StorageClass
	Type         types.Info
	// HasInitializer records whether a variable was declared with `= expr`;
	// parameters and map variables never do.
	HasInitializer bool
	Metadata       map[string]any
}

// WithMetadata returns a copy of this symbol with the given metadata key
// set. Symbols are treated as append-only once declared (§5 "Mutation
// discipline"); callers replace the stored copy in the arena rather than
// mutating Metadata in place from outside the owning arena.
func (s Symbol) WithMetadata(key string, value any) Symbol {
	cp := s
	cp.Metadata = make(map[string]any, len(s.Metadata)+1)

	for k, v := range s.Metadata {
		cp.Metadata[k] = v
	}

	cp.Metadata[key] = value

	return cp
}
