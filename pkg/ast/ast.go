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

// Package ast defines the typed AST contract the semantic core consumes
// (§6 "Inputs consumed"). The real lexer/parser is explicitly out of scope
// (§1); this package is the interface a front end must produce, plus the
// metadata-map mechanism passes use to annotate nodes without mutating each
// other's results (§5 "Mutation discipline").
//
// Per DESIGN NOTES §9, nodes are a tagged-variant (closed set of concrete
// struct types implementing `Node`) rather than a virtual-dispatch
// class hierarchy: every pass does an exhaustive type switch over the
// concrete kinds instead of double-dispatching through per-node methods.
package ast

import "github.com/blendsdk/blend65core/pkg/source"

// Node is implemented by every declaration, statement and expression.
type Node interface {
	// Location returns the source span this node was parsed from.
	Location() source.Location
}

// MetadataKey is a closed enumeration of the keys passes may attach to a
// node's metadata map (§5). Each pass appends its own findings under its
// own key(s) and never overwrites another pass's key.
type MetadataKey uint8

const (
	// MetaExpressionType records the resolved types.Info of an expression
	// (pass 3, type checking).
	MetaExpressionType MetadataKey = iota
	// MetaCoercion records the types.CoercionKind applied at an implicit
	// conversion site (pass 7.g, type-coercion analysis).
	MetaCoercion
	// MetaComplexity records the *ComplexityScore computed by pass 7.f.
	MetaComplexity
	// MetaConstantValue records a compile-time-folded constant value,
	// attached by the IL generator when lowering compile-time intrinsics.
	MetaConstantValue
	// MetaSymbol records the symbols.SymbolID a declaration node was bound
	// to by pass 1, so later passes can re-attach findings to the same
	// symbol without re-declaring it.
	MetaSymbol
	// MetaScope records the symbols.ScopeID a function/block/for-statement
	// node opened during pass 1, so later passes can walk the same scope
	// tree instead of allocating a parallel one.
	MetaScope
)

// Metadata is the single typed map a pass appends findings to, keyed by a
// closed MetadataKey enum rather than untyped strings (DESIGN NOTES §9).
type Metadata map[MetadataKey]any

// Annotated is embedded by every concrete node to provide metadata storage
// without requiring every node type to reimplement it.
type Annotated struct {
	Loc  source.Location
	Meta Metadata
}

// Location implements Node.
func (a *Annotated) Location() source.Location { return a.Loc }

// Set records a finding under `key`, creating the metadata map on first use.
func (a *Annotated) Set(key MetadataKey, value any) {
	if a.Meta == nil {
		a.Meta = make(Metadata)
	}

	a.Meta[key] = value
}

// Get retrieves a finding previously recorded under `key`.
func (a *Annotated) Get(key MetadataKey) (any, bool) {
	v, ok := a.Meta[key]
	return v, ok
}
