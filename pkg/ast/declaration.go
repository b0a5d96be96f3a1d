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
package ast

// Declaration is implemented by every top-level or function-local
// declaration form.
type Declaration interface {
	Node
	isDeclaration()
}

// TypeRef is a textual type annotation as written by the user, resolved
// against the type system in pass 2 (§4.3 pass 2).
type TypeRef struct {
	Annotated
	// Name is the base type name, e.g. "byte", "word", or an array/callback
	// element name.
	Name string
	// ArraySize is non-nil only for `name[N]` annotations; it is nil for
	// `name[]`.
	ArraySize *int
	// IsArray distinguishes `name[]`/`name[N]` from a bare `name`.
	IsArray bool
	// CallbackParams/CallbackReturn are populated for `function(...): ret`
	// annotations.
	CallbackParams []TypeRef
	CallbackReturn *TypeRef
}

// VarDecl is a `let name: Type = init;` declaration.
type VarDecl struct {
	Annotated
	Name        string
	Type        *TypeRef // nil if the type must be inferred from Init
	Init        Expression
	IsConst     bool
	IsExported  bool
	IsParameter bool
}

func (*VarDecl) isDeclaration() {}

// Param is a single function parameter.
type Param struct {
	Annotated
	Name string
	Type TypeRef
}

// FuncDecl is a `function name(params): ReturnType { body }` declaration.
type FuncDecl struct {
	Annotated
	Name       string
	Params     []Param
	ReturnType TypeRef
	Body       []Statement
	IsExported bool
}

func (*FuncDecl) isDeclaration() {}

// MapField is one field of a `@map` hardware-register declaration.
type MapField struct {
	Annotated
	Name   string
	Type   TypeRef
	Offset int
}

// MapDecl declares a hardware-register-backed aggregate at a fixed address
// (§4.4 "Memory intrinsics and hardware-register (`@map`) accesses").
type MapDecl struct {
	Annotated
	Name       string
	BaseAddr   int
	Fields     []MapField
	IsExported bool
}

func (*MapDecl) isDeclaration() {}

// ImportDecl imports one or more exported symbols from another module.
type ImportDecl struct {
	Annotated
	Module string
	Names  []string
}

func (*ImportDecl) isDeclaration() {}

// Module is one compiled translation unit: a flat, ordered list of
// top-level declarations, matching §4.3 pass 1's "creates module scope
// eagerly (one per program)".
type Module struct {
	Annotated
	Name         string
	Declarations []Declaration
}

// Program is the root the analyzer is handed for a single-module
// compilation (§6 "Inputs consumed").
type Program struct {
	Module Module
}
