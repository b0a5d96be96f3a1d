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

// Package il implements the block-structured intermediate representation
// the generator lowers an annotated AST to (§3.7-3.8): ILModule/ILFunction/
// ILBlock/ILInstruction plus the process-wide intrinsic registry.
package il

import "fmt"

// Kind distinguishes the IL type variants (§3.7), one abstraction level
// below pkg/types' source-level TypeInfo.
type Kind uint8

const (
	Void Kind = iota
	Byte
	Word
	Bool
	Pointer
	Array
)

// Type is an IL-level type: a Kind plus, for Pointer/Array, the element
// type (and for Array, its static size, or -1 when unsized).
type Type struct {
	kind Kind
	elem *Type
	size int
}

// VoidType, ByteType, WordType and BoolType are the four scalar IL types.
var (
	VoidType = Type{kind: Void}
	ByteType = Type{kind: Byte}
	WordType = Type{kind: Word}
	BoolType = Type{kind: Bool}
)

// PointerTo constructs IL_POINTER(elem).
func PointerTo(elem Type) Type {
	e := elem
	return Type{kind: Pointer, elem: &e}
}

// ArrayOf constructs IL_ARRAY(elem, size); size -1 means unsized.
func ArrayOf(elem Type, size int) Type {
	e := elem
	return Type{kind: Array, elem: &e, size: size}
}

// Kind reports this type's variant.
func (t Type) Kind() Kind { return t.kind }

// Elem returns the pointee/element type; panics for scalar kinds.
func (t Type) Elem() Type {
	if t.elem == nil {
		panic("Elem() called on a scalar IL type")
	}

	return *t.elem
}

// Size returns an array type's static size, or -1 if unsized/non-array.
func (t Type) Size() int {
	if t.kind != Array {
		return -1
	}

	return t.size
}

// SizeOf returns this type's size in bytes on the target's natural word
// layout, mirroring the source-level `sizeof` intrinsic (§4.4).
func (t Type) SizeOf() int {
	switch t.kind {
	case Void:
		return 0
	case Byte, Bool:
		return 1
	case Word, Pointer:
		return 2
	case Array:
		if t.size < 0 {
			return 0
		}

		return t.size * t.Elem().SizeOf()
	default:
		return 0
	}
}

// String renders a type in the form the §3.7 debug printer uses.
func (t Type) String() string {
	switch t.kind {
	case Void:
		return "void"
	case Byte:
		return "byte"
	case Word:
		return "word"
	case Bool:
		return "bool"
	case Pointer:
		return fmt.Sprintf("ptr<%s>", t.Elem())
	case Array:
		if t.size < 0 {
			return fmt.Sprintf("%s[]", t.Elem())
		}

		return fmt.Sprintf("%s[%d]", t.Elem(), t.size)
	default:
		return "?"
	}
}
