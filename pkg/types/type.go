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

// Package types implements the Blend65 type universe (§3.3): the tagged
// Byte/Word/Boolean/Void/String/Array/Callback/Unknown variant, the
// compatibility lattice and its memoisation cache, and coercion costing
// (§4.2).
package types

import (
	"fmt"
	"strings"
)

// Kind distinguishes the variants of the Blend65 type universe.
type Kind uint8

const (
	// KindUnknown is the "error type": assigned after a diagnosed type
	// error so that later checks don't cascade (§7).
	KindUnknown Kind = iota
	// KindByte is an unsigned 8-bit integer.
	KindByte
	// KindWord is an unsigned 16-bit integer.
	KindWord
	// KindBoolean is a single bit-identical-to-byte boolean.
	KindBoolean
	// KindVoid is the absence of a value (function return type only).
	KindVoid
	// KindString is a string literal type; size 0 (unsized).
	KindString
	// KindArray is a fixed- or unsized-length homogeneous array.
	KindArray
	// KindCallback is a function-pointer / callback signature.
	KindCallback
)

// Info is the tagged-variant representation of a Blend65 type (§3.3).  Info
// values are immutable once constructed; `Array`/`Callback` values are
// interned by their canonical `Name()` so that repeated construction of the
// same shape produces types that compare `Identical` via `CheckCompatibility`.
type Info struct {
	kind Kind
	// size is the byte size of this type: 1 for Byte/Boolean, 2 for Word,
	// 0 for Void/String/unsized-Array/Callback.
	size int
	// elem is populated only for KindArray.
	elem *Info
	// arrayLen is populated only for KindArray; -1 means unsized.
	arrayLen int
	// params/paramNames/ret are populated only for KindCallback.
	params     []Info
	paramNames []string
	ret        *Info
}

// Byte is the canonical 8-bit unsigned integer type.
var Byte = Info{kind: KindByte, size: 1}

// Word is the canonical 16-bit unsigned integer type.
var Word = Info{kind: KindWord, size: 2}

// Boolean is the canonical boolean type (bit-identical to Byte, §3.3).
var Boolean = Info{kind: KindBoolean, size: 1}

// Void is the canonical empty/no-value type.
var Void = Info{kind: KindVoid, size: 0}

// String is the canonical (unsized) string type.
var String = Info{kind: KindString, size: 0}

// Unknown is the error type assigned when a real type cannot be determined.
var Unknown = Info{kind: KindUnknown, size: 0}

// Array constructs an array type of the given element type. A negative size
// denotes an unsized array (valid only as a parameter/return type).
func Array(elem Info, size int) Info {
	return Info{kind: KindArray, elem: &elem, arrayLen: size, size: max(size, 0) * elem.size}
}

// Callback constructs a function-pointer type with the given parameter
// types, parameter names (for documentation/diagnostics only) and return
// type.
func Callback(params []Info, paramNames []string, ret Info) Info {
	return Info{kind: KindCallback, params: params, paramNames: paramNames, ret: &ret}
}

// Kind returns the tag of this type.
func (t Info) Kind() Kind { return t.kind }

// Size returns the byte size of this type (0 for void/string/unsized).
func (t Info) Size() int { return t.size }

// IsSigned is always false in Blend65 (§3.3).
func (t Info) IsSigned() bool { return false }

// IsAssignable reports whether a value of this type may appear on the
// left-hand side of an assignment. Void and unsized arrays are not.
func (t Info) IsAssignable() bool {
	switch t.kind {
	case KindVoid, KindUnknown:
		return false
	case KindArray:
		return t.arrayLen >= 0
	default:
		return true
	}
}

// Element returns the element type of an array type; panics otherwise.
func (t Info) Element() Info {
	if t.kind != KindArray {
		panic("Element() called on non-array type")
	}

	return *t.elem
}

// ArrayLen returns the declared length of an array type, or -1 if unsized.
func (t Info) ArrayLen() int {
	if t.kind != KindArray {
		panic("ArrayLen() called on non-array type")
	}

	return t.arrayLen
}

// Params returns the parameter types of a callback type.
func (t Info) Params() []Info {
	if t.kind != KindCallback {
		panic("Params() called on non-callback type")
	}

	return t.params
}

// Return returns the return type of a callback type.
func (t Info) Return() Info {
	if t.kind != KindCallback {
		panic("Return() called on non-callback type")
	}

	return *t.ret
}

// Name returns the canonical printable name of this type; this is also the
// cache key used by the compatibility memoiser (§4.2).
func (t Info) Name() string {
	switch t.kind {
	case KindByte:
		return "byte"
	case KindWord:
		return "word"
	case KindBoolean:
		return "boolean"
	case KindVoid:
		return "void"
	case KindString:
		return "string"
	case KindUnknown:
		return "unknown"
	case KindArray:
		if t.arrayLen < 0 {
			return fmt.Sprintf("%s[]", t.elem.Name())
		}

		return fmt.Sprintf("%s[%d]", t.elem.Name(), t.arrayLen)
	case KindCallback:
		parts := make([]string, len(t.params))
		for i, p := range t.params {
			parts[i] = p.Name()
		}

		return fmt.Sprintf("function(%s): %s", strings.Join(parts, ", "), t.ret.Name())
	default:
		return "?"
	}
}

func (t Info) String() string { return t.Name() }

// Builtin resolves a textual type annotation against the set of built-in
// base types (§4.2 `builtin(name)`).  Returns (Info, true) on success.
func Builtin(name string) (Info, bool) {
	switch name {
	case "byte":
		return Byte, true
	case "word":
		return Word, true
	case "boolean":
		return Boolean, true
	case "void":
		return Void, true
	case "string":
		return String, true
	default:
		return Unknown, false
	}
}
