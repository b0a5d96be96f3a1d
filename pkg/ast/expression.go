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

// Expression is implemented by every expression form.
type Expression interface {
	Node
	isExpression()
}

// LiteralKind distinguishes the concrete type of a literal's value.
type LiteralKind uint8

const (
	// ByteLiteral is an integer literal that fits in a byte.
	ByteLiteral LiteralKind = iota
	// WordLiteral is an integer literal that requires a word.
	WordLiteral
	// BoolLiteral is `true`/`false`.
	BoolLiteral
	// StringLiteral is a quoted string.
	StringLiteral
)

// Literal is a constant value written directly in source.
type Literal struct {
	Annotated
	Kind  LiteralKind
	Value any // int, bool, or string depending on Kind
}

func (*Literal) isExpression() {}

// Identifier is a bare name reference, resolved to a symbol in pass 3.
type Identifier struct {
	Annotated
	Name string
}

func (*Identifier) isExpression() {}

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLogicalAnd
	OpLogicalOr
)

// BinaryExpr is `lhs OP rhs`.
type BinaryExpr struct {
	Annotated
	Op          BinaryOp
	Left, Right Expression
}

func (*BinaryExpr) isExpression() {}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpAddressOf
)

// UnaryExpr is `OP operand`.
type UnaryExpr struct {
	Annotated
	Op      UnaryOp
	Operand Expression
}

func (*UnaryExpr) isExpression() {}

// CallExpr is `callee(args...)`, covering both user functions and
// intrinsics (§4.4 "Intrinsics"); which one is determined during symbol
// resolution by looking up Callee.Name against the symbol table first and
// the intrinsic registry second.
type CallExpr struct {
	Annotated
	Callee Identifier
	Args   []Expression
}

func (*CallExpr) isExpression() {}

// IndexExpr is `array[index]`.
type IndexExpr struct {
	Annotated
	Array Expression
	Index Expression
}

func (*IndexExpr) isExpression() {}

// MemberExpr is `mapVar.field`, used for `@map` field access.
type MemberExpr struct {
	Annotated
	Object Expression
	Field  string
}

func (*MemberExpr) isExpression() {}
