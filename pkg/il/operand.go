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
package il

import "fmt"

// RegisterID names a virtual register/temporary, unique within one
// ILFunction.
type RegisterID int

// BlockID names a basic block, unique within one ILFunction.
type BlockID int

// OperandKind distinguishes the four operand forms named in §3.7.
type OperandKind uint8

const (
	OperandRegister OperandKind = iota
	OperandImmediate
	OperandSymbol
	OperandLabel
)

// Operand is one instruction argument: exactly one of Reg/Imm/Symbol/Label
// is meaningful, selected by Kind.
type Operand struct {
	Kind    OperandKind
	Reg     RegisterID
	Imm     any // int, bool, or string depending on ImmType
	ImmType Type
	Symbol  string
	Label   BlockID
}

// Reg constructs a register operand.
func Reg(id RegisterID) Operand {
	return Operand{Kind: OperandRegister, Reg: id}
}

// Imm constructs a typed immediate operand.
func Imm(value any, t Type) Operand {
	return Operand{Kind: OperandImmediate, Imm: value, ImmType: t}
}

// Sym constructs a symbol-reference operand (a global, a function name).
func Sym(name string) Operand {
	return Operand{Kind: OperandSymbol, Symbol: name}
}

// Label constructs a basic-block-label operand.
func Label(id BlockID) Operand {
	return Operand{Kind: OperandLabel, Label: id}
}

// String renders an operand for the debug printer.
func (o Operand) String() string {
	switch o.Kind {
	case OperandRegister:
		return fmt.Sprintf("%%%d", o.Reg)
	case OperandImmediate:
		return fmt.Sprintf("%v:%s", o.Imm, o.ImmType)
	case OperandSymbol:
		return "@" + o.Symbol
	case OperandLabel:
		return fmt.Sprintf("bb%d", o.Label)
	default:
		return "?"
	}
}
