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
package optimizer

import "github.com/blendsdk/blend65core/pkg/il"

// propagateConstants folds pure arithmetic/comparison/logical instructions
// whose operands are all immediates (after earlier substitutions in the
// same pass) into a single immediate, then substitutes that immediate
// everywhere the folded register was used -- including branch conditions
// and return values. Generation-time folding (ast-level, see
// `pkg/ilgen/fold.go`) only ever sees source-level constant expressions;
// this pass catches the IL-level constants that optimization itself
// exposes, e.g. after a parameter substitution or an earlier fold.
func propagateConstants(f *il.Function) bool {
	known := map[il.RegisterID]il.Operand{}
	changed := false

	for _, b := range f.Blocks {
		out := b.Instructions[:0]

		for _, inst := range b.Instructions {
			substituteOperands(inst.Operands, known)

			if v, ok := tryFoldInstruction(inst); ok {
				known[*inst.Result] = v
				changed = true

				continue
			}

			out = append(out, inst)
		}

		b.Instructions = out

		if b.Term == il.TermBranch && b.Cond != nil {
			if substituteOne(b.Cond, known) {
				changed = true
			}
		}

		if b.Term == il.TermReturn && b.ReturnValue != nil {
			if substituteOne(b.ReturnValue, known) {
				changed = true
			}
		}
	}

	return changed
}

func substituteOperands(ops []il.Operand, known map[il.RegisterID]il.Operand) {
	for i := range ops {
		substituteOne(&ops[i], known)
	}
}

func substituteOne(op *il.Operand, known map[il.RegisterID]il.Operand) bool {
	if op.Kind != il.OperandRegister {
		return false
	}

	if v, ok := known[op.Reg]; ok {
		*op = v

		return true
	}

	return false
}

// tryFoldInstruction evaluates a pure instruction whose operands are all
// now immediates, returning the folded immediate operand. Division/modulo
// by zero is never folded here: that is a runtime/diagnostic concern
// handled upstream, not this pass's job.
func tryFoldInstruction(inst il.Instruction) (il.Operand, bool) {
	if inst.Result == nil || !isPureArithmetic(inst.Opcode) {
		return il.Operand{}, false
	}

	for _, op := range inst.Operands {
		if op.Kind != il.OperandImmediate {
			return il.Operand{}, false
		}
	}

	switch inst.Opcode {
	case il.NEG:
		if n, ok := intOperand(inst.Operands, 0); ok {
			return il.Imm(-n, inst.Type), true
		}
	case il.NOT, il.LOGICAL_NOT:
		if b, ok := boolOperand(inst.Operands, 0); ok {
			return il.Imm(!b, inst.Type), true
		}
	case il.ADD, il.SUB, il.MUL, il.DIV, il.MOD, il.AND, il.OR, il.XOR, il.SHL, il.SHR:
		l, lok := intOperand(inst.Operands, 0)
		r, rok := intOperand(inst.Operands, 1)

		if !lok || !rok {
			return il.Operand{}, false
		}

		return foldIntBinary(inst.Opcode, l, r, inst.Type)
	case il.CMP_EQ, il.CMP_NE, il.CMP_LT, il.CMP_LE, il.CMP_GT, il.CMP_GE:
		l, lok := intOperand(inst.Operands, 0)
		r, rok := intOperand(inst.Operands, 1)

		if !lok || !rok {
			return il.Operand{}, false
		}

		return il.Imm(foldCompare(inst.Opcode, l, r), inst.Type), true
	case il.LOGICAL_AND, il.LOGICAL_OR:
		l, lok := boolOperand(inst.Operands, 0)
		r, rok := boolOperand(inst.Operands, 1)

		if !lok || !rok {
			return il.Operand{}, false
		}

		if inst.Opcode == il.LOGICAL_AND {
			return il.Imm(l && r, inst.Type), true
		}

		return il.Imm(l || r, inst.Type), true
	}

	return il.Operand{}, false
}

func isPureArithmetic(op il.Opcode) bool {
	switch op {
	case il.ADD, il.SUB, il.MUL, il.DIV, il.MOD, il.NEG,
		il.AND, il.OR, il.XOR, il.NOT, il.SHL, il.SHR,
		il.CMP_EQ, il.CMP_NE, il.CMP_LT, il.CMP_LE, il.CMP_GT, il.CMP_GE,
		il.LOGICAL_AND, il.LOGICAL_OR, il.LOGICAL_NOT:
		return true
	default:
		return false
	}
}

func intOperand(ops []il.Operand, i int) (int, bool) {
	n, ok := ops[i].Imm.(int)
	return n, ok
}

func boolOperand(ops []il.Operand, i int) (bool, bool) {
	b, ok := ops[i].Imm.(bool)
	return b, ok
}

func foldIntBinary(op il.Opcode, l, r int, t il.Type) (il.Operand, bool) {
	switch op {
	case il.ADD:
		return il.Imm(l+r, t), true
	case il.SUB:
		return il.Imm(l-r, t), true
	case il.MUL:
		return il.Imm(l*r, t), true
	case il.DIV:
		if r == 0 {
			return il.Operand{}, false
		}

		return il.Imm(l/r, t), true
	case il.MOD:
		if r == 0 {
			return il.Operand{}, false
		}

		return il.Imm(l%r, t), true
	case il.AND:
		return il.Imm(l&r, t), true
	case il.OR:
		return il.Imm(l|r, t), true
	case il.XOR:
		return il.Imm(l^r, t), true
	case il.SHL:
		return il.Imm(l<<uint(r), t), true
	case il.SHR:
		return il.Imm(l>>uint(r), t), true
	default:
		return il.Operand{}, false
	}
}

func foldCompare(op il.Opcode, l, r int) bool {
	switch op {
	case il.CMP_EQ:
		return l == r
	case il.CMP_NE:
		return l != r
	case il.CMP_LT:
		return l < r
	case il.CMP_LE:
		return l <= r
	case il.CMP_GT:
		return l > r
	case il.CMP_GE:
		return l >= r
	default:
		return false
	}
}
