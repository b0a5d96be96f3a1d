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
package ilgen

import (
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/il"
	"github.com/blendsdk/blend65core/pkg/source"
)

// lowerExpr lowers one expression to the operand carrying its value,
// emitting whatever three-address instructions are needed into the current
// block (§4.4 "Expressions lower to a sequence of three-address
// instructions producing a typed virtual register / temporary").
func (g *generator) lowerExpr(e ast.Expression) il.Operand {
	if v, isBool, ok := tryFold(e); ok {
		t, hasType := exprType(e)
		ilt := il.ByteType
		if hasType {
			ilt = toILType(t)
		} else if isBool {
			ilt = il.BoolType
		}

		return il.Imm(v, ilt)
	}

	switch expr := e.(type) {
	case *ast.Literal:
		return g.lowerLiteral(expr)
	case *ast.Identifier:
		return g.lowerIdentifier(expr)
	case *ast.BinaryExpr:
		return g.lowerBinary(expr)
	case *ast.UnaryExpr:
		return g.lowerUnary(expr)
	case *ast.CallExpr:
		return g.lowerCall(expr)
	case *ast.IndexExpr:
		return g.lowerIndex(expr)
	case *ast.MemberExpr:
		return g.lowerMember(expr)
	default:
		return il.Imm(0, il.ByteType)
	}
}

func (g *generator) lowerLiteral(lit *ast.Literal) il.Operand {
	switch lit.Kind {
	case ast.ByteLiteral:
		return il.Imm(lit.Value, il.ByteType)
	case ast.WordLiteral:
		return il.Imm(lit.Value, il.WordType)
	case ast.BoolLiteral:
		return il.Imm(lit.Value, il.BoolType)
	default:
		return il.Sym("")
	}
}

func (g *generator) lowerIdentifier(id *ast.Identifier) il.Operand {
	if op, ok := g.locals[id.Name]; ok {
		return op
	}

	sid, ok := g.arena.Lookup(g.curScope, id.Name)
	if !ok {
		g.bag.Add(source.Errorf(source.CodeUndefinedSymbol, id.Loc, "undefined symbol: %s", id.Name))
		return il.Imm(0, il.ByteType)
	}

	sym := g.arena.Symbol(sid)
	ilt := toILType(sym.Type)

	reg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   il.LOAD_GLOBAL,
		Operands: []il.Operand{il.Sym(id.Name)},
		Result:   &reg,
		Type:     ilt,
		Loc:      id.Loc,
	})

	return il.Reg(reg)
}

func (g *generator) lowerBinary(e *ast.BinaryExpr) il.Operand {
	if e.Op == ast.OpLogicalAnd || e.Op == ast.OpLogicalOr {
		return g.lowerShortCircuit(e)
	}

	left := g.lowerExpr(e.Left)
	right := g.lowerExpr(e.Right)

	opcode := binaryOpcode(e.Op)
	resultType := il.BoolType

	if !isComparison(e.Op) {
		if t, ok := exprType(e); ok {
			resultType = toILType(t)
		} else {
			resultType = il.WordType
		}
	}

	reg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   opcode,
		Operands: []il.Operand{left, right},
		Result:   &reg,
		Type:     resultType,
		Loc:      e.Loc,
	})

	return il.Reg(reg)
}

// lowerShortCircuit lowers `&&`/`||` to branch-and-merge (§4.4): the right
// operand is only evaluated when the left operand didn't already decide
// the result. There is no PHI opcode in this IL (§3.7), so both paths
// write the same pre-allocated register before falling into the merge
// block — a shared mutable slot rather than an SSA value, same as a real
// 6502 backend would thread the two paths through one register.
func (g *generator) lowerShortCircuit(e *ast.BinaryExpr) il.Operand {
	left := g.lowerExpr(e.Left)

	reg := g.fn.NewRegister()
	shortBlock := g.fn.NewBlock("sc.short")
	rhsBlock := g.fn.NewBlock("sc.rhs")
	mergeBlock := g.fn.NewBlock("sc.merge")

	shortCircuitValue := il.Imm(e.Op == ast.OpLogicalOr, il.BoolType)
	g.writeBool(shortBlock, reg, shortCircuitValue)
	shortBlock.SetJump(mergeBlock.ID)

	if e.Op == ast.OpLogicalAnd {
		g.block.SetBranch(left, rhsBlock.ID, shortBlock.ID)
	} else {
		g.block.SetBranch(left, shortBlock.ID, rhsBlock.ID)
	}

	g.block = rhsBlock
	right := g.lowerExpr(e.Right)
	g.writeBool(g.block, reg, right)
	g.block.SetJump(mergeBlock.ID)

	g.block = mergeBlock

	return il.Reg(reg)
}

// writeBool assigns `value` into `reg` via the identity `value || false`,
// the copy-equivalent this opcode set actually offers (there is no MOV).
func (g *generator) writeBool(b *il.Block, reg il.RegisterID, value il.Operand) {
	b.Append(il.Instruction{
		Opcode:   il.LOGICAL_OR,
		Operands: []il.Operand{value, il.Imm(false, il.BoolType)},
		Result:   &reg,
		Type:     il.BoolType,
	})
}

func (g *generator) lowerUnary(e *ast.UnaryExpr) il.Operand {
	if e.Op == ast.OpAddressOf {
		if id, ok := e.Operand.(*ast.Identifier); ok {
			return il.Sym(id.Name)
		}
	}

	operand := g.lowerExpr(e.Operand)

	opcode := il.NEG
	resultType := il.ByteType

	switch e.Op {
	case ast.OpNeg:
		opcode = il.NEG
	case ast.OpNot:
		opcode = il.LOGICAL_NOT
		resultType = il.BoolType
	case ast.OpBitNot:
		opcode = il.NOT
	}

	if t, ok := exprType(e); ok {
		resultType = toILType(t)
	}

	reg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   opcode,
		Operands: []il.Operand{operand},
		Result:   &reg,
		Type:     resultType,
		Loc:      e.Loc,
	})

	return il.Reg(reg)
}

func (g *generator) lowerCall(e *ast.CallExpr) il.Operand {
	if def, ok := il.LookupIntrinsic(e.Callee.Name); ok {
		return g.lowerIntrinsicCall(e, def)
	}

	args := make([]il.Operand, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.lowerExpr(a)
	}

	retType := il.VoidType
	if t, ok := exprType(e); ok {
		retType = toILType(t)
	}

	inst := il.Instruction{
		Opcode:   il.CALL,
		Operands: append([]il.Operand{il.Sym(e.Callee.Name)}, args...),
		Type:     retType,
		Loc:      e.Loc,
	}

	if retType.Kind() == il.Void {
		g.block.Append(inst)
		return il.Operand{}
	}

	reg := g.fn.NewRegister()
	inst.Result = &reg
	g.block.Append(inst)

	return il.Reg(reg)
}

func (g *generator) lowerIntrinsicCall(e *ast.CallExpr, def il.IntrinsicDefinition) il.Operand {
	if def.IsCompileTime {
		return g.lowerCompileTimeIntrinsic(e, def)
	}

	args := make([]il.Operand, len(e.Args))
	for i, a := range e.Args {
		args[i] = g.lowerExpr(a)
	}

	inst := il.Instruction{
		Opcode:   *def.Opcode,
		Operands: args,
		Type:     def.ReturnType,
		Loc:      e.Loc,
	}

	if inst.Opcode.IsFence() {
		inst.SetMetadata("barrier", true)
	}

	if def.ReturnType.Kind() == il.Void {
		g.block.Append(inst)
		return il.Operand{}
	}

	reg := g.fn.NewRegister()
	inst.Result = &reg
	g.block.Append(inst)

	return il.Reg(reg)
}

// lowerCompileTimeIntrinsic folds `sizeof`/`length` to a constant and emits
// no IL (§4.4 "compile-time intrinsics ... fold to constants at generation
// time and emit no IL").
func (g *generator) lowerCompileTimeIntrinsic(e *ast.CallExpr, def il.IntrinsicDefinition) il.Operand {
	if len(e.Args) == 0 {
		g.bag.Add(source.Errorf(source.CodeArgumentCountMismatch, e.Loc, "%s requires one argument", e.Callee.Name))
		return il.Imm(0, il.WordType)
	}

	t, ok := exprType(e.Args[0])
	if !ok {
		g.bag.Add(source.Errorf(source.CodeInternalError, e.Loc, "%s: argument has no resolved type", e.Callee.Name))
		return il.Imm(0, il.WordType)
	}

	ilt := toILType(t)

	switch def.Name {
	case "sizeof":
		return il.Imm(ilt.SizeOf(), il.WordType)
	case "length":
		if ilt.Kind() == il.Array {
			return il.Imm(ilt.Size(), il.WordType)
		}

		return il.Imm(0, il.WordType)
	default:
		return il.Imm(0, il.WordType)
	}
}

func (g *generator) lowerIndex(e *ast.IndexExpr) il.Operand {
	array := g.lowerExpr(e.Array)
	index := g.lowerExpr(e.Index)

	elemType := il.ByteType
	if t, ok := exprType(e); ok {
		elemType = toILType(t)
	}

	reg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   il.INDEX,
		Operands: []il.Operand{array, index, il.Imm(elemType.SizeOf(), il.WordType)},
		Result:   &reg,
		Type:     elemType,
		Loc:      e.Loc,
	})

	return il.Reg(reg)
}

// lowerMember lowers `mapVar.field` for a `@map` hardware-register access
// (§4.4 "Memory intrinsics and hardware-register (`@map`) accesses lower
// to typed LOAD/STORE with the address computed from the map declaration's
// base plus field/index offset").
func (g *generator) lowerMember(e *ast.MemberExpr) il.Operand {
	id, ok := e.Object.(*ast.Identifier)
	if !ok {
		g.bag.Add(source.Errorf(source.CodeInvalidTarget, e.Loc, "unsupported map member access"))
		return il.Imm(0, il.ByteType)
	}

	decl, field, ok := g.lookupMapField(id.Name, e.Field)
	if !ok {
		g.bag.Add(source.Errorf(source.CodeUnknownIntrinsic, e.Loc, "unknown map field: %s.%s", id.Name, e.Field))
		return il.Imm(0, il.ByteType)
	}

	ilt := g.resolveTypeRef(field.Type)
	addr := decl.BaseAddr + field.Offset

	reg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   il.LOAD,
		Operands: []il.Operand{il.Imm(addr, il.WordType)},
		Result:   &reg,
		Type:     ilt,
		Loc:      e.Loc,
	})

	return il.Reg(reg)
}

func (g *generator) lookupMapField(mapName, field string) (*ast.MapDecl, *ast.MapField, bool) {
	decl, ok := g.mapDecls[mapName]
	if !ok {
		return nil, nil, false
	}

	for i := range decl.Fields {
		if decl.Fields[i].Name == field {
			return decl, &decl.Fields[i], true
		}
	}

	return nil, nil, false
}

func binaryOpcode(op ast.BinaryOp) il.Opcode {
	switch op {
	case ast.OpAdd:
		return il.ADD
	case ast.OpSub:
		return il.SUB
	case ast.OpMul:
		return il.MUL
	case ast.OpDiv:
		return il.DIV
	case ast.OpMod:
		return il.MOD
	case ast.OpBitAnd:
		return il.AND
	case ast.OpBitOr:
		return il.OR
	case ast.OpBitXor:
		return il.XOR
	case ast.OpShl:
		return il.SHL
	case ast.OpShr:
		return il.SHR
	case ast.OpEq:
		return il.CMP_EQ
	case ast.OpNe:
		return il.CMP_NE
	case ast.OpLt:
		return il.CMP_LT
	case ast.OpLe:
		return il.CMP_LE
	case ast.OpGt:
		return il.CMP_GT
	case ast.OpGe:
		return il.CMP_GE
	default:
		return il.ADD
	}
}

func isComparison(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	default:
		return false
	}
}
