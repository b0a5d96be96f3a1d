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
	"github.com/blendsdk/blend65core/pkg/symbols"
)

// scopeOf retrieves the ScopeID pass 1 recorded on a node that opens a
// scope, falling back to the scope the generator is currently lowering
// inside of (mirrors pkg/analysis's scopeOf).
func (g *generator) scopeOf(node interface {
	Get(ast.MetadataKey) (any, bool)
}) symbols.ScopeID {
	v, ok := node.Get(ast.MetaScope)
	if !ok {
		return g.curScope
	}

	id, ok := v.(symbols.ScopeID)
	if !ok {
		return g.curScope
	}

	return id
}

// lowerFunction lowers one function declaration to an il.Function (§4.4
// "each function has exactly one entry block").
func (g *generator) lowerFunction(d *ast.FuncDecl) {
	params := make([]il.Param, len(d.Params))
	for i, p := range d.Params {
		params[i] = il.Param{Name: p.Name, Type: g.resolveTypeRef(p.Type)}
	}

	retType := g.resolveTypeRef(d.ReturnType)

	fn := il.NewFunction(d.Name, params, retType)
	fn.Exported = d.IsExported

	g.fn = fn
	g.block = fn.EntryBlock()
	g.locals = map[string]il.Operand{}
	g.loops = nil
	g.curScope = g.scopeOf(d)

	for i, p := range d.Params {
		reg := fn.NewRegister()
		g.block.Append(il.Instruction{
			Opcode:   il.LOAD_PARAM,
			Operands: []il.Operand{il.Imm(i, il.WordType)},
			Result:   &reg,
			Type:     params[i].Type,
			Loc:      p.Loc,
		})
		g.locals[p.Name] = il.Reg(reg)
	}

	g.lowerStatements(d.Body)

	if !g.block.Closed() {
		g.block.SetReturn(nil)
	}

	g.module.AddFunction(fn)
}

func (g *generator) lowerStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		if g.block.Closed() {
			// §4.4 "the generator does not create synthetically dead
			// blocks": unreachable source statements still need lowering
			// for the dead-code analyzer to have flagged them upstream,
			// but once a block is terminated there is nowhere left to
			// append to, so remaining statements in this list are skipped.
			return
		}

		g.lowerStatement(s)
	}
}

func (g *generator) lowerStatement(s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		g.lowerBlock(st)
	case *ast.LocalVarStmt:
		g.lowerLocalVar(st)
	case *ast.AssignStmt:
		g.lowerAssign(st)
	case *ast.ExprStmt:
		g.lowerExpr(st.Expr)
	case *ast.IfStmt:
		g.lowerIf(st)
	case *ast.WhileStmt:
		g.lowerWhile(st)
	case *ast.ForStmt:
		g.lowerFor(st)
	case *ast.ReturnStmt:
		g.lowerReturn(st)
	case *ast.BreakStmt:
		g.lowerBreak(st)
	case *ast.ContinueStmt:
		g.lowerContinue(st)
	case *ast.BarrierStmt:
		g.block.Append(il.Instruction{Opcode: il.OPT_BARRIER, Loc: st.Loc})
	}
}

func (g *generator) lowerBlock(b *ast.Block) {
	prevScope := g.curScope
	g.curScope = g.scopeOf(b)

	for _, s := range b.Statements {
		if g.block.Closed() {
			break
		}

		g.lowerStatement(s)
	}

	g.curScope = prevScope
}

func (g *generator) lowerLocalVar(s *ast.LocalVarStmt) {
	d := &s.Decl

	if d.Init == nil {
		g.locals[d.Name] = il.Imm(0, g.resolveDeclType(d))
		return
	}

	g.locals[d.Name] = g.lowerExpr(d.Init)
}

func (g *generator) lowerAssign(s *ast.AssignStmt) {
	value := g.lowerExpr(s.Value)

	switch target := s.Target.(type) {
	case *ast.Identifier:
		g.assignIdentifier(target, value, s.Loc)
	case *ast.IndexExpr:
		g.assignIndex(target, value, s.Loc)
	case *ast.MemberExpr:
		g.assignMember(target, value, s.Loc)
	default:
		g.bag.Add(source.Errorf(source.CodeInvalidTarget, s.Loc, "invalid assignment target"))
	}
}

func (g *generator) assignIdentifier(id *ast.Identifier, value il.Operand, loc source.Location) {
	if _, isLocal := g.locals[id.Name]; isLocal {
		g.locals[id.Name] = value
		return
	}

	sid, ok := g.arena.Lookup(g.curScope, id.Name)
	if !ok {
		g.bag.Add(source.Errorf(source.CodeUndefinedSymbol, loc, "undefined symbol: %s", id.Name))
		return
	}

	sym := g.arena.Symbol(sid)
	g.block.Append(il.Instruction{
		Opcode:   il.STORE_GLOBAL,
		Operands: []il.Operand{il.Sym(id.Name), value},
		Type:     toILType(sym.Type),
		Loc:      loc,
	})
}

func (g *generator) assignIndex(target *ast.IndexExpr, value il.Operand, loc source.Location) {
	array := g.lowerExpr(target.Array)
	index := g.lowerExpr(target.Index)

	elemType := il.ByteType
	if t, ok := exprType(target); ok {
		elemType = toILType(t)
	}

	g.block.Append(il.Instruction{
		Opcode:   il.STORE,
		Operands: []il.Operand{array, index, il.Imm(elemType.SizeOf(), il.WordType), value},
		Type:     elemType,
		Loc:      loc,
	})
}

func (g *generator) assignMember(target *ast.MemberExpr, value il.Operand, loc source.Location) {
	id, ok := target.Object.(*ast.Identifier)
	if !ok {
		g.bag.Add(source.Errorf(source.CodeInvalidTarget, loc, "unsupported map member assignment"))
		return
	}

	decl, field, ok := g.lookupMapField(id.Name, target.Field)
	if !ok {
		g.bag.Add(source.Errorf(source.CodeUnknownIntrinsic, loc, "unknown map field: %s.%s", id.Name, target.Field))
		return
	}

	g.block.Append(il.Instruction{
		Opcode:   il.STORE,
		Operands: []il.Operand{il.Imm(decl.BaseAddr+field.Offset, il.WordType), value},
		Type:     g.resolveTypeRef(field.Type),
		Loc:      loc,
	})
}

func (g *generator) lowerIf(s *ast.IfStmt) {
	thenBlock := g.fn.NewBlock("if.then")
	mergeBlock := g.fn.NewBlock("if.merge")

	elseTarget := mergeBlock.ID

	var elseBlock *il.Block
	if s.Else != nil {
		elseBlock = g.fn.NewBlock("if.else")
		elseTarget = elseBlock.ID
	}

	g.lowerBranch(s.Cond, thenBlock.ID, elseTarget)

	mergeUsed := elseBlock == nil

	g.block = thenBlock
	g.lowerBlock(s.Then)
	if !g.block.Closed() {
		g.block.SetJump(mergeBlock.ID)
		mergeUsed = true
	}

	if elseBlock != nil {
		g.block = elseBlock
		g.lowerBlock(s.Else)
		if !g.block.Closed() {
			g.block.SetJump(mergeBlock.ID)
			mergeUsed = true
		}
	}

	if !mergeUsed {
		// Both arms ended in a terminator: drop the unreferenced merge
		// block and leave g.block on the closed else arm.
		for i, b := range g.fn.Blocks {
			if b == mergeBlock {
				g.fn.Blocks = append(g.fn.Blocks[:i], g.fn.Blocks[i+1:]...)
				break
			}
		}

		return
	}

	g.block = mergeBlock
}

// lowerBranch lowers a condition directly into a block's terminator,
// short-circuiting `&&`/`||` without materializing an intermediate boolean
// register when the condition is the branch's entire test (§4.4).
func (g *generator) lowerBranch(cond ast.Expression, trueTarget, falseTarget il.BlockID) {
	if bin, ok := cond.(*ast.BinaryExpr); ok {
		switch bin.Op {
		case ast.OpLogicalAnd:
			rhsBlock := g.fn.NewBlock("and.rhs")
			g.lowerBranch(bin.Left, rhsBlock.ID, falseTarget)
			g.block = rhsBlock
			g.lowerBranch(bin.Right, trueTarget, falseTarget)
			return
		case ast.OpLogicalOr:
			rhsBlock := g.fn.NewBlock("or.rhs")
			g.lowerBranch(bin.Left, trueTarget, rhsBlock.ID)
			g.block = rhsBlock
			g.lowerBranch(bin.Right, trueTarget, falseTarget)
			return
		}
	}

	value := g.lowerExpr(cond)
	g.block.SetBranch(value, trueTarget, falseTarget)
}

func (g *generator) lowerWhile(s *ast.WhileStmt) {
	prevScope := g.curScope
	g.curScope = g.scopeOf(s)

	headerBlock := g.fn.NewBlock("while.header")
	bodyBlock := g.fn.NewBlock("while.body")
	exitBlock := g.fn.NewBlock("while.exit")

	g.block.SetJump(headerBlock.ID)

	g.block = headerBlock
	g.lowerBranch(s.Cond, bodyBlock.ID, exitBlock.ID)

	g.loops = append(g.loops, loopTargets{breakTarget: exitBlock.ID, continueTarget: headerBlock.ID})

	g.block = bodyBlock
	for _, st := range s.Body.Statements {
		if g.block.Closed() {
			break
		}

		g.lowerStatement(st)
	}

	if !g.block.Closed() {
		g.block.SetJump(headerBlock.ID)
	}

	g.loops = g.loops[:len(g.loops)-1]
	g.block = exitBlock
	g.curScope = prevScope
}

// lowerFor desugars `for n = a to b step s { body }` into a while loop
// (§4.3 pass 4 "desugars analogously"): the counter is a local bound like
// any other, tested before each iteration and advanced in a dedicated
// increment block so `continue` still runs the step.
func (g *generator) lowerFor(s *ast.ForStmt) {
	prevScope := g.curScope
	g.curScope = g.scopeOf(s)

	start := g.lowerExpr(s.Start)
	g.locals[s.Counter] = start

	counterType := il.WordType
	if t, ok := exprType(s.Start); ok {
		counterType = toILType(t)
	}

	headerBlock := g.fn.NewBlock("for.header")
	bodyBlock := g.fn.NewBlock("for.body")
	incBlock := g.fn.NewBlock("for.inc")
	exitBlock := g.fn.NewBlock("for.exit")

	g.block.SetJump(headerBlock.ID)

	g.block = headerBlock
	end := g.lowerExpr(s.End)
	counter := g.locals[s.Counter]
	cmpReg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   il.CMP_LE,
		Operands: []il.Operand{counter, end},
		Result:   &cmpReg,
		Type:     il.BoolType,
		Loc:      s.Loc,
	})
	g.block.SetBranch(il.Reg(cmpReg), bodyBlock.ID, exitBlock.ID)

	g.loops = append(g.loops, loopTargets{breakTarget: exitBlock.ID, continueTarget: incBlock.ID})

	g.block = bodyBlock
	for _, st := range s.Body.Statements {
		if g.block.Closed() {
			break
		}

		g.lowerStatement(st)
	}

	if !g.block.Closed() {
		g.block.SetJump(incBlock.ID)
	}

	g.loops = g.loops[:len(g.loops)-1]

	g.block = incBlock
	step := il.Imm(1, counterType)
	if s.Step != nil {
		step = g.lowerExpr(s.Step)
	}

	counter = g.locals[s.Counter]
	sumReg := g.fn.NewRegister()
	g.block.Append(il.Instruction{
		Opcode:   il.ADD,
		Operands: []il.Operand{counter, step},
		Result:   &sumReg,
		Type:     counterType,
		Loc:      s.Loc,
	})
	g.locals[s.Counter] = il.Reg(sumReg)
	g.block.SetJump(headerBlock.ID)

	g.block = exitBlock
	g.curScope = prevScope
}

func (g *generator) lowerReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		g.block.SetReturn(nil)
		return
	}

	value := g.lowerExpr(s.Value)
	g.block.SetReturn(&value)
}

func (g *generator) lowerBreak(s *ast.BreakStmt) {
	if len(g.loops) == 0 {
		g.bag.Add(source.Errorf(source.CodeInternalError, s.Loc, "break outside a loop"))
		return
	}

	g.block.SetJump(g.loops[len(g.loops)-1].breakTarget)
}

func (g *generator) lowerContinue(s *ast.ContinueStmt) {
	if len(g.loops) == 0 {
		g.bag.Add(source.Errorf(source.CodeInternalError, s.Loc, "continue outside a loop"))
		return
	}

	g.block.SetJump(g.loops[len(g.loops)-1].continueTarget)
}
