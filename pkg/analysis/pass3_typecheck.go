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
package analysis

import (
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/symbols"
	"github.com/blendsdk/blend65core/pkg/types"
)

// intrinsicSignature is a minimal stand-in for the real intrinsic registry
// (§3.8, built fully in pkg/il): just enough arity/type info for pass 3 to
// type-check calls to peek/poke/lo/hi/sizeof/length before the IL layer
// exists.
type intrinsicSignature struct {
	params []types.Info
	ret    types.Info
}

var intrinsics = map[string]intrinsicSignature{
	"peek":   {params: []types.Info{types.Word}, ret: types.Byte},
	"poke":   {params: []types.Info{types.Word, types.Byte}, ret: types.Void},
	"peekw":  {params: []types.Info{types.Word}, ret: types.Word},
	"pokew":  {params: []types.Info{types.Word, types.Word}, ret: types.Void},
	"lo":     {params: []types.Info{types.Word}, ret: types.Byte},
	"hi":     {params: []types.Info{types.Word}, ret: types.Byte},
	"sizeof": {params: nil, ret: types.Word},
	"length": {params: nil, ret: types.Word},
}

// pass3TypeCheck is §4.3 pass 3: bottom-up expression typing, assignment/
// call/return/condition/index checks.
func (a *analyzer) pass3TypeCheck(mod *ast.Module) {
	for _, decl := range mod.Declarations {
		switch d := decl.(type) {
		case *ast.VarDecl:
			a.checkTopVar(d)
		case *ast.FuncDecl:
			a.checkFunc(d)
		}
	}
}

func (a *analyzer) checkTopVar(d *ast.VarDecl) {
	if d.Init == nil {
		return
	}

	t := a.checkExpr(a.arena.Root(), d.Init)
	a.reconcileDeclType(d, t)
}

func (a *analyzer) reconcileDeclType(d *ast.VarDecl, initType types.Info) {
	if d.Type == nil {
		a.updateSymbolType(d, initType)
		return
	}

	declared, ok := a.symbolOf(d)
	if !ok {
		return
	}

	declType := a.arena.Symbol(declared).Type

	switch a.types.CheckCompatibility(initType, declType) {
	case types.Identical, types.Compatible:
		// ok
	default:
		a.bag.Add(source.Errorf(source.CodeTypeMismatch, d.Loc,
			"cannot assign %s to %s variable %s", initType.Name(), declType.Name(), d.Name))
	}
}

func (a *analyzer) checkFunc(d *ast.FuncDecl) {
	scope := a.scopeOf(d, a.arena.Current())
	retType, _ := a.resolveTypeRef(&d.ReturnType)

	a.stats.FunctionsAnalyzed++
	a.checkStatements(scope, d, retType, d.Body)
}

func (a *analyzer) checkStatements(scope symbols.ScopeID, fn *ast.FuncDecl, retType types.Info, stmts []ast.Statement) {
	for _, s := range stmts {
		a.checkStatement(scope, fn, retType, s)
	}
}

func (a *analyzer) checkStatement(scope symbols.ScopeID, fn *ast.FuncDecl, retType types.Info, s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		inner := a.scopeOf(st, scope)
		a.checkStatements(inner, fn, retType, st.Statements)
	case *ast.LocalVarStmt:
		if st.Decl.Init != nil {
			t := a.checkExpr(scope, st.Decl.Init)
			a.reconcileDeclType(&st.Decl, t)
		}
	case *ast.AssignStmt:
		targetType := a.checkExpr(scope, st.Target)
		valueType := a.checkExpr(scope, st.Value)

		switch a.types.CheckCompatibility(valueType, targetType) {
		case types.Identical, types.Compatible:
		default:
			a.bag.Add(source.Errorf(source.CodeTypeMismatch, st.Loc,
				"cannot assign %s to %s", valueType.Name(), targetType.Name()))
		}
	case *ast.ExprStmt:
		a.checkExpr(scope, st.Expr)
	case *ast.IfStmt:
		a.checkCondition(scope, st.Cond)
		thenScope := a.scopeOf(st.Then, scope)
		a.checkStatements(thenScope, fn, retType, st.Then.Statements)

		if st.Else != nil {
			elseScope := a.scopeOf(st.Else, scope)
			a.checkStatements(elseScope, fn, retType, st.Else.Statements)
		}
	case *ast.WhileStmt:
		a.checkCondition(scope, st.Cond)
		bodyScope := a.scopeOf(st, scope)
		a.checkStatements(bodyScope, fn, retType, st.Body.Statements)
	case *ast.ForStmt:
		a.checkExpr(scope, st.Start)
		a.checkExpr(scope, st.End)

		if st.Step != nil {
			a.checkExpr(scope, st.Step)
		}

		bodyScope := a.scopeOf(st, scope)
		a.checkStatements(bodyScope, fn, retType, st.Body.Statements)
	case *ast.ReturnStmt:
		if st.Value == nil {
			if retType.Kind() != types.KindVoid {
				a.bag.Add(source.Errorf(source.CodeInvalidReturnType, st.Loc,
					"function %s must return %s", fn.Name, retType.Name()))
			}

			return
		}

		t := a.checkExpr(scope, st.Value)

		switch a.types.CheckCompatibility(t, retType) {
		case types.Identical, types.Compatible:
		default:
			a.bag.Add(source.Errorf(source.CodeInvalidReturnType, st.Loc,
				"cannot return %s from function %s returning %s", t.Name(), fn.Name, retType.Name()))
		}
	}
}

func (a *analyzer) checkCondition(scope symbols.ScopeID, cond ast.Expression) {
	t := a.checkExpr(scope, cond)

	switch a.types.CheckCompatibility(t, types.Boolean) {
	case types.Identical, types.Compatible:
	default:
		a.bag.Add(source.Errorf(source.CodeInvalidCondition, cond.Location(),
			"condition must be boolean, got %s", t.Name()))
	}
}

// checkExpr computes the type of an expression, attaching it as
// ast.MetaExpressionType, and recurses into subexpressions first (§4.3
// pass 3 "bottom-up").
func (a *analyzer) checkExpr(scope symbols.ScopeID, expr ast.Expression) types.Info {
	a.stats.ExpressionsChecked++

	var t types.Info

	switch e := expr.(type) {
	case *ast.Literal:
		t = a.checkLiteral(e)
	case *ast.Identifier:
		t = a.checkIdentifier(scope, e)
	case *ast.BinaryExpr:
		t = a.checkBinary(scope, e)
	case *ast.UnaryExpr:
		t = a.checkUnary(scope, e)
	case *ast.CallExpr:
		t = a.checkCall(scope, e)
	case *ast.IndexExpr:
		t = a.checkIndex(scope, e)
	case *ast.MemberExpr:
		t = a.checkMember(scope, e)
	default:
		t = types.Unknown
	}

	if an, ok := expr.(interface{ Set(ast.MetadataKey, any) }); ok {
		an.Set(ast.MetaExpressionType, t)
	}

	return t
}

func (a *analyzer) checkLiteral(lit *ast.Literal) types.Info {
	switch lit.Kind {
	case ast.ByteLiteral:
		return types.Byte
	case ast.WordLiteral:
		return types.Word
	case ast.BoolLiteral:
		return types.Boolean
	case ast.StringLiteral:
		return types.String
	default:
		return types.Unknown
	}
}

func (a *analyzer) checkIdentifier(scope symbols.ScopeID, id *ast.Identifier) types.Info {
	sid, ok := a.arena.Lookup(scope, id.Name)
	if !ok {
		a.bag.Add(source.Errorf(source.CodeUndefinedSymbol, id.Loc, "undefined symbol: %s", id.Name))
		return types.Unknown
	}

	return a.arena.Symbol(sid).Type
}

func isNumeric(t types.Info) bool {
	switch t.Kind() {
	case types.KindByte, types.KindWord, types.KindBoolean:
		return true
	default:
		return false
	}
}

func (a *analyzer) checkBinary(scope symbols.ScopeID, e *ast.BinaryExpr) types.Info {
	l := a.checkExpr(scope, e.Left)
	r := a.checkExpr(scope, e.Right)

	switch e.Op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if a.types.CheckCompatibility(l, r) == types.Incompatible && a.types.CheckCompatibility(r, l) == types.Incompatible {
			a.bag.Add(source.Errorf(source.CodeTypeMismatch, e.Loc,
				"cannot compare %s with %s", l.Name(), r.Name()))
		}

		return types.Boolean
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		a.requireBooleanCompatible(e.Left.Location(), l)
		a.requireBooleanCompatible(e.Right.Location(), r)

		return types.Boolean
	default:
		if !isNumeric(l) || !isNumeric(r) {
			a.bag.Add(source.Errorf(source.CodeTypeMismatch, e.Loc,
				"arithmetic/bitwise operator requires numeric operands, got %s and %s", l.Name(), r.Name()))

			return types.Unknown
		}

		return types.ResultType(l, r)
	}
}

func (a *analyzer) requireBooleanCompatible(loc source.Location, t types.Info) {
	switch a.types.CheckCompatibility(t, types.Boolean) {
	case types.Identical, types.Compatible:
	default:
		a.bag.Add(source.Errorf(source.CodeTypeMismatch, loc, "expected boolean-compatible operand, got %s", t.Name()))
	}
}

func (a *analyzer) checkUnary(scope symbols.ScopeID, e *ast.UnaryExpr) types.Info {
	t := a.checkExpr(scope, e.Operand)

	switch e.Op {
	case ast.OpNot:
		a.requireBooleanCompatible(e.Operand.Location(), t)
		return types.Boolean
	case ast.OpAddressOf:
		return types.Word
	default: // OpNeg, OpBitNot preserve operand type
		if !isNumeric(t) {
			a.bag.Add(source.Errorf(source.CodeTypeMismatch, e.Loc, "unary operator requires numeric operand, got %s", t.Name()))
			return types.Unknown
		}

		return t
	}
}

func (a *analyzer) checkCall(scope symbols.ScopeID, e *ast.CallExpr) types.Info {
	argTypes := make([]types.Info, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.checkExpr(scope, arg)
	}

	if sid, ok := a.arena.Lookup(scope, e.Callee.Name); ok {
		sym := a.arena.Symbol(sid)
		if sym.Kind == symbols.Function && sym.Type.Kind() == types.KindCallback {
			return a.checkCallArgs(e, sym.Type, argTypes)
		}
	}

	if sig, ok := intrinsics[e.Callee.Name]; ok {
		if sig.params != nil && len(sig.params) != len(argTypes) {
			a.bag.Add(source.Errorf(source.CodeArgumentCountMismatch, e.Loc,
				"%s expects %d argument(s), got %d", e.Callee.Name, len(sig.params), len(argTypes)))
		}

		return sig.ret
	}

	a.bag.Add(source.Errorf(source.CodeUnknownIntrinsic, e.Loc, "unknown function or intrinsic: %s", e.Callee.Name))

	return types.Unknown
}

func (a *analyzer) checkCallArgs(e *ast.CallExpr, sig types.Info, argTypes []types.Info) types.Info {
	params := sig.Params()

	if len(params) != len(argTypes) {
		a.bag.Add(source.Errorf(source.CodeArgumentCountMismatch, e.Loc,
			"%s expects %d argument(s), got %d", e.Callee.Name, len(params), len(argTypes)))

		return sig.Return()
	}

	for i, p := range params {
		switch a.types.CheckCompatibility(argTypes[i], p) {
		case types.Identical, types.Compatible:
		default:
			a.bag.Add(source.Errorf(source.CodeTypeMismatch, e.Args[i].Location(),
				"argument %d to %s: cannot use %s as %s", i+1, e.Callee.Name, argTypes[i].Name(), p.Name()))
		}
	}

	return sig.Return()
}

func (a *analyzer) checkIndex(scope symbols.ScopeID, e *ast.IndexExpr) types.Info {
	arrType := a.checkExpr(scope, e.Array)
	idxType := a.checkExpr(scope, e.Index)

	if !isNumeric(idxType) {
		a.bag.Add(source.Errorf(source.CodeTypeMismatch, e.Index.Location(), "array index must be numeric, got %s", idxType.Name()))
	}

	if arrType.Kind() != types.KindArray {
		a.bag.Add(source.Errorf(source.CodeTypeMismatch, e.Loc, "cannot index non-array type %s", arrType.Name()))
		return types.Unknown
	}

	if lit, ok := e.Index.(*ast.Literal); ok && arrType.ArrayLen() >= 0 {
		if n, ok := lit.Value.(int); ok && (n < 0 || n >= arrType.ArrayLen()) {
			a.bag.Add(source.Errorf(source.CodeIndexOutOfRange, e.Loc,
				"index %d out of range for array of length %d", n, arrType.ArrayLen()))
		}
	}

	return arrType.Element()
}

func (a *analyzer) checkMember(scope symbols.ScopeID, e *ast.MemberExpr) types.Info {
	id, ok := e.Object.(*ast.Identifier)
	if !ok {
		a.bag.Add(source.Errorf(source.CodeUndefinedSymbol, e.Loc, "field access requires a map variable"))
		return types.Unknown
	}

	a.checkExpr(scope, e.Object)

	fields, ok := a.mapFields[id.Name]
	if !ok {
		a.bag.Add(source.Errorf(source.CodeUndefinedSymbol, e.Loc, "%s is not a map variable", id.Name))
		return types.Unknown
	}

	f, ok := fields[e.Field]
	if !ok {
		a.bag.Add(source.Errorf(source.CodeUndefinedSymbol, e.Loc, "%s has no field %s", id.Name, e.Field))
		return types.Unknown
	}

	return f.Type
}
