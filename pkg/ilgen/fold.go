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

import "github.com/blendsdk/blend65core/pkg/ast"

// tryFold evaluates an expression at generation time if every operand it
// depends on is itself a literal or a foldable sub-expression (§4.4
// "literals of numeric kind may be folded at generation time when all
// operands are constant"). Returns (value, isBool, ok).
func tryFold(e ast.Expression) (any, bool, bool) {
	switch expr := e.(type) {
	case *ast.Literal:
		switch expr.Kind {
		case ast.BoolLiteral:
			return expr.Value, true, true
		case ast.ByteLiteral, ast.WordLiteral:
			return expr.Value, false, true
		default:
			return nil, false, false
		}
	case *ast.UnaryExpr:
		v, isBool, ok := tryFold(expr.Operand)
		if !ok {
			return nil, false, false
		}

		switch expr.Op {
		case ast.OpNeg:
			if n, ok := v.(int); ok {
				return -n, false, true
			}
		case ast.OpNot:
			if b, ok := v.(bool); ok {
				return !b, true, true
			}
		case ast.OpBitNot:
			if n, ok := v.(int); ok {
				return ^n, false, true
			}
		}

		_ = isBool

		return nil, false, false
	case *ast.BinaryExpr:
		return tryFoldBinary(expr)
	default:
		return nil, false, false
	}
}

func tryFoldBinary(e *ast.BinaryExpr) (any, bool, bool) {
	lv, _, lok := tryFold(e.Left)
	rv, _, rok := tryFold(e.Right)

	if !lok || !rok {
		return nil, false, false
	}

	ln, lIsInt := lv.(int)
	rn, rIsInt := rv.(int)

	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod,
		ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		if !lIsInt || !rIsInt {
			return nil, false, false
		}

		return foldArith(e.Op, ln, rn)
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !lIsInt || !rIsInt {
			return nil, false, false
		}

		return foldCompare(e.Op, ln, rn), true, true
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		lb, lok2 := lv.(bool)
		rb, rok2 := rv.(bool)

		if !lok2 || !rok2 {
			return nil, false, false
		}

		if e.Op == ast.OpLogicalAnd {
			return lb && rb, true, true
		}

		return lb || rb, true, true
	default:
		return nil, false, false
	}
}

func foldArith(op ast.BinaryOp, l, r int) (any, bool, bool) {
	switch op {
	case ast.OpAdd:
		return l + r, false, true
	case ast.OpSub:
		return l - r, false, true
	case ast.OpMul:
		return l * r, false, true
	case ast.OpDiv:
		if r == 0 {
			return nil, false, false
		}

		return l / r, false, true
	case ast.OpMod:
		if r == 0 {
			return nil, false, false
		}

		return l % r, false, true
	case ast.OpBitAnd:
		return l & r, false, true
	case ast.OpBitOr:
		return l | r, false, true
	case ast.OpBitXor:
		return l ^ r, false, true
	case ast.OpShl:
		return l << uint(r), false, true
	case ast.OpShr:
		return l >> uint(r), false, true
	default:
		return nil, false, false
	}
}

func foldCompare(op ast.BinaryOp, l, r int) bool {
	switch op {
	case ast.OpEq:
		return l == r
	case ast.OpNe:
		return l != r
	case ast.OpLt:
		return l < r
	case ast.OpLe:
		return l <= r
	case ast.OpGt:
		return l > r
	case ast.OpGe:
		return l >= r
	default:
		return false
	}
}
