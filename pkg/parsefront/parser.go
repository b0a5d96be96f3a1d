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
package parsefront

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/source"
)

// Parser is a recursive-descent parser driven by a single token lookahead,
// matching the grammar `pkg/ast` is the typed contract for (§6 "Inputs
// consumed"). Declarations only ever appear at module scope; a bare
// `return`/`if`/`while` at that level is rejected by construction, since
// ParseProgram never calls into statement parsing.
type Parser struct {
	lex *Lexer
	tok Token
}

// NewParser constructs a Parser over `file`.
func NewParser(file *source.File) (*Parser, error) {
	p := &Parser{lex: NewLexer(file)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}

	p.tok = tok

	return nil
}

func (p *Parser) expect(kind Kind, what string) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, p.errorf(source.CodeUnexpectedToken, "expected %s, found %q", what, p.tok.Text)
	}

	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}

	return tok, nil
}

func (p *Parser) errorf(code source.Code, format string, args ...any) error {
	return &SyntaxError{Loc: p.tok.Loc, Code: code, Message: fmt.Sprintf(format, args...)}
}

// ParseProgram parses an entire file into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	mod := ast.Module{Name: ""}

	for p.tok.Kind != TokEOF {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}

		mod.Declarations = append(mod.Declarations, decl)
	}

	return &ast.Program{Module: mod}, nil
}

func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	switch p.tok.Kind {
	case TokImport:
		return p.parseImport()
	case TokMap:
		return p.parseMap()
	case TokExport:
		return p.parseExportedDeclaration()
	case TokFunction:
		return p.parseFunc(false)
	case TokLet, TokConst:
		return p.parseTopLevelVar(false)
	default:
		return nil, p.errorf(source.CodeUnexpectedToken, "expected a declaration, found %q", p.tok.Text)
	}
}

func (p *Parser) parseExportedDeclaration() (ast.Declaration, error) {
	loc := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case TokFunction:
		return p.parseFunc(true)
	case TokLet, TokConst:
		return p.parseTopLevelVar(true)
	default:
		return nil, &SyntaxError{Loc: loc, Code: source.CodeUnexpectedToken, Message: "expected a function or variable declaration after \"export\""}
	}
}

func (p *Parser) parseImport() (*ast.ImportDecl, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	moduleTok, err := p.expect(TokIdent, "module name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokColon, "\":\""); err != nil {
		return nil, err
	}

	var names []string

	for {
		nameTok, err := p.expect(TokIdent, "imported name")
		if err != nil {
			return nil, err
		}

		names = append(names, nameTok.Text)

		if p.tok.Kind != TokComma {
			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
		return nil, err
	}

	return &ast.ImportDecl{
		Annotated: ast.Annotated{Loc: start},
		Module:    moduleTok.Text,
		Names:     names,
	}, nil
}

func (p *Parser) parseMap() (*ast.MapDecl, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(TokIdent, "map name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokAt, "\"@\""); err != nil {
		return nil, err
	}

	addrTok, err := p.expect(TokIntLiteral, "base address")
	if err != nil {
		return nil, err
	}

	addr, err := parseIntLiteral(addrTok)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokLBrace, "\"{\""); err != nil {
		return nil, err
	}

	var fields []ast.MapField

	for p.tok.Kind != TokRBrace {
		fieldLoc := p.tok.Loc

		fieldName, err := p.expect(TokIdent, "field name")
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokColon, "\":\""); err != nil {
			return nil, err
		}

		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		offset := 0

		if p.tok.Kind == TokAt {
			if err := p.advance(); err != nil {
				return nil, err
			}

			offTok, err := p.expect(TokIntLiteral, "field offset")
			if err != nil {
				return nil, err
			}

			offset, err = parseIntLiteral(offTok)
			if err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
			return nil, err
		}

		fields = append(fields, ast.MapField{
			Annotated: ast.Annotated{Loc: fieldLoc},
			Name:      fieldName.Text,
			Type:      typ,
			Offset:    offset,
		})
	}

	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}

	return &ast.MapDecl{
		Annotated:  ast.Annotated{Loc: start},
		Name:       nameTok.Text,
		BaseAddr:   addr,
		Fields:     fields,
		IsExported: false,
	}, nil
}

func (p *Parser) parseTopLevelVar(exported bool) (*ast.VarDecl, error) {
	decl, err := p.parseVarDecl(exported, false)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
		return nil, err
	}

	return decl, nil
}

func (p *Parser) parseVarDecl(exported, isParameter bool) (*ast.VarDecl, error) {
	start := p.tok.Loc
	isConst := p.tok.Kind == TokConst

	if p.tok.Kind != TokLet && p.tok.Kind != TokConst {
		return nil, p.errorf(source.CodeUnexpectedToken, "expected \"let\" or \"const\", found %q", p.tok.Text)
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(TokIdent, "variable name")
	if err != nil {
		return nil, err
	}

	var typ *ast.TypeRef

	if p.tok.Kind == TokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}

		t, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		typ = &t
	}

	var init ast.Expression

	if p.tok.Kind == TokAssign {
		if err := p.advance(); err != nil {
			return nil, err
		}

		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	return &ast.VarDecl{
		Annotated:   ast.Annotated{Loc: start},
		Name:        nameTok.Text,
		Type:        typ,
		Init:        init,
		IsConst:     isConst,
		IsExported:  exported,
		IsParameter: isParameter,
	}, nil
}

func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	start := p.tok.Loc

	if p.tok.Kind == TokFunction {
		if err := p.advance(); err != nil {
			return ast.TypeRef{}, err
		}

		if _, err := p.expect(TokLParen, "\"(\""); err != nil {
			return ast.TypeRef{}, err
		}

		var params []ast.TypeRef

		for p.tok.Kind != TokRParen {
			t, err := p.parseTypeRef()
			if err != nil {
				return ast.TypeRef{}, err
			}

			params = append(params, t)

			if p.tok.Kind != TokComma {
				break
			}

			if err := p.advance(); err != nil {
				return ast.TypeRef{}, err
			}
		}

		if _, err := p.expect(TokRParen, "\")\""); err != nil {
			return ast.TypeRef{}, err
		}

		var ret *ast.TypeRef

		if p.tok.Kind == TokColon {
			if err := p.advance(); err != nil {
				return ast.TypeRef{}, err
			}

			r, err := p.parseTypeRef()
			if err != nil {
				return ast.TypeRef{}, err
			}

			ret = &r
		}

		return ast.TypeRef{
			Annotated:      ast.Annotated{Loc: start},
			Name:           "function",
			CallbackParams: params,
			CallbackReturn: ret,
		}, nil
	}

	nameTok, err := p.expect(TokIdent, "type name")
	if err != nil {
		return ast.TypeRef{}, err
	}

	ref := ast.TypeRef{Annotated: ast.Annotated{Loc: start}, Name: nameTok.Text}

	if p.tok.Kind == TokLBracket {
		if err := p.advance(); err != nil {
			return ast.TypeRef{}, err
		}

		ref.IsArray = true

		if p.tok.Kind == TokIntLiteral {
			sizeTok, err := p.expect(TokIntLiteral, "array size")
			if err != nil {
				return ast.TypeRef{}, err
			}

			size, err := parseIntLiteral(sizeTok)
			if err != nil {
				return ast.TypeRef{}, err
			}

			ref.ArraySize = &size
		}

		if _, err := p.expect(TokRBracket, "\"]\""); err != nil {
			return ast.TypeRef{}, err
		}
	}

	return ref, nil
}

func (p *Parser) parseFunc(exported bool) (*ast.FuncDecl, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	nameTok, err := p.expect(TokIdent, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokLParen, "\"(\""); err != nil {
		return nil, err
	}

	var params []ast.Param

	for p.tok.Kind != TokRParen {
		paramLoc := p.tok.Loc

		paramName, err := p.expect(TokIdent, "parameter name")
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokColon, "\":\""); err != nil {
			return nil, err
		}

		typ, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.Param{Annotated: ast.Annotated{Loc: paramLoc}, Name: paramName.Text, Type: typ})

		if p.tok.Kind != TokComma {
			break
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokRParen, "\")\""); err != nil {
		return nil, err
	}

	retType := ast.TypeRef{Name: "void"}

	if p.tok.Kind == TokColon {
		if err := p.advance(); err != nil {
			return nil, err
		}

		retType, err = p.parseTypeRef()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDecl{
		Annotated:  ast.Annotated{Loc: start},
		Name:       nameTok.Text,
		Params:     params,
		ReturnType: retType,
		Body:       body.Statements,
		IsExported: exported,
	}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.tok.Loc
	if _, err := p.expect(TokLBrace, "\"{\""); err != nil {
		return nil, err
	}

	var stmts []ast.Statement

	for p.tok.Kind != TokRBrace {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}

	return &ast.Block{Annotated: ast.Annotated{Loc: start}, Statements: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.tok.Kind {
	case TokLBrace:
		return p.parseBlock()
	case TokLet, TokConst:
		return p.parseLocalVarStmt()
	case TokIf:
		return p.parseIf()
	case TokWhile:
		return p.parseWhile()
	case TokFor:
		return p.parseFor()
	case TokReturn:
		return p.parseReturn()
	case TokBreak:
		loc := p.tok.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}

		if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
			return nil, err
		}

		return &ast.BreakStmt{Annotated: ast.Annotated{Loc: loc}}, nil
	case TokContinue:
		loc := p.tok.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}

		if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
			return nil, err
		}

		return &ast.ContinueStmt{Annotated: ast.Annotated{Loc: loc}}, nil
	case TokBarrier:
		loc := p.tok.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}

		if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
			return nil, err
		}

		return &ast.BarrierStmt{Annotated: ast.Annotated{Loc: loc}}, nil
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLocalVarStmt() (*ast.LocalVarStmt, error) {
	start := p.tok.Loc

	decl, err := p.parseVarDecl(false, false)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
		return nil, err
	}

	return &ast.LocalVarStmt{Annotated: ast.Annotated{Loc: start}, Decl: *decl}, nil
}

func (p *Parser) parseIf() (*ast.IfStmt, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokLParen, "\"(\""); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokRParen, "\")\""); err != nil {
		return nil, err
	}

	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block

	if p.tok.Kind == TokElse {
		if err := p.advance(); err != nil {
			return nil, err
		}

		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Annotated: ast.Annotated{Loc: start}, Cond: cond, Then: then, Else: elseBlock}, nil
}

func (p *Parser) parseWhile() (*ast.WhileStmt, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	if _, err := p.expect(TokLParen, "\"(\""); err != nil {
		return nil, err
	}

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokRParen, "\")\""); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Annotated: ast.Annotated{Loc: start}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ast.ForStmt, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	counterTok, err := p.expect(TokIdent, "loop counter name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokAssign, "\"=\""); err != nil {
		return nil, err
	}

	from, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokTo, "\"to\""); err != nil {
		return nil, err
	}

	to, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	var step ast.Expression

	if p.tok.Kind == TokStep {
		if err := p.advance(); err != nil {
			return nil, err
		}

		step, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{
		Annotated: ast.Annotated{Loc: start},
		Counter:   counterTok.Text,
		Start:     from,
		End:       to,
		Step:      step,
		Body:      body,
	}, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStmt, error) {
	start := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	var value ast.Expression

	if p.tok.Kind != TokSemicolon {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		value = v
	}

	if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Annotated: ast.Annotated{Loc: start}, Value: value}, nil
}

func (p *Parser) parseExprOrAssignStmt() (ast.Statement, error) {
	start := p.tok.Loc

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.tok.Kind == TokAssign {
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
			return nil, err
		}

		return &ast.AssignStmt{Annotated: ast.Annotated{Loc: start}, Target: expr, Value: value}, nil
	}

	if _, err := p.expect(TokSemicolon, "\";\""); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{Annotated: ast.Annotated{Loc: start}, Expr: expr}, nil
}

// Expression grammar, precedence climbing from lowest to highest:
// logical-or, logical-and, equality, relational, bitwise-or, bitwise-xor,
// bitwise-and, shift, additive, multiplicative, unary, postfix, primary.

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseBinaryLevel(next func() (ast.Expression, error), ops map[Kind]ast.BinaryOp) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.tok.Kind]
		if !ok {
			return left, nil
		}

		loc := p.tok.Loc
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := next()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryExpr{Annotated: ast.Annotated{Loc: loc}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseLogicalAnd, map[Kind]ast.BinaryOp{TokOrOr: ast.OpLogicalOr})
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseEquality, map[Kind]ast.BinaryOp{TokAndAnd: ast.OpLogicalAnd})
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseRelational, map[Kind]ast.BinaryOp{TokEq: ast.OpEq, TokNe: ast.OpNe})
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseBitOr, map[Kind]ast.BinaryOp{
		TokLt: ast.OpLt, TokLe: ast.OpLe, TokGt: ast.OpGt, TokGe: ast.OpGe,
	})
}

func (p *Parser) parseBitOr() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseBitXor, map[Kind]ast.BinaryOp{TokPipe: ast.OpBitOr})
}

func (p *Parser) parseBitXor() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseBitAnd, map[Kind]ast.BinaryOp{TokCaret: ast.OpBitXor})
}

func (p *Parser) parseBitAnd() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseShift, map[Kind]ast.BinaryOp{TokAmp: ast.OpBitAnd})
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseAdditive, map[Kind]ast.BinaryOp{TokShl: ast.OpShl, TokShr: ast.OpShr})
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, map[Kind]ast.BinaryOp{TokPlus: ast.OpAdd, TokMinus: ast.OpSub})
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.parseBinaryLevel(p.parseUnary, map[Kind]ast.BinaryOp{
		TokStar: ast.OpMul, TokSlash: ast.OpDiv, TokPercent: ast.OpMod,
	})
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	var op ast.UnaryOp

	switch p.tok.Kind {
	case TokMinus:
		op = ast.OpNeg
	case TokBang:
		op = ast.OpNot
	case TokTilde:
		op = ast.OpBitNot
	case TokAmp:
		op = ast.OpAddressOf
	default:
		return p.parsePostfix()
	}

	loc := p.tok.Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &ast.UnaryExpr{Annotated: ast.Annotated{Loc: loc}, Op: op, Operand: operand}, nil
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.Kind {
		case TokLBracket:
			loc := p.tok.Loc
			if err := p.advance(); err != nil {
				return nil, err
			}

			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			if _, err := p.expect(TokRBracket, "\"]\""); err != nil {
				return nil, err
			}

			expr = &ast.IndexExpr{Annotated: ast.Annotated{Loc: loc}, Array: expr, Index: index}
		case TokDot:
			loc := p.tok.Loc
			if err := p.advance(); err != nil {
				return nil, err
			}

			field, err := p.expect(TokIdent, "field name")
			if err != nil {
				return nil, err
			}

			expr = &ast.MemberExpr{Annotated: ast.Annotated{Loc: loc}, Object: expr, Field: field.Text}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	loc := p.tok.Loc

	switch p.tok.Kind {
	case TokIntLiteral:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}

		value, err := parseIntLiteral(tok)
		if err != nil {
			return nil, err
		}

		kind := ast.ByteLiteral
		if value > 0xFF {
			kind = ast.WordLiteral
		}

		return &ast.Literal{Annotated: ast.Annotated{Loc: loc}, Kind: kind, Value: value}, nil
	case TokStringLiteral:
		tok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.Literal{Annotated: ast.Annotated{Loc: loc}, Kind: ast.StringLiteral, Value: tok.Text}, nil
	case TokTrue, TokFalse:
		value := p.tok.Kind == TokTrue
		if err := p.advance(); err != nil {
			return nil, err
		}

		return &ast.Literal{Annotated: ast.Annotated{Loc: loc}, Kind: ast.BoolLiteral, Value: value}, nil
	case TokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokRParen, "\")\""); err != nil {
			return nil, err
		}

		return expr, nil
	case TokIdent:
		nameTok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}

		ident := ast.Identifier{Annotated: ast.Annotated{Loc: loc}, Name: nameTok.Text}

		if p.tok.Kind != TokLParen {
			return &ident, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}

		var args []ast.Expression

		for p.tok.Kind != TokRParen {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.tok.Kind != TokComma {
				break
			}

			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		if _, err := p.expect(TokRParen, "\")\""); err != nil {
			return nil, err
		}

		return &ast.CallExpr{Annotated: ast.Annotated{Loc: loc}, Callee: ident, Args: args}, nil
	default:
		return nil, p.errorf(source.CodeUnexpectedToken, "expected an expression, found %q", p.tok.Text)
	}
}

func parseIntLiteral(tok Token) (int, error) {
	text := tok.Text

	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base = 16
		text = text[2:]
	}

	v, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return 0, &SyntaxError{Loc: tok.Loc, Code: source.CodeInvalidNumberLiteral, Message: "invalid number literal " + tok.Text}
	}

	return int(v), nil
}
