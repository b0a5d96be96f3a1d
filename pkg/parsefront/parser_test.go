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
	"testing"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/source"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()

	p, err := NewParser(source.NewFile("test.b65", []byte(src)))
	if err != nil {
		t.Fatalf("unexpected error constructing parser: %v", err)
	}

	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	return prog
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `
		export function add(a: byte, b: byte): byte {
			return a + b;
		}
	`)

	if len(prog.Module.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(prog.Module.Declarations))
	}

	fn, ok := prog.Module.Declarations[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Module.Declarations[0])
	}

	if fn.Name != "add" || !fn.IsExported || len(fn.Params) != 2 {
		t.Fatalf("unexpected func decl: %+v", fn)
	}

	if len(fn.Body) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body))
	}

	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body[0])
	}

	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected a + binary expr, got %+v", ret.Value)
	}
}

func TestParseTopLevelVarAndImport(t *testing.T) {
	prog := parseProgram(t, `
		import gfx: clearScreen, setBorder;
		const counter: byte = 0;
	`)

	if len(prog.Module.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Module.Declarations))
	}

	imp, ok := prog.Module.Declarations[0].(*ast.ImportDecl)
	if !ok || imp.Module != "gfx" || len(imp.Names) != 2 {
		t.Fatalf("unexpected import decl: %+v", prog.Module.Declarations[0])
	}
}

func TestParseMapDeclaration(t *testing.T) {
	prog := parseProgram(t, `
		map VIC @53248 {
			spriteX: byte @0;
			spriteY: byte @1;
		}
	`)

	m, ok := prog.Module.Declarations[0].(*ast.MapDecl)
	if !ok {
		t.Fatalf("expected *ast.MapDecl, got %T", prog.Module.Declarations[0])
	}

	if m.Name != "VIC" || m.BaseAddr != 53248 || len(m.Fields) != 2 {
		t.Fatalf("unexpected map decl: %+v", m)
	}

	if m.Fields[1].Offset != 1 {
		t.Fatalf("expected second field offset 1, got %d", m.Fields[1].Offset)
	}
}

func TestParseIfWhileForStatements(t *testing.T) {
	prog := parseProgram(t, `
		function f(): void {
			if (x > 0) {
				return;
			} else {
				barrier;
			}
			while (x < 10) {
				x = x + 1;
			}
			for i = 0 to 10 step 2 {
				continue;
			}
		}
	`)

	fn := prog.Module.Declarations[0].(*ast.FuncDecl)
	if len(fn.Body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body))
	}

	ifStmt, ok := fn.Body[0].(*ast.IfStmt)
	if !ok || ifStmt.Else == nil {
		t.Fatalf("expected if/else statement, got %+v", fn.Body[0])
	}

	if _, ok := fn.Body[1].(*ast.WhileStmt); !ok {
		t.Fatalf("expected while statement, got %T", fn.Body[1])
	}

	forStmt, ok := fn.Body[2].(*ast.ForStmt)
	if !ok || forStmt.Counter != "i" || forStmt.Step == nil {
		t.Fatalf("expected for statement with step, got %+v", fn.Body[2])
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := parseProgram(t, `
		function f(): byte {
			return 1 + 2 * 3;
		}
	`)

	fn := prog.Module.Declarations[0].(*ast.FuncDecl)
	ret := fn.Body[0].(*ast.ReturnStmt)

	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %+v", ret.Value)
	}

	if _, ok := top.Left.(*ast.Literal); !ok {
		t.Fatalf("expected literal on the left, got %T", top.Left)
	}

	rhs, ok := top.Right.(*ast.BinaryExpr)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected * to bind tighter than +, got %+v", top.Right)
	}
}

func TestParseCallIndexAndMemberExpressions(t *testing.T) {
	prog := parseProgram(t, `
		function f(): void {
			poke(screen[0].value, 1);
		}
	`)

	fn := prog.Module.Declarations[0].(*ast.FuncDecl)
	exprStmt := fn.Body[0].(*ast.ExprStmt)

	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok || call.Callee.Name != "poke" || len(call.Args) != 2 {
		t.Fatalf("expected poke(...) call, got %+v", exprStmt.Expr)
	}

	member, ok := call.Args[0].(*ast.MemberExpr)
	if !ok || member.Field != "value" {
		t.Fatalf("expected member expr, got %+v", call.Args[0])
	}

	if _, ok := member.Object.(*ast.IndexExpr); !ok {
		t.Fatalf("expected index expr as member object, got %T", member.Object)
	}
}

func TestParseRejectsTopLevelReturn(t *testing.T) {
	p, err := NewParser(source.NewFile("test.b65", []byte("return 1;")))
	if err != nil {
		t.Fatalf("unexpected error constructing parser: %v", err)
	}

	_, err = p.ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error for a top-level return")
	}

	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	p, err := NewParser(source.NewFile("test.b65", []byte("let x: byte = 1")))
	if err != nil {
		t.Fatalf("unexpected error constructing parser: %v", err)
	}

	_, err = p.ParseProgram()
	if err == nil {
		t.Fatal("expected a syntax error for a missing semicolon")
	}
}
