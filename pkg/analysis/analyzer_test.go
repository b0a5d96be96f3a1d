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
	"testing"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/source"
)

func byteType() ast.TypeRef  { return ast.TypeRef{Name: "byte"} }
func wordType() ast.TypeRef  { return ast.TypeRef{Name: "word"} }
func voidType() ast.TypeRef  { return ast.TypeRef{Name: "void"} }
func boolType() ast.TypeRef  { return ast.TypeRef{Name: "boolean"} }

func byteLit(v int) *ast.Literal { return &ast.Literal{Kind: ast.ByteLiteral, Value: v} }

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func program(decls ...ast.Declaration) *ast.Program {
	return &ast.Program{Module: ast.Module{Name: "m", Declarations: decls}}
}

// TestEmptyModule is S1 from §8: an empty module analyzes cleanly with no
// diagnostics.
func TestEmptyModule(t *testing.T) {
	result := Analyze(program(), Options{})

	if !result.Success {
		t.Fatalf("expected success, got diagnostics: %v", result.Diagnostics)
	}
}

// TestSingleVarDecl is S2: a single top-level `let` declaration resolves
// its type and produces no diagnostics.
func TestSingleVarDecl(t *testing.T) {
	v := byteType()
	decl := &ast.VarDecl{Name: "counter", Type: &v, Init: byteLit(1)}

	result := Analyze(program(decl), Options{})

	if !result.Success {
		t.Fatalf("expected success, got diagnostics: %v", result.Diagnostics)
	}

	id, ok := result.SymbolTable.Lookup(result.SymbolTable.Root(), "counter")
	if !ok {
		t.Fatal("expected counter to be declared in the module scope")
	}

	if result.SymbolTable.Symbol(id).Type.Name() != "byte" {
		t.Fatalf("expected counter to resolve to byte, got %s", result.SymbolTable.Symbol(id).Type.Name())
	}
}

// TestSimpleFunction is S3: a function with a parameter and a return
// statement type-checks and builds a single-entry/single-exit CFG.
func TestSimpleFunction(t *testing.T) {
	ret := byteType()
	fn := &ast.FuncDecl{
		Name:       "identity",
		Params:     []ast.Param{{Name: "x", Type: byteType()}},
		ReturnType: ret,
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: ident("x")},
		},
	}

	result := Analyze(program(fn), Options{})

	if !result.Success {
		t.Fatalf("expected success, got diagnostics: %v", result.Diagnostics)
	}

	g, ok := result.CFGs["identity"]
	if !ok {
		t.Fatal("expected a CFG for identity")
	}

	if len(g.GetUnreachableNodes()) != 0 {
		t.Fatalf("expected no unreachable nodes, got %v", g.GetUnreachableNodes())
	}
}

// TestRecursionProhibited is S4: a self-recursive function is rejected.
func TestRecursionProhibited(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "loopy",
		ReturnType: voidType(),
		Body: []ast.Statement{
			&ast.ExprStmt{Expr: &ast.CallExpr{Callee: *ident("loopy")}},
		},
	}

	result := Analyze(program(fn), Options{})

	if result.Success {
		t.Fatal("expected recursion to be rejected")
	}

	found := false

	for _, d := range result.Diagnostics {
		if d.Code == source.CodeRecursionProhibited {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected a RECURSION_PROHIBITED diagnostic, got %v", result.Diagnostics)
	}
}

// TestUnreachableCodeAfterReturn is S5: a statement following an
// unconditional return is reported as dead code.
func TestUnreachableCodeAfterReturn(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: voidType(),
		Body: []ast.Statement{
			&ast.ReturnStmt{},
			&ast.ExprStmt{Expr: byteLit(1)},
		},
	}

	result := Analyze(program(fn), Options{})

	g := result.CFGs["f"]
	if len(g.GetUnreachableNodes()) == 0 {
		t.Fatal("expected the statement after return to be unreachable")
	}
}

// TestPossiblyUninitialized is S6: `if (cond) { x = 1; } return x;` with no
// else branch leaves x only MaybeAssigned on the join, and advanced
// analysis reports POSSIBLY_UNINITIALIZED rather than a hard error.
func TestPossiblyUninitialized(t *testing.T) {
	b := byteType()
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: b,
		Body: []ast.Statement{
			&ast.LocalVarStmt{Decl: ast.VarDecl{Name: "x", Type: &b}},
			&ast.IfStmt{
				Cond: ident("cond"),
				Then: &ast.Block{Statements: []ast.Statement{
					&ast.AssignStmt{Target: ident("x"), Value: byteLit(1)},
				}},
			},
			&ast.ReturnStmt{Value: ident("x")},
		},
		Params: []ast.Param{{Name: "cond", Type: boolType()}},
	}

	result := Analyze(program(fn), Options{RunAdvancedAnalysis: true})

	state := result.PassResults.AdvancedAnalysis.DefiniteAssignment["f"]
	if state == nil {
		t.Fatal("expected a definite-assignment result for f")
	}

	found := false

	for _, d := range result.Diagnostics {
		if d.Code == source.CodePossiblyUninitialized {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected a POSSIBLY_UNINITIALIZED diagnostic, got %v", result.Diagnostics)
	}
}

// TestDuplicateDeclarationRecovers checks §4.1's "recoverable error"
// semantics: a duplicate top-level declaration is reported but analysis
// continues to completion.
func TestDuplicateDeclarationRecovers(t *testing.T) {
	b := byteType()
	d1 := &ast.VarDecl{Name: "x", Type: &b, Init: byteLit(1)}
	d2 := &ast.VarDecl{Name: "x", Type: &b, Init: byteLit(2)}

	result := Analyze(program(d1, d2), Options{})

	if result.Success {
		t.Fatal("expected duplicate declaration to fail analysis")
	}

	if result.Stats.TotalDeclarations == 0 && len(result.Diagnostics) == 0 {
		t.Fatal("expected analysis to still run to completion and report something")
	}
}

// TestUsedBeforeAssigned confirms a read with no preceding write on any
// path is a hard error, not a warning.
func TestUsedBeforeAssigned(t *testing.T) {
	b := byteType()
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: b,
		Body: []ast.Statement{
			&ast.LocalVarStmt{Decl: ast.VarDecl{Name: "x", Type: &b}},
			&ast.ReturnStmt{Value: ident("x")},
		},
	}

	result := Analyze(program(fn), Options{RunAdvancedAnalysis: true})

	found := false

	for _, d := range result.Diagnostics {
		if d.Code == source.CodeUsedBeforeAssigned {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected a USED_BEFORE_ASSIGNED diagnostic, got %v", result.Diagnostics)
	}
}

// TestByteToWordWideningIsLossless exercises §4.3.g: assigning a byte
// expression into a word-typed local is a recognized, reachable coercion.
func TestByteToWordWideningIsLossless(t *testing.T) {
	w := wordType()
	b := byteType()
	fn := &ast.FuncDecl{
		Name:       "f",
		ReturnType: voidType(),
		Body: []ast.Statement{
			&ast.LocalVarStmt{Decl: ast.VarDecl{Name: "small", Type: &b, Init: byteLit(1)}},
			&ast.LocalVarStmt{Decl: ast.VarDecl{Name: "big", Type: &w, Init: ident("small")}},
			&ast.ReturnStmt{},
		},
	}

	result := Analyze(program(fn), Options{RunAdvancedAnalysis: true})

	if !result.Success {
		t.Fatalf("expected success, got diagnostics: %v", result.Diagnostics)
	}

	sites := result.PassResults.AdvancedAnalysis.Coercions

	foundWiden := false

	for _, s := range sites {
		if s.From.Name() == "byte" && s.To.Name() == "word" {
			foundWiden = true
		}
	}

	if !foundWiden {
		t.Fatalf("expected a byte->word widening coercion site, got %v", sites)
	}
}
