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
	"testing"

	"github.com/blendsdk/blend65core/pkg/analysis"
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/il"
)

func byteType() ast.TypeRef { return ast.TypeRef{Name: "byte"} }
func wordType() ast.TypeRef { return ast.TypeRef{Name: "word"} }

func byteLit(v int) *ast.Literal { return &ast.Literal{Kind: ast.ByteLiteral, Value: v} }
func wordLit(v int) *ast.Literal { return &ast.Literal{Kind: ast.WordLiteral, Value: v} }

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func program(decls ...ast.Declaration) *ast.Program {
	return &ast.Program{Module: ast.Module{Name: "m", Declarations: decls}}
}

func analyze(t *testing.T, p *ast.Program) *analysis.AnalysisResult {
	t.Helper()

	result := analysis.Analyze(p, analysis.Options{})
	if !result.Success {
		t.Fatalf("expected analysis to succeed, got diagnostics: %v", result.Diagnostics)
	}

	return result
}

// TestGenerateIdentityFunctionValidates lowers a single parameter/return
// function and checks the resulting IL function passes block validation.
func TestGenerateIdentityFunctionValidates(t *testing.T) {
	fn := &ast.FuncDecl{
		Name:       "identity",
		Params:     []ast.Param{{Name: "x", Type: byteType()}},
		ReturnType: byteType(),
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: ident("x")},
		},
	}

	p := program(fn)
	result := analyze(t, p)

	mod, diags := Generate(p, result, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no generator diagnostics, got %v", diags)
	}

	if err := mod.Validate(); err != nil {
		t.Fatalf("expected a valid module, got %v", err)
	}

	f, ok := mod.Function("identity")
	if !ok {
		t.Fatal("expected an identity function in the module")
	}

	if f.EntryBlock().Term != il.TermReturn {
		t.Fatalf("expected the entry block to return directly, got term %v", f.EntryBlock().Term)
	}
}

// TestGenerateConstantFoldsArithmetic checks that `1 + 2` never reaches the
// IL as an ADD instruction: it folds to an immediate at generation time.
func TestGenerateConstantFoldsArithmetic(t *testing.T) {
	ret := byteType()
	fn := &ast.FuncDecl{
		Name:       "const_sum",
		ReturnType: ret,
		Body: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: ast.OpAdd, Left: byteLit(1), Right: byteLit(2)}},
		},
	}

	p := program(fn)
	result := analyze(t, p)

	mod, diags := Generate(p, result, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no generator diagnostics, got %v", diags)
	}

	f, _ := mod.Function("const_sum")

	if len(f.EntryBlock().Instructions) != 0 {
		t.Fatalf("expected the constant sum to fold away, got instructions: %v", f.EntryBlock().Instructions)
	}

	if f.EntryBlock().ReturnValue == nil || f.EntryBlock().ReturnValue.Kind != il.OperandImmediate {
		t.Fatalf("expected an immediate return value, got %+v", f.EntryBlock().ReturnValue)
	}

	if f.EntryBlock().ReturnValue.Imm != 3 {
		t.Fatalf("expected 1 + 2 to fold to 3, got %v", f.EntryBlock().ReturnValue.Imm)
	}
}

// TestGenerateIfElseBothArmsReturn lowers a branch whose arms both return
// and checks that each arm ends in its own return block, with no extra
// merge block returning as well.
func TestGenerateIfElseBothArmsReturn(t *testing.T) {
	ret := byteType()
	fn := &ast.FuncDecl{
		Name:       "choose",
		Params:     []ast.Param{{Name: "flag", Type: ast.TypeRef{Name: "boolean"}}},
		ReturnType: ret,
		Body: []ast.Statement{
			&ast.IfStmt{
				Cond: ident("flag"),
				Then: &ast.Block{Statements: []ast.Statement{&ast.ReturnStmt{Value: byteLit(1)}}},
				Else: &ast.Block{Statements: []ast.Statement{&ast.ReturnStmt{Value: byteLit(0)}}},
			},
		},
	}

	p := program(fn)
	result := analyze(t, p)

	mod, diags := Generate(p, result, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no generator diagnostics, got %v", diags)
	}

	if err := mod.Validate(); err != nil {
		t.Fatalf("expected a valid module, got %v", err)
	}

	f, _ := mod.Function("choose")

	var returns int
	for _, b := range f.Blocks {
		if b.Term == il.TermReturn {
			returns++
		}
	}

	if returns != 2 {
		t.Fatalf("expected both if/else arms to return directly, got %d return blocks", returns)
	}
}

// TestGenerateWhileLoopLowersToHeaderBodyExit checks the three-block shape
// a while loop lowers to and that the module validates.
func TestGenerateWhileLoopLowersToHeaderBodyExit(t *testing.T) {
	v := byteType()
	fn := &ast.FuncDecl{
		Name:       "count_down",
		ReturnType: ast.TypeRef{Name: "void"},
		Body: []ast.Statement{
			&ast.LocalVarStmt{Decl: ast.VarDecl{Name: "n", Type: &v, Init: byteLit(10)}},
			&ast.WhileStmt{
				Cond: &ast.BinaryExpr{Op: ast.OpGt, Left: ident("n"), Right: byteLit(0)},
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.AssignStmt{
						Target: ident("n"),
						Value:  &ast.BinaryExpr{Op: ast.OpSub, Left: ident("n"), Right: byteLit(1)},
					},
				}},
			},
			&ast.ReturnStmt{},
		},
	}

	p := program(fn)
	result := analyze(t, p)

	mod, diags := Generate(p, result, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no generator diagnostics, got %v", diags)
	}

	if err := mod.Validate(); err != nil {
		t.Fatalf("expected a valid module, got %v", err)
	}

	f, _ := mod.Function("count_down")
	if len(f.Blocks) < 4 {
		t.Fatalf("expected at least entry+header+body+exit blocks, got %d", len(f.Blocks))
	}
}

// TestGenerateSizeofFoldsToConstant checks that `sizeof` never emits IL.
func TestGenerateSizeofFoldsToConstant(t *testing.T) {
	b := byteType()
	fn := &ast.FuncDecl{
		Name:       "describe",
		ReturnType: wordType(),
		Body: []ast.Statement{
			&ast.LocalVarStmt{Decl: ast.VarDecl{Name: "x", Type: &b, Init: byteLit(1)}},
			&ast.ReturnStmt{Value: &ast.CallExpr{Callee: *ident("sizeof"), Args: []ast.Expression{ident("x")}}},
		},
	}

	p := program(fn)
	result := analyze(t, p)

	mod, diags := Generate(p, result, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no generator diagnostics, got %v", diags)
	}

	f, _ := mod.Function("describe")

	for _, inst := range f.EntryBlock().Instructions {
		if inst.Opcode == il.CALL {
			t.Fatalf("expected sizeof to fold away, found a CALL instruction")
		}
	}

	if f.EntryBlock().ReturnValue == nil || f.EntryBlock().ReturnValue.Imm != 1 {
		t.Fatalf("expected sizeof(byte x) to fold to 1, got %+v", f.EntryBlock().ReturnValue)
	}
}

// TestGenerateGlobalAssignmentEmitsStoreGlobal checks a module-scope
// variable write lowers to STORE_GLOBAL rather than a local rebind.
func TestGenerateGlobalAssignmentEmitsStoreGlobal(t *testing.T) {
	b := byteType()
	global := &ast.VarDecl{Name: "counter", Type: &b, Init: byteLit(0)}
	fn := &ast.FuncDecl{
		Name:       "bump",
		ReturnType: ast.TypeRef{Name: "void"},
		Body: []ast.Statement{
			&ast.AssignStmt{Target: ident("counter"), Value: byteLit(1)},
			&ast.ReturnStmt{},
		},
	}

	p := program(global, fn)
	result := analyze(t, p)

	mod, diags := Generate(p, result, Options{})
	if len(diags) != 0 {
		t.Fatalf("expected no generator diagnostics, got %v", diags)
	}

	f, _ := mod.Function("bump")

	var sawStore bool
	for _, inst := range f.EntryBlock().Instructions {
		if inst.Opcode == il.STORE_GLOBAL {
			sawStore = true
		}
	}

	if !sawStore {
		t.Fatal("expected a STORE_GLOBAL instruction for the global assignment")
	}
}
