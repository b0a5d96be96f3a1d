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

import (
	"strings"
	"testing"
)

func TestTypeSizeOf(t *testing.T) {
	cases := []struct {
		ty   Type
		size int
	}{
		{VoidType, 0},
		{ByteType, 1},
		{BoolType, 1},
		{WordType, 2},
		{PointerTo(ByteType), 2},
		{ArrayOf(ByteType, 10), 10},
		{ArrayOf(WordType, 4), 8},
		{ArrayOf(ByteType, -1), 0},
	}

	for _, c := range cases {
		if got := c.ty.SizeOf(); got != c.size {
			t.Errorf("%s.SizeOf() = %d, want %d", c.ty, got, c.size)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := PointerTo(WordType).String(); got != "ptr<word>" {
		t.Errorf("got %q", got)
	}

	if got := ArrayOf(ByteType, 8).String(); got != "byte[8]" {
		t.Errorf("got %q", got)
	}
}

func TestOperandString(t *testing.T) {
	if got := Reg(3).String(); got != "%3" {
		t.Errorf("got %q", got)
	}

	if got := Sym("SCREEN").String(); got != "@SCREEN" {
		t.Errorf("got %q", got)
	}
}

func TestBlockAppendAfterTerminatorPanics(t *testing.T) {
	b := &Block{ID: 0}
	b.SetReturn(nil)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic appending after a terminator")
		}
	}()

	b.Append(Instruction{Opcode: ADD})
}

func TestBlockSuccessors(t *testing.T) {
	b := &Block{ID: 0}
	b.SetBranch(Imm(true, BoolType), 1, 2)

	succ := b.Successors()
	if len(succ) != 2 || succ[0] != 1 || succ[1] != 2 {
		t.Fatalf("unexpected successors: %v", succ)
	}
}

func TestFunctionValidateDetectsMissingTerminator(t *testing.T) {
	f := NewFunction("main", nil, VoidType)

	if err := f.Validate(); err == nil {
		t.Fatal("expected validation error for an unterminated entry block")
	}

	f.EntryBlock().SetReturn(nil)

	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFunctionValidateDetectsUnknownTarget(t *testing.T) {
	f := NewFunction("main", nil, VoidType)
	f.EntryBlock().SetJump(99)

	if err := f.Validate(); err == nil {
		t.Fatal("expected validation error for a jump to an unknown block")
	}
}

func TestModuleAddAndLookupFunction(t *testing.T) {
	m := NewModule("prog")
	f := NewFunction("start", nil, VoidType)
	f.EntryBlock().SetReturn(nil)
	m.AddFunction(f)
	m.EntryPoint = "start"

	got, ok := m.Function("start")
	if !ok || got != f {
		t.Fatal("expected to find the function just added")
	}

	if _, ok := m.Function("missing"); ok {
		t.Fatal("did not expect to find an undeclared function")
	}
}

func TestModuleValidatePropagatesFunctionErrors(t *testing.T) {
	m := NewModule("prog")
	f := NewFunction("broken", nil, VoidType)
	m.AddFunction(f)

	if err := m.Validate(); err == nil {
		t.Fatal("expected module validation to fail on an unterminated function")
	}
}

func TestLookupIntrinsicMemory(t *testing.T) {
	def, ok := LookupIntrinsic("peek")
	if !ok {
		t.Fatal("expected peek to be registered")
	}

	if def.Category != Memory || def.Opcode == nil || *def.Opcode != INTRINSIC_PEEK {
		t.Fatalf("unexpected peek definition: %+v", def)
	}

	if def.ReturnType.Kind() != Byte {
		t.Fatalf("peek should return byte, got %s", def.ReturnType)
	}
}

func TestLookupIntrinsicCompileTime(t *testing.T) {
	def, ok := LookupIntrinsic("sizeof")
	if !ok {
		t.Fatal("expected sizeof to be registered")
	}

	if !def.IsCompileTime || def.Opcode != nil {
		t.Fatalf("sizeof should be compile-time with a nil opcode: %+v", def)
	}
}

func TestLookupIntrinsicUnknown(t *testing.T) {
	if _, ok := LookupIntrinsic("not_a_real_intrinsic"); ok {
		t.Fatal("did not expect an unknown intrinsic name to resolve")
	}
}

func TestPrintRendersFunctionAndTerminator(t *testing.T) {
	m := NewModule("prog")
	f := NewFunction("add_one", []Param{{Name: "x", Type: ByteType}}, ByteType)
	r := f.NewRegister()
	f.EntryBlock().Append(Instruction{
		Opcode:   ADD,
		Operands: []Operand{Reg(0), Imm(1, ByteType)},
		Result:   &r,
		Type:     ByteType,
	})
	f.EntryBlock().SetReturn(func() *Operand { o := Reg(r); return &o }())
	m.AddFunction(f)

	out := Print(m)

	if !strings.Contains(out, "func add_one(x: byte) -> byte") {
		t.Fatalf("expected function signature in output, got:\n%s", out)
	}

	if !strings.Contains(out, "return %") {
		t.Fatalf("expected a return instruction in output, got:\n%s", out)
	}
}
