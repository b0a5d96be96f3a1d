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

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/il"
)

func TestPropagateConstantsFoldsIntoReturn(t *testing.T) {
	f := il.NewFunction("f", nil, il.ByteType)
	entry := f.EntryBlock()

	r := f.NewRegister()
	entry.Append(il.Instruction{
		Opcode:   il.ADD,
		Operands: []il.Operand{il.Imm(2, il.ByteType), il.Imm(3, il.ByteType)},
		Result:   &r,
		Type:     il.ByteType,
	})
	entry.SetReturn(&il.Operand{Kind: il.OperandRegister, Reg: r})

	if !propagateConstants(f) {
		t.Fatal("expected a change")
	}

	if len(entry.Instructions) != 0 {
		t.Fatalf("expected the ADD to fold away, got %d instructions", len(entry.Instructions))
	}

	if entry.ReturnValue.Kind != il.OperandImmediate || entry.ReturnValue.Imm != 5 {
		t.Fatalf("expected return value folded to 5, got %+v", entry.ReturnValue)
	}
}

func TestEliminateDeadInstructionsKeepsSideEffects(t *testing.T) {
	f := il.NewFunction("f", nil, il.VoidType)
	entry := f.EntryBlock()

	dead := f.NewRegister()
	entry.Append(il.Instruction{
		Opcode:   il.ADD,
		Operands: []il.Operand{il.Imm(1, il.ByteType), il.Imm(1, il.ByteType)},
		Result:   &dead,
		Type:     il.ByteType,
	})
	entry.Append(il.Instruction{
		Opcode:   il.STORE_GLOBAL,
		Operands: []il.Operand{il.Sym("g"), il.Imm(7, il.ByteType)},
	})
	entry.SetReturn(nil)

	if !eliminateDeadInstructions(f) {
		t.Fatal("expected a change")
	}

	if len(entry.Instructions) != 1 {
		t.Fatalf("expected only the store to survive, got %d instructions", len(entry.Instructions))
	}

	if entry.Instructions[0].Opcode != il.STORE_GLOBAL {
		t.Fatalf("expected STORE_GLOBAL to survive, got %s", entry.Instructions[0].Opcode)
	}
}

func TestEliminateUnreachableBlocksDropsOrphan(t *testing.T) {
	f := il.NewFunction("f", nil, il.VoidType)
	entry := f.EntryBlock()
	orphan := f.NewBlock("orphan")
	orphan.SetReturn(nil)
	entry.SetReturn(nil)

	if !eliminateUnreachableBlocks(f) {
		t.Fatal("expected a change")
	}

	if len(f.Blocks) != 1 {
		t.Fatalf("expected only the entry block to survive, got %d", len(f.Blocks))
	}
}

func TestThreadTrivialJumpsCollapsesChain(t *testing.T) {
	f := il.NewFunction("f", nil, il.VoidType)
	entry := f.EntryBlock()
	hop := f.NewBlock("hop")
	dest := f.NewBlock("dest")

	entry.SetJump(hop.ID)
	hop.SetJump(dest.ID)
	dest.SetReturn(nil)

	if !threadTrivialJumps(f) {
		t.Fatal("expected a change")
	}

	if entry.Target != dest.ID {
		t.Fatalf("expected entry to jump straight to dest, got block %d", entry.Target)
	}
}

func TestRunO0IsIdentity(t *testing.T) {
	mod := il.NewModule("m")
	f := il.NewFunction("f", nil, il.VoidType)
	f.EntryBlock().SetReturn(nil)
	mod.AddFunction(f)

	before := len(f.Blocks)

	out, diags := Run(O0, mod)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	if len(out.Functions[0].Blocks) != before {
		t.Fatalf("expected O0 to leave the function unchanged")
	}
}

func TestRunO3CollapsesTrivialChainAndDeadBlocks(t *testing.T) {
	mod := il.NewModule("m")
	f := il.NewFunction("f", nil, il.VoidType)
	entry := f.EntryBlock()
	hop := f.NewBlock("hop")
	dest := f.NewBlock("dest")
	orphan := f.NewBlock("orphan")

	entry.SetJump(hop.ID)
	hop.SetJump(dest.ID)
	dest.SetReturn(nil)
	orphan.SetReturn(nil)

	mod.AddFunction(f)

	out, diags := Run(O3, mod)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}

	got := out.Functions[0]
	if len(got.Blocks) != 2 {
		t.Fatalf("expected hop and orphan to disappear, got %d blocks", len(got.Blocks))
	}

	if got.EntryBlock().Target != dest.ID {
		t.Fatalf("expected entry to jump straight to dest")
	}
}

func TestRunRejectsUnknownLevel(t *testing.T) {
	mod := il.NewModule("m")

	_, diags := Run(Level("bogus"), mod)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an unknown level")
	}
}
