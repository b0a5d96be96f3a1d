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
	"fmt"
	"strings"
)

// Print renders a module as plain indented text, for debugging and golden
// test output. It is not a parseable format.
func Print(m *Module) string {
	var b strings.Builder

	fmt.Fprintf(&b, "module %s {\n", m.Name)
	if m.EntryPoint != "" {
		fmt.Fprintf(&b, "  entry: %s\n", m.EntryPoint)
	}

	for _, g := range m.Globals {
		vis := ""
		if g.Exported {
			vis = "export "
		}
		fmt.Fprintf(&b, "  %sglobal %s: %s\n", vis, g.Name, g.Type)
	}

	for _, f := range m.Functions {
		printFunction(&b, f)
	}

	b.WriteString("}\n")

	return b.String()
}

func printFunction(b *strings.Builder, f *Function) {
	vis := ""
	if f.Exported {
		vis = "export "
	}

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name + ": " + p.Type.String()
	}

	fmt.Fprintf(b, "  %sfunc %s(%s) -> %s {\n", vis, f.Name, strings.Join(params, ", "), f.ReturnType)

	for _, blk := range f.Blocks {
		printBlock(b, blk)
	}

	b.WriteString("  }\n")
}

func printBlock(b *strings.Builder, blk *Block) {
	fmt.Fprintf(b, "    bb%d (%s):\n", blk.ID, blk.Label)

	for _, inst := range blk.Instructions {
		printInstruction(b, inst)
	}

	switch blk.Term {
	case TermJump:
		fmt.Fprintf(b, "      jump bb%d\n", blk.Target)
	case TermBranch:
		fmt.Fprintf(b, "      branch %s, bb%d, bb%d\n", blk.Cond, blk.TrueTarget, blk.FalseTarget)
	case TermReturn:
		if blk.ReturnValue == nil {
			b.WriteString("      return\n")
		} else {
			fmt.Fprintf(b, "      return %s\n", blk.ReturnValue)
		}
	default:
		b.WriteString("      <unterminated>\n")
	}
}

func printInstruction(b *strings.Builder, inst Instruction) {
	operands := make([]string, len(inst.Operands))
	for i, o := range inst.Operands {
		operands[i] = o.String()
	}

	prefix := "      "
	if inst.Result != nil {
		fmt.Fprintf(b, "%s%s = %s %s\n", prefix, Reg(*inst.Result), inst.Opcode, strings.Join(operands, ", "))
		return
	}

	fmt.Fprintf(b, "%s%s %s\n", prefix, inst.Opcode, strings.Join(operands, ", "))
}
