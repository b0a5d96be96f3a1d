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
package hw6502

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/callgraph"
	"github.com/blendsdk/blend65core/pkg/cfg"
	"github.com/blendsdk/blend65core/pkg/source"
)

func boolLiteral(v bool) *ast.Literal {
	return &ast.Literal{Kind: ast.BoolLiteral, Value: v}
}

func TestEstimatedDepthBaseCase(t *testing.T) {
	a := NewCommon6502Analyzer(nil)

	if got := a.EstimatedDepth(0, nil); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestEstimatedDepthExtraParams(t *testing.T) {
	a := NewCommon6502Analyzer(nil)

	// 5 params: 2 over the register-passed first 3, so +2*2 = 4.
	if got := a.EstimatedDepth(5, nil); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestEstimatedDepthComplexity(t *testing.T) {
	a := NewCommon6502Analyzer(nil)

	body := []ast.Statement{
		&ast.IfStmt{Cond: boolLiteral(true), Then: &ast.Block{}},
		&ast.WhileStmt{Cond: boolLiteral(true), Body: &ast.Block{}},
	}
	g := cfg.Build("f", body)

	if got := a.EstimatedDepth(0, g); got != 6 {
		t.Fatalf("expected 2 + 2*2 = 6, got %d", got)
	}
}

func TestChainDepthsStraightChain(t *testing.T) {
	calls := callgraph.NewGraph()
	calls.Declare("leaf", source.Synthetic)
	calls.Declare("mid", source.Synthetic)
	calls.Declare("top", source.Synthetic)
	calls.AddCall(callgraph.CallSite{Caller: "top", Callee: "mid"})
	calls.AddCall(callgraph.CallSite{Caller: "mid", Callee: "leaf"})

	own := map[string]int{"leaf": 2, "mid": 4, "top": 6}

	depths := ChainDepths(calls, own)

	if depths["leaf"] != 2 {
		t.Fatalf("leaf: expected 2, got %d", depths["leaf"])
	}

	if depths["mid"] != 6 {
		t.Fatalf("mid: expected 6 (4+2), got %d", depths["mid"])
	}

	if depths["top"] != 12 {
		t.Fatalf("top: expected 12 (6+6), got %d", depths["top"])
	}
}

func TestChainDepthsGuardsCycles(t *testing.T) {
	calls := callgraph.NewGraph()
	calls.Declare("a", source.Synthetic)
	calls.Declare("b", source.Synthetic)
	calls.AddCall(callgraph.CallSite{Caller: "a", Callee: "b"})
	calls.AddCall(callgraph.CallSite{Caller: "b", Callee: "a"})

	own := map[string]int{"a": 10, "b": 10}

	depths := ChainDepths(calls, own)

	if depths["a"] != 20 || depths["b"] != 20 {
		t.Fatalf("expected both legs to resolve without hanging, got %v", depths)
	}
}

func TestCheckStackOverflowRiskFlagsDeepChain(t *testing.T) {
	calls := callgraph.NewGraph()
	calls.Declare("deep", source.Synthetic)

	own := map[string]int{"deep": StackOverflowThreshold + 1}

	diags := CheckStackOverflowRisk(calls, own)
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}

	if diags[0].Code != source.CodeStackOverflowRisk {
		t.Fatalf("expected CodeStackOverflowRisk, got %v", diags[0].Code)
	}
}

func TestCheckStackOverflowRiskIgnoresShallowChain(t *testing.T) {
	calls := callgraph.NewGraph()
	calls.Declare("shallow", source.Synthetic)

	own := map[string]int{"shallow": 10}

	if diags := CheckStackOverflowRisk(calls, own); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestRegisterPreferenceRuleOrder(t *testing.T) {
	cases := []struct {
		name string
		hint RegisterHint
		want Register
	}{
		{"indirect wins over everything", RegisterHint{IndirectAccess: true, ArrayIndex: true, LoopCounter: true}, RegY},
		{"array index next", RegisterHint{ArrayIndex: true, LoopCounter: true, LoopDepth: 3}, RegX},
		{"loop counter deep prefers Y", RegisterHint{LoopCounter: true, LoopDepth: 2}, RegY},
		{"loop counter shallow prefers X", RegisterHint{LoopCounter: true, LoopDepth: 1}, RegX},
		{"no preference", RegisterHint{}, RegAny},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := RegisterPreference(c.hint); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestZeroPagePriorityClampsTo100(t *testing.T) {
	h := ZeroPageHint{Accesses: 1000, LoopDepth: 1000, HotAccesses: 1000, IsByte: true, LoopCounter: true}

	if got := ZeroPagePriority(h); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestZeroPagePriorityFormula(t *testing.T) {
	// accesses=10 -> 15, loopDepth=1 -> 8, hot=2 -> 4, byte -> +10, no loop counter.
	h := ZeroPageHint{Accesses: 10, LoopDepth: 1, HotAccesses: 2, IsByte: true}

	if got := ZeroPagePriority(h); got != 37 {
		t.Fatalf("expected 37, got %d", got)
	}
}
