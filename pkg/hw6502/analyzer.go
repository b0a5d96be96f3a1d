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

// Package hw6502 implements the Common6502Analyzer (§4.6): stack-usage
// estimation, register-preference hinting and zero-page priority scoring
// that are common to every 6502-family target, plus (in zeropage.go) the
// C64-specific zero-page categorization layer. Grounded on
// `pkg/asm/compiler/frame.go`'s per-invocation control-line accounting
// (estimating the extra state one function activation needs) and
// `pkg/asm/compiler/branch_table.go`'s table-driven per-target structuring.
package hw6502

import (
	log "github.com/sirupsen/logrus"

	"github.com/blendsdk/blend65core/pkg/callgraph"
	"github.com/blendsdk/blend65core/pkg/cfg"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/target"
)

// StackBudget is the full 6502 hardware stack, in bytes (§4.6).
const StackBudget = 256

// StackOverflowThreshold is 75% of StackBudget (§4.6): a function whose
// deepest call chain estimate exceeds this is flagged StackOverflowRisk.
const StackOverflowThreshold = StackBudget * 3 / 4

// Register names one of the three 6502 registers a value may prefer to be
// allocated to, or "any" when no preference applies (§4.6).
type Register string

// The register preferences RegisterPreference can return.
const (
	RegA   Register = "A"
	RegX   Register = "X"
	RegY   Register = "Y"
	RegAny Register = "any"
)

// RegisterHint carries the flags RegisterPreference's rule order consults
// (§4.6).
type RegisterHint struct {
	IndirectAccess bool
	ArrayIndex     bool
	LoopCounter    bool
	LoopDepth      int
}

// ZeroPageHint carries the inputs ZeroPagePriority scores (§4.6).
type ZeroPageHint struct {
	Accesses    int
	LoopDepth   int
	HotAccesses int
	IsByte      bool
	LoopCounter bool
}

// Analyzer is the Common6502Analyzer (§4.6), bound to one target's static
// facts (currently unused by the formulas below, which are target-generic,
// but kept so a future target with a different hardware stack depth could
// override StackBudget per instance).
type Analyzer struct {
	target *target.Config
}

// NewCommon6502Analyzer constructs an analyzer for one resolved target.
func NewCommon6502Analyzer(cfg *target.Config) *Analyzer {
	return &Analyzer{target: cfg}
}

// EstimatedDepth computes one function's own stack-depth contribution
// (§4.6): 2 bytes for the return address, plus 2 bytes for each parameter
// beyond the first three (register-passed), plus 2 bytes per unit of
// complexityHeuristic(body).
func (a *Analyzer) EstimatedDepth(paramCount int, body *cfg.Graph) int {
	return 2 + 2*max(0, paramCount-3) + 2*complexityHeuristic(body)
}

// complexityHeuristic counts branch/loop control points in a function's
// CFG, used as a cheap proxy for how much extra state a function's
// activation record needs to hold live across control transfers.
func complexityHeuristic(body *cfg.Graph) int {
	if body == nil {
		return 0
	}

	score := 0

	for _, n := range body.GetNodes() {
		switch n.Kind {
		case cfg.BranchNode, cfg.LoopNode:
			score++
		}
	}

	return score
}

// ChainDepths computes, for every function `own` has an entry for, the
// stack depth of its deepest call chain: its own contribution plus the
// deepest depth reachable through any callee. `own` maps a function name to
// its EstimatedDepth. Recursion is already prohibited by pass 6 (§4.3.6),
// so the call graph given here is expected to be a DAG; a cycle is still
// guarded against defensively (a function mid-visit that appears again is
// treated as contributing no further depth) so a bug upstream cannot hang
// this analysis. Depths computed during a traversal that hit such a cycle
// are not memoised, so each function's result counts itself once.
func ChainDepths(calls *callgraph.Graph, own map[string]int) map[string]int {
	memo := make(map[string]int, len(own))
	visiting := make(map[string]bool, len(own))
	cut := false

	var visit func(name string) int

	visit = func(name string) int {
		if d, ok := memo[name]; ok {
			return d
		}

		if visiting[name] {
			cut = true
			return 0
		}

		visiting[name] = true

		best := 0
		if node, ok := calls.Node(name); ok {
			for _, callee := range node.Callees {
				if d := visit(callee); d > best {
					best = d
				}
			}
		}

		delete(visiting, name)

		total := own[name] + best
		if !cut {
			memo[name] = total
		}

		return total
	}

	out := make(map[string]int, len(own))
	for name := range own {
		cut = false
		out[name] = visit(name)
	}

	return out
}

// CheckStackOverflowRisk emits a StackOverflowRisk warning (§4.6) for every
// function whose ChainDepths result exceeds StackOverflowThreshold.
func CheckStackOverflowRisk(calls *callgraph.Graph, own map[string]int) []source.Diagnostic {
	depths := ChainDepths(calls, own)

	var diags []source.Diagnostic

	for _, name := range calls.Functions() {
		depth, ok := depths[name]
		if !ok || depth <= StackOverflowThreshold {
			continue
		}

		node, _ := calls.Node(name)
		log.WithFields(log.Fields{"function": name, "estimatedBytes": depth}).Warn("stack overflow risk")
		diags = append(diags, source.Warnf(source.CodeStackOverflowRisk, node.Location,
			"function %q's deepest call chain uses an estimated %d bytes of stack (budget %d)",
			name, depth, StackBudget))
	}

	return diags
}

// RegisterPreference returns the preferred 6502 register for a value given
// how it's used (§4.6 rule order): indirect addressing wins first, then
// array indexing, then loop-counter-at-depth, defaulting to no preference.
func RegisterPreference(h RegisterHint) Register {
	switch {
	case h.IndirectAccess:
		return RegY
	case h.ArrayIndex:
		return RegX
	case h.LoopCounter:
		if h.LoopDepth > 1 {
			return RegY
		}

		return RegX
	default:
		return RegAny
	}
}

// ZeroPagePriority scores how strongly a value should be allocated to zero
// page (§4.6), 0-100.
func ZeroPagePriority(h ZeroPageHint) int {
	score := min(30.0, 1.5*float64(h.Accesses)) +
		min(25.0, 8*float64(h.LoopDepth)) +
		min(20.0, 2*float64(h.HotAccesses))

	if h.IsByte {
		score += 10
	}

	if h.LoopCounter {
		score += 15
	}

	return min(100, int(score+0.5))
}
