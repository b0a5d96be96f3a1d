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
	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/cfg"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/symbols"
)

// InterferencePair is one pair of simultaneously-live locals (§4.3.c
// `computeInterference`), consumed by a downstream register allocator.
type InterferencePair struct {
	A, B symbols.SymbolID
}

// LivenessResult is one function's backward dataflow solution (§4.3.c).
type LivenessResult struct {
	FunctionName  string
	LiveIn        map[cfg.NodeID]*bitset.BitSet
	LiveOut       map[cfg.NodeID]*bitset.BitSet
	Vars          []symbols.SymbolID // index -> symbol, the bit position universe
	Iterations    int
	ExceededCap   bool
	DeadDefs      []cfg.NodeID
	Interferences []InterferencePair
}

// runLiveness is §4.3.c: classical backward dataflow over the function's
// CFG, using a bitset per node for live-in/live-out (grounded on the same
// `bits-and-blooms/bitset` dependency pkg/cfg uses for reachability).
func (a *analyzer) runLiveness(fd *ast.FuncDecl) *LivenessResult {
	g, ok := a.cfgs[fd.Name]
	if !ok {
		return nil
	}

	scope := a.scopeOf(fd, a.arena.Current())

	index := map[symbols.SymbolID]uint{}
	var universe []symbols.SymbolID

	idxOf := func(id symbols.SymbolID) uint {
		if i, ok := index[id]; ok {
			return i
		}

		i := uint(len(universe))
		index[id] = i
		universe = append(universe, id)

		return i
	}

	nodes := g.GetNodes()
	use := make([]*bitset.BitSet, len(nodes))
	def := make([]*bitset.BitSet, len(nodes))
	defSym := make([]symbols.SymbolID, len(nodes))

	for _, n := range nodes {
		u := bitset.New(0)
		d := bitset.New(0)
		defSym[n.ID] = symbols.NoSymbol

		readID := func(name string) {
			if sid, ok := a.arena.Lookup(scope, name); ok {
				u.Set(idxOf(sid))
			}
		}

		writeID := func(name string) {
			if sid, ok := a.arena.Lookup(scope, name); ok {
				d.Set(idxOf(sid))
				defSym[n.ID] = sid
			}
		}

		switch st := n.Statement.(type) {
		case *ast.LocalVarStmt:
			if st.Decl.Init != nil {
				collectIdentifiers(st.Decl.Init, readID)
				writeID(st.Decl.Name)
			}
		case *ast.AssignStmt:
			collectIdentifiers(st.Value, readID)

			if id, ok := st.Target.(*ast.Identifier); ok {
				writeID(id.Name)
			} else {
				collectIdentifiers(st.Target, readID)
			}
		case *ast.ExprStmt:
			collectIdentifiers(st.Expr, readID)
		case *ast.IfStmt:
			collectIdentifiers(st.Cond, readID)
		case *ast.WhileStmt:
			collectIdentifiers(st.Cond, readID)
		case *ast.ForStmt:
			collectIdentifiers(st.Start, readID)
			collectIdentifiers(st.End, readID)

			if st.Step != nil {
				collectIdentifiers(st.Step, readID)
			}

			writeID(st.Counter)
		case *ast.ReturnStmt:
			if st.Value != nil {
				collectIdentifiers(st.Value, readID)
			}
		}

		use[n.ID] = u
		def[n.ID] = d
	}

	n := uint(len(universe))

	liveIn := make([]*bitset.BitSet, len(nodes))
	liveOut := make([]*bitset.BitSet, len(nodes))

	for i := range nodes {
		liveIn[i] = bitset.New(n)
		liveOut[i] = bitset.New(n)
	}

	cap := a.opts.livenessCap()
	iterations := 0
	exceeded := false

	for {
		iterations++

		changed := false

		for _, node := range nodes {
			newOut := bitset.New(n)

			for _, succ := range node.Successors {
				newOut.InPlaceUnion(liveIn[succ])
			}

			newIn := newOut.Difference(def[node.ID])
			newIn.InPlaceUnion(use[node.ID])

			if !newIn.Equal(liveIn[node.ID]) || !newOut.Equal(liveOut[node.ID]) {
				changed = true
			}

			liveIn[node.ID] = newIn
			liveOut[node.ID] = newOut
		}

		if !changed {
			break
		}

		if iterations >= cap {
			exceeded = true

			log.WithFields(log.Fields{"function": fd.Name, "cap": cap}).
				Warn("liveness fixed point did not converge within the iteration cap")

			a.bag.Add(source.Warnf(source.CodeInternalError, fd.Loc,
				"liveness analysis for %s did not converge within %d iterations", fd.Name, cap))

			break
		}
	}

	result := &LivenessResult{
		FunctionName: fd.Name,
		LiveIn:       map[cfg.NodeID]*bitset.BitSet{},
		LiveOut:      map[cfg.NodeID]*bitset.BitSet{},
		Vars:         universe,
		Iterations:   iterations,
		ExceededCap:  exceeded,
	}

	for _, node := range nodes {
		result.LiveIn[node.ID] = liveIn[node.ID]
		result.LiveOut[node.ID] = liveOut[node.ID]

		if defSym[node.ID] != symbols.NoSymbol && !liveOut[node.ID].Test(index[defSym[node.ID]]) {
			result.DeadDefs = append(result.DeadDefs, node.ID)
		}
	}

	result.Interferences = computeInterference(universe, liveIn, liveOut)

	return result
}

// computeInterference derives pairwise interference from every node's
// combined live set (§4.3.c `computeInterference`).
func computeInterference(universe []symbols.SymbolID, liveIn, liveOut []*bitset.BitSet) []InterferencePair {
	seen := map[[2]symbols.SymbolID]bool{}

	var pairs []InterferencePair

	consider := func(b *bitset.BitSet) {
		var live []uint

		for i, e := b.NextSet(0); e; i, e = b.NextSet(i + 1) {
			live = append(live, i)
		}

		for i := 0; i < len(live); i++ {
			for j := i + 1; j < len(live); j++ {
				a, bsym := universe[live[i]], universe[live[j]]
				if a > bsym {
					a, bsym = bsym, a
				}

				key := [2]symbols.SymbolID{a, bsym}
				if !seen[key] {
					seen[key] = true
					pairs = append(pairs, InterferencePair{A: a, B: bsym})
				}
			}
		}
	}

	for _, b := range liveIn {
		consider(b)
	}

	for _, b := range liveOut {
		consider(b)
	}

	return pairs
}

func collectIdentifiers(e ast.Expression, visit func(name string)) {
	ast.WalkExpression(e, func(sub ast.Expression) {
		if id, ok := sub.(*ast.Identifier); ok {
			visit(id.Name)
		}
	})
}
