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

// Package cfg implements per-function control-flow graphs (§3.5), built by
// structural lowering of statements. Node/edge bookkeeping is grounded on
// the branch/merge-point tracking used by the teacher's micro-instruction
// control flow (`pkg/asm/compiler/branch_table.go`, `insn_ifgoto.go`),
// generalized from a single flat instruction stream to Blend65's nested
// if/while/for statement forms.
package cfg

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/blendsdk/blend65core/pkg/ast"
)

// NodeKind enumerates the CFG node kinds (§3.5).
type NodeKind uint8

const (
	Entry NodeKind = iota
	Exit
	StatementNode
	BranchNode
	MergeNode
	LoopNode
	ReturnNode
	BreakNode
	ContinueNode
)

// NodeID indexes a node within one Graph.
type NodeID int

// Node is one control-flow point (§3.5).
type Node struct {
	ID           NodeID
	Kind         NodeKind
	Statement    ast.Statement // nil for Entry/Exit/synthetic merge/branch nodes
	Successors   []NodeID
	Predecessors []NodeID
	Reachable    bool
}

// Graph is one function's control-flow graph (§3.5).
type Graph struct {
	FunctionName string
	Entry        NodeID
	Exit         NodeID
	nodes        []*Node
}

func (g *Graph) newNode(kind NodeKind, stmt ast.Statement) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &Node{ID: id, Kind: kind, Statement: stmt})

	return id
}

func (g *Graph) connect(from, to NodeID) {
	g.nodes[from].Successors = append(g.nodes[from].Successors, to)
	g.nodes[to].Predecessors = append(g.nodes[to].Predecessors, from)
}

// GetNodes returns every node in construction order.
func (g *Graph) GetNodes() []*Node {
	return g.nodes
}

// Node dereferences a NodeID.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// GetStatementNodes returns only the nodes that carry a real statement
// (excludes Entry/Exit/synthetic Branch-Merge bookkeeping nodes with no
// statement attached).
func (g *Graph) GetStatementNodes() []*Node {
	var out []*Node

	for _, n := range g.nodes {
		if n.Statement != nil {
			out = append(out, n)
		}
	}

	return out
}

// ComputeReachability runs a forward BFS from Entry marking `Reachable`,
// using a bitset for the visited-set rather than a hand-rolled bool slice,
// per SPEC_FULL.md's dense-bitvector wiring of `bits-and-blooms/bitset`.
// Must be called before GetUnreachableNodes.
func (g *Graph) ComputeReachability() {
	visited := bitset.New(uint(len(g.nodes)))
	queue := []NodeID{g.Entry}
	visited.Set(uint(g.Entry))

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		g.nodes[cur].Reachable = true

		for _, succ := range g.nodes[cur].Successors {
			if !visited.Test(uint(succ)) {
				visited.Set(uint(succ))
				queue = append(queue, succ)
			}
		}
	}
}

// GetUnreachableNodes returns statement nodes not reached by the last
// ComputeReachability pass (§8 property 6 "dead-code soundness").
func (g *Graph) GetUnreachableNodes() []*Node {
	var out []*Node

	for _, n := range g.GetStatementNodes() {
		if !n.Reachable {
			out = append(out, n)
		}
	}

	return out
}
