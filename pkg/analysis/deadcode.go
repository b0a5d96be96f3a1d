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
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/cfg"
	"github.com/blendsdk/blend65core/pkg/source"
)

// DeadCodeCause classifies why a statement is unreachable (§4.3.d).
type DeadCodeCause uint8

const (
	Unreachable DeadCodeCause = iota
	AfterReturn
	AfterBreak
	AfterContinue
	AfterInfiniteLoop
)

func (c DeadCodeCause) String() string {
	switch c {
	case AfterReturn:
		return "after return"
	case AfterBreak:
		return "after break"
	case AfterContinue:
		return "after continue"
	case AfterInfiniteLoop:
		return "after infinite loop"
	default:
		return "unreachable"
	}
}

// DeadCodeFinding is one unreachable statement (§4.3.d).
type DeadCodeFinding struct {
	FunctionName string
	Node         *cfg.Node
	Cause        DeadCodeCause
}

// runDeadCode is §4.3.d: given a CFG with reachability already computed
// (pass 4), reports every unreachable statement and infers its cause by
// scanning the node's predecessors for the nearest reachable terminator.
func (a *analyzer) runDeadCode(fd *ast.FuncDecl) []DeadCodeFinding {
	g, ok := a.cfgs[fd.Name]
	if !ok {
		return nil
	}

	var findings []DeadCodeFinding

	for _, n := range g.GetUnreachableNodes() {
		cause := inferDeadCodeCause(g, n)
		findings = append(findings, DeadCodeFinding{FunctionName: fd.Name, Node: n, Cause: cause})

		a.bag.Add(source.Warnf(source.CodeUnreachableCode, n.Statement.Location(),
			"unreachable code (%s)", cause))
	}

	return findings
}

// inferDeadCodeCause looks at the predecessors recorded at construction
// time (before reachability pruning) to guess what produced the dead
// region; a node whose only predecessor is a Return/Break/Continue/Loop
// header with no other live path in is attributed to that construct.
func inferDeadCodeCause(g *cfg.Graph, n *cfg.Node) DeadCodeCause {
	for _, predID := range n.Predecessors {
		pred := g.Node(predID)

		switch pred.Kind {
		case cfg.ReturnNode:
			return AfterReturn
		case cfg.BreakNode:
			return AfterBreak
		case cfg.ContinueNode:
			return AfterContinue
		case cfg.LoopNode:
			if !pred.Reachable {
				continue
			}
			// A reachable loop header whose false-exit edge lands in dead
			// code means the loop's condition is never observed to become
			// false on any live path (e.g. `while true`).
			return AfterInfiniteLoop
		}
	}

	return Unreachable
}
