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
package cfg

import "github.com/blendsdk/blend65core/pkg/ast"

// loopContext tracks the header/exit nodes `break`/`continue` must target,
// matching §4.3 pass 4: "break/continue connect to the nearest loop's
// exit/header".
type loopContext struct {
	header NodeID
	exit   NodeID
}

// Build constructs the control-flow graph for one function body (§4.3 pass
// 4). `entryLoc`-free: statements carry their own locations via the AST.
func Build(functionName string, body []ast.Statement) *Graph {
	g := &Graph{FunctionName: functionName}
	g.Entry = g.newNode(Entry, nil)
	g.Exit = g.newNode(Exit, nil)

	b := &builder{g: g}
	last := b.lowerBlock(g.Entry, body, nil)
	g.connect(last, g.Exit)

	return g
}

type builder struct {
	g     *Graph
	loops []loopContext
}

// lowerBlock lowers a statement sequence starting from `entry` and returns
// the node flow falls through to after the last statement. After a
// `return`/`break`/`continue`, lowering continues from a fresh node of the
// same kind with no incoming edge, so any statements that follow are
// unreachable and keep that terminator kind as their predecessor.
func (b *builder) lowerBlock(entry NodeID, stmts []ast.Statement, loop *loopContext) NodeID {
	cur := entry

	for _, s := range stmts {
		cur = b.lowerStatement(cur, s, loop)

		switch kind := b.g.nodes[cur].Kind; kind {
		case ReturnNode, BreakNode, ContinueNode:
			cur = b.g.newNode(kind, nil)
		}
	}

	return cur
}

func (b *builder) lowerStatement(cur NodeID, s ast.Statement, loop *loopContext) NodeID {
	switch st := s.(type) {
	case *ast.IfStmt:
		return b.lowerIf(cur, st, loop)
	case *ast.WhileStmt:
		return b.lowerWhile(cur, st)
	case *ast.ForStmt:
		return b.lowerFor(cur, st)
	case *ast.ReturnStmt:
		node := b.g.newNode(ReturnNode, st)
		b.g.connect(cur, node)
		b.g.connect(node, b.g.Exit)

		return node
	case *ast.BreakStmt:
		node := b.g.newNode(BreakNode, st)
		b.g.connect(cur, node)

		if len(b.loops) > 0 {
			b.g.connect(node, b.loops[len(b.loops)-1].exit)
		}

		return node
	case *ast.ContinueStmt:
		node := b.g.newNode(ContinueNode, st)
		b.g.connect(cur, node)

		if len(b.loops) > 0 {
			b.g.connect(node, b.loops[len(b.loops)-1].header)
		}

		return node
	case *ast.Block:
		return b.lowerBlock(cur, st.Statements, loop)
	default:
		node := b.g.newNode(StatementNode, st)
		b.g.connect(cur, node)

		return node
	}
}

func (b *builder) lowerIf(cur NodeID, st *ast.IfStmt, loop *loopContext) NodeID {
	branch := b.g.newNode(BranchNode, st)
	b.g.connect(cur, branch)

	merge := b.g.newNode(MergeNode, nil)

	thenEnd := b.lowerBlock(branch, st.Then.Statements, loop)
	b.g.connect(thenEnd, merge)

	if st.Else != nil {
		elseEnd := b.lowerBlock(branch, st.Else.Statements, loop)
		b.g.connect(elseEnd, merge)
	} else {
		// No else branch: the false edge falls straight through to merge.
		b.g.connect(branch, merge)
	}

	return merge
}

func (b *builder) lowerWhile(cur NodeID, st *ast.WhileStmt) NodeID {
	header := b.g.newNode(LoopNode, st)
	b.g.connect(cur, header)

	exit := b.g.newNode(MergeNode, nil)

	b.loops = append(b.loops, loopContext{header: header, exit: exit})
	bodyEnd := b.lowerBlock(header, st.Body.Statements, &b.loops[len(b.loops)-1])
	b.loops = b.loops[:len(b.loops)-1]

	b.g.connect(bodyEnd, header) // back-edge
	b.g.connect(header, exit)    // loop-false exit

	return exit
}

func (b *builder) lowerFor(cur NodeID, st *ast.ForStmt) NodeID {
	// `for n = a to b step s` desugars to a while loop guarded by the
	// bound check, per §4.3 pass 4.
	header := b.g.newNode(LoopNode, st)
	b.g.connect(cur, header)

	exit := b.g.newNode(MergeNode, nil)

	b.loops = append(b.loops, loopContext{header: header, exit: exit})
	bodyEnd := b.lowerBlock(header, st.Body.Statements, &b.loops[len(b.loops)-1])
	b.loops = b.loops[:len(b.loops)-1]

	b.g.connect(bodyEnd, header)
	b.g.connect(header, exit)

	return exit
}
