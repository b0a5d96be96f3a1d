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
package callgraph

import "github.com/bits-and-blooms/bitset"

// Cycle is one detected recursive cycle, named functions in call order with
// the first element repeated as the last to show closure (e.g.
// ["a","b","a"] for a mutual a->b->a cycle).
type Cycle struct {
	Functions []string
}

// Direct reports whether f calls itself directly (§3.6 "direct recursion").
func (g *Graph) Direct(f string) bool {
	n, ok := g.nodes[f]
	if !ok {
		return false
	}

	for _, callee := range n.callees.items() {
		if callee == f {
			return true
		}
	}

	return false
}

// frame is one level of the explicit DFS stack: the function being visited
// and the index of the next callee edge to explore. Per DESIGN NOTES §9,
// this replaces native call-stack recursion so a deep or adversarially
// cyclic call graph cannot overflow the goroutine stack.
type frame struct {
	name string
	iter int
}

// FindCycles runs an iterative DFS with stack-coloring (white/gray/black
// via two bitsets keyed by index into g.order) over the whole graph and
// returns every distinct cycle found, in discovery order (§3.6).
func (g *Graph) FindCycles() []Cycle {
	index := make(map[string]uint)
	for i, name := range g.order {
		index[name] = uint(i)
	}

	n := uint(len(g.order))
	onStack := bitset.New(n)
	visited := bitset.New(n)

	var cycles []Cycle

	for _, start := range g.order {
		if visited.Test(index[start]) {
			continue
		}

		stack := []frame{{name: start, iter: 0}}
		onStack.Set(index[start])
		visited.Set(index[start])

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			callees := g.nodes[top.name].callees.items()

			if top.iter >= len(callees) {
				onStack.Clear(index[top.name])
				stack = stack[:len(stack)-1]

				continue
			}

			next := callees[top.iter]
			top.iter++

			if onStack.Test(index[next]) {
				cycles = append(cycles, extractCycle(stack, next))
				continue
			}

			if !visited.Test(index[next]) {
				visited.Set(index[next])
				onStack.Set(index[next])
				stack = append(stack, frame{name: next, iter: 0})
			}
		}
	}

	return cycles
}

// extractCycle walks back from the top of the DFS stack to the frame named
// `closesAt`, returning the functions in call order with the start repeated
// to show closure.
func extractCycle(stack []frame, closesAt string) Cycle {
	start := 0

	for i, f := range stack {
		if f.name == closesAt {
			start = i
			break
		}
	}

	names := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		names = append(names, f.name)
	}

	names = append(names, closesAt)

	return Cycle{Functions: names}
}

// AnyRecursive reports whether f participates in any cycle, direct or
// indirect (§3.6 "recursion prohibited").
func (g *Graph) AnyRecursive(f string) bool {
	for _, c := range g.FindCycles() {
		for _, name := range c.Functions {
			if name == f {
				return true
			}
		}
	}

	return false
}

// MaxCallDepth returns the longest acyclic call chain starting at `entry`,
// measured in edges. A function on a cycle reachable from entry has
// unbounded depth; callers should check FindCycles first and treat that
// case as infinite per §3.6.
func (g *Graph) MaxCallDepth(entry string) int {
	memo := map[string]int{}
	visiting := map[string]bool{}

	var depth func(string) int

	depth = func(name string) int {
		if d, ok := memo[name]; ok {
			return d
		}

		if visiting[name] {
			// On a cycle; caller is responsible for detecting this via
			// FindCycles and rejecting the program before depth matters.
			return 0
		}

		visiting[name] = true

		best := 0

		if n, ok := g.nodes[name]; ok {
			for _, callee := range n.callees.items() {
				if d := depth(callee) + 1; d > best {
					best = d
				}
			}
		}

		visiting[name] = false
		memo[name] = best

		return best
	}

	return depth(entry)
}
