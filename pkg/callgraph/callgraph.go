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

// Package callgraph implements §3.6: the call graph, direct/indirect
// recursion detection and related reachability queries. Per DESIGN NOTES
// §9, cycle extraction uses an explicit iterative DFS with an on-stack
// slice rather than native recursion, so a pathologically deep call chain
// cannot overflow the Go goroutine stack during analysis of adversarial
// input.
package callgraph

import "github.com/blendsdk/blend65core/pkg/source"

// CallSite records one call expression's location (§3.6).
type CallSite struct {
	Caller, Callee string
	Location       source.Location
}

// node is the internal per-function bookkeeping; exposed read-only via
// Node.
type node struct {
	name     string
	location source.Location
	callees  *orderedSet
	callers  *orderedSet
}

// Node is the read-only view of one function's call-graph entry (§3.6).
type Node struct {
	Name     string
	Location source.Location
	Callees  []string
	Callers  []string
}

// Graph is the whole program's call graph (§3.6). Unknown callees (calls to
// a name that never resolved to a declaration) get a placeholder node so
// downstream recursion/reachability analyses remain sound, per §4.3 pass 5.
type Graph struct {
	order []string
	nodes map[string]*node
	sites []CallSite
}

// NewGraph constructs an empty call graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

func (g *Graph) ensure(name string, loc source.Location) *node {
	if n, ok := g.nodes[name]; ok {
		return n
	}

	n := &node{name: name, location: loc, callees: newOrderedSet(), callers: newOrderedSet()}
	g.nodes[name] = n
	g.order = append(g.order, name)

	return n
}

// Declare registers a known function declaration (even one with no calls in
// or out) so it appears in EntryPoints/Leaves/unreachable-function queries.
func (g *Graph) Declare(name string, loc source.Location) {
	g.ensure(name, loc)
}

// AddCall records a call edge. Intrinsics never participate (§3.6, §4.3
// pass 5) -- callers are expected to filter those out before calling
// AddCall, since this package has no intrinsic registry of its own.
func (g *Graph) AddCall(site CallSite) {
	caller := g.ensure(site.Caller, source.Synthetic)
	callee := g.ensure(site.Callee, source.Synthetic)

	caller.callees.insert(site.Callee)
	callee.callers.insert(site.Caller)
	g.sites = append(g.sites, site)
}

// Node returns the read-only view of one function, in deterministic
// (insertion-ordered-set) order.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	if !ok {
		return Node{}, false
	}

	return Node{n.name, n.location, n.callees.items(), n.callers.items()}, true
}

// Functions returns every known function name in declaration/discovery
// order.
func (g *Graph) Functions() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)

	return out
}

// CallSites returns every recorded call site in discovery order.
func (g *Graph) CallSites() []CallSite {
	out := make([]CallSite, len(g.sites))
	copy(out, g.sites)

	return out
}

// EntryPoints returns functions with no callers.
func (g *Graph) EntryPoints() []string {
	var out []string

	for _, name := range g.order {
		if len(g.nodes[name].callers.items()) == 0 {
			out = append(out, name)
		}
	}

	return out
}

// Leaves returns functions that call nothing.
func (g *Graph) Leaves() []string {
	var out []string

	for _, name := range g.order {
		if len(g.nodes[name].callees.items()) == 0 {
			out = append(out, name)
		}
	}

	return out
}

// UnreachableFrom returns every declared function not reachable from
// `entry` via call edges.
func (g *Graph) UnreachableFrom(entry string) []string {
	reached := map[string]bool{}

	var visit func(string)

	visit = func(name string) {
		if reached[name] {
			return
		}

		reached[name] = true

		if n, ok := g.nodes[name]; ok {
			for _, callee := range n.callees.items() {
				visit(callee)
			}
		}
	}

	visit(entry)

	var out []string

	for _, name := range g.order {
		if !reached[name] {
			out = append(out, name)
		}
	}

	return out
}
