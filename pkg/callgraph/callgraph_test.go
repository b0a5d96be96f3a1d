package callgraph

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/source"
)

func TestEntryPointsAndLeaves(t *testing.T) {
	g := NewGraph()
	g.Declare("main", source.Synthetic)
	g.Declare("helper", source.Synthetic)
	g.AddCall(CallSite{Caller: "main", Callee: "helper"})

	entries := g.EntryPoints()
	if len(entries) != 1 || entries[0] != "main" {
		t.Fatalf("expected only main as entry point, got %v", entries)
	}

	leaves := g.Leaves()
	if len(leaves) != 1 || leaves[0] != "helper" {
		t.Fatalf("expected only helper as leaf, got %v", leaves)
	}
}

func TestDirectRecursionDetected(t *testing.T) {
	g := NewGraph()
	g.Declare("f", source.Synthetic)
	g.AddCall(CallSite{Caller: "f", Callee: "f"})

	if !g.Direct("f") {
		t.Fatal("expected direct recursion on f")
	}

	cycles := g.FindCycles()
	if len(cycles) != 1 {
		t.Fatalf("expected exactly one cycle, got %d", len(cycles))
	}
}

func TestIndirectRecursionDetected(t *testing.T) {
	g := NewGraph()
	g.Declare("a", source.Synthetic)
	g.Declare("b", source.Synthetic)
	g.Declare("c", source.Synthetic)
	g.AddCall(CallSite{Caller: "a", Callee: "b"})
	g.AddCall(CallSite{Caller: "b", Callee: "c"})
	g.AddCall(CallSite{Caller: "c", Callee: "a"})

	if g.Direct("a") {
		t.Fatal("a does not call itself directly")
	}

	if !g.AnyRecursive("a") || !g.AnyRecursive("b") || !g.AnyRecursive("c") {
		t.Fatal("expected a, b, c all to participate in the mutual cycle")
	}
}

func TestUnreachableFromEntry(t *testing.T) {
	g := NewGraph()
	g.Declare("main", source.Synthetic)
	g.Declare("used", source.Synthetic)
	g.Declare("orphan", source.Synthetic)
	g.AddCall(CallSite{Caller: "main", Callee: "used"})

	unreachable := g.UnreachableFrom("main")
	if len(unreachable) != 1 || unreachable[0] != "orphan" {
		t.Fatalf("expected only orphan unreachable, got %v", unreachable)
	}
}

func TestMaxCallDepthAcyclic(t *testing.T) {
	g := NewGraph()
	g.Declare("a", source.Synthetic)
	g.Declare("b", source.Synthetic)
	g.Declare("c", source.Synthetic)
	g.AddCall(CallSite{Caller: "a", Callee: "b"})
	g.AddCall(CallSite{Caller: "b", Callee: "c"})

	if d := g.MaxCallDepth("a"); d != 2 {
		t.Fatalf("expected depth 2, got %d", d)
	}
}
