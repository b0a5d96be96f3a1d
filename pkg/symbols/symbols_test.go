package symbols

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/source"
)

func TestDeclareAndLookup(t *testing.T) {
	a := NewArena()

	id, err := a.DeclareVariable(a.Root(), "x", Variable, source0())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := a.Lookup(a.Root(), "x")
	if !ok || got != id {
		t.Fatalf("expected lookup to find %v, got %v/%v", id, got, ok)
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	a := NewArena()

	if _, err := a.DeclareVariable(a.Root(), "x", Variable, source0()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := a.DeclareVariable(a.Root(), "x", Variable, source0()); err == nil {
		t.Fatal("expected duplicate declaration error")
	}
}

// TestScopeClosure is property 1 from spec §8.
func TestScopeClosure(t *testing.T) {
	a := NewArena()
	outerID, _ := a.DeclareVariable(a.Root(), "x", Variable, source0())

	child := a.EnterBlockScope()

	got, ok := a.Lookup(child, "x")
	if !ok || got != outerID {
		t.Fatalf("expected to find outer x from child scope")
	}

	innerID, _ := a.DeclareVariable(child, "x", Variable, source0())

	got, ok = a.Lookup(child, "x")
	if !ok || got != innerID {
		t.Fatal("expected shadowing inner x to win in child scope")
	}

	a.ExitScope()

	if !a.Scope(child).Sealed() {
		t.Fatal("expected child scope to be sealed after ExitScope")
	}

	got, ok = a.Lookup(a.Root(), "x")
	if !ok || got != outerID {
		t.Fatal("expected outer scope lookup unaffected by sealed child")
	}
}

func TestGlobalSymbolTableCrossModuleLookup(t *testing.T) {
	g := NewGlobalSymbolTable()

	a1 := NewArena()
	id, _ := a1.DeclareVariable(a1.Root(), "shared", Variable, source0())
	sym := a1.Symbol(id)
	sym.IsExported = true
	a1.symbols[id] = sym

	g.AddModule("m1", a1)

	a2 := NewArena()
	g.AddModule("m2", a2)

	modName, found, ok := g.Lookup("m2", "shared")
	if !ok || modName != "m1" || found != id {
		t.Fatalf("expected cross-module lookup to find m1.shared, got %s/%v/%v", modName, found, ok)
	}

	if _, _, ok := g.Lookup("m2", "nonexistent"); ok {
		t.Fatal("expected lookup of unknown symbol to fail")
	}
}

func source0() source.Location {
	return source.Location{}
}
