package source

import "testing"

func TestFilePositionOf(t *testing.T) {
	f := NewFile("t.b65", []byte("let x = 1;\nlet y = 2;\n"))

	p := f.PositionOf(0)
	if p.Line != 1 || p.Column != 1 {
		t.Fatalf("expected 1:1, got %s", p)
	}

	p = f.PositionOf(11)
	if p.Line != 2 || p.Column != 1 {
		t.Fatalf("expected 2:1, got %s", p)
	}
}

func TestBagStableOrdering(t *testing.T) {
	var bag Bag

	locA := Location{File: "a.b65", Start: Position{Line: 5, Column: 1}}
	locB := Location{File: "a.b65", Start: Position{Line: 1, Column: 1}}

	bag.Add(Errorf(CodeTypeMismatch, locA, "bad"))
	bag.Add(Errorf(CodeUndefinedSymbol, locB, "missing"))

	ds := bag.Diagnostics()
	if ds[0].Location.Start.Line != 1 {
		t.Fatalf("expected earlier line first, got %+v", ds)
	}

	if !bag.HasErrors() {
		t.Fatal("expected HasErrors to be true")
	}
}

func TestCodeString(t *testing.T) {
	if CodeRecursionProhibited.String() != "RECURSION_PROHIBITED" {
		t.Fatalf("unexpected code name: %s", CodeRecursionProhibited)
	}
}
