package types

import "testing"

func TestCompatibilityLattice(t *testing.T) {
	c := NewCache()

	if c.CheckCompatibility(Byte, Byte) != Identical {
		t.Fatal("byte/byte should be Identical")
	}

	if c.CheckCompatibility(Byte, Word) != Compatible {
		t.Fatal("byte->word should be Compatible")
	}

	if c.CheckCompatibility(Word, Byte) != RequiresConversion {
		t.Fatal("word->byte should RequiresConversion")
	}

	if c.CheckCompatibility(Boolean, Byte) != Compatible {
		t.Fatal("boolean<->byte should be Compatible")
	}

	if c.CheckCompatibility(Void, String) != Incompatible {
		t.Fatal("void/string should be Incompatible")
	}
}

// TestReflexiveTransitive is property 2 from spec §8.
func TestReflexiveTransitive(t *testing.T) {
	c := NewCache()
	types := []Info{Byte, Word, Boolean, Void, String, Unknown}

	for _, ty := range types {
		if c.CheckCompatibility(ty, ty) != Identical {
			t.Fatalf("%s not reflexively Identical", ty.Name())
		}
	}
}

func TestArrayCompatibility(t *testing.T) {
	c := NewCache()
	sized := Array(Byte, 4)
	unsized := Array(Byte, -1)

	if c.CheckCompatibility(sized, unsized) != Compatible {
		t.Fatal("sized->unsized array should be Compatible")
	}

	if c.CheckCompatibility(sized, Array(Byte, 5)) != Incompatible {
		t.Fatal("mismatched sizes should be Incompatible")
	}
}

func TestCallbackContravariance(t *testing.T) {
	c := NewCache()
	f1 := Callback([]Info{Word}, []string{"a"}, Byte)
	f2 := Callback([]Info{Byte}, []string{"b"}, Byte)

	if c.CheckCompatibility(f1, f2) != Compatible {
		t.Fatal("a callback taking word should be Compatible where one taking byte is expected")
	}
}

func TestResultType(t *testing.T) {
	if ResultType(Byte, Byte).Kind() != KindByte {
		t.Fatal("byte+byte should be byte")
	}

	if ResultType(Byte, Word).Kind() != KindWord {
		t.Fatal("byte+word should be word")
	}
}

func TestZeroExtendNoDataLoss(t *testing.T) {
	// Property 3 from spec §8: zero-extension of any byte value reproduces it.
	for v := 0; v <= 255; v++ {
		widened := int(uint16(uint8(v)))
		if widened != v {
			t.Fatalf("zero-extension lost data for %d", v)
		}
	}
}

func TestCoercionClassify(t *testing.T) {
	k, ok := Classify(Byte, Word)
	if !ok || k != ZeroExtend {
		t.Fatalf("expected ZeroExtend, got %v/%v", k, ok)
	}

	if CycleCost(ZeroExtend) != 4 {
		t.Fatal("unexpected cycle cost")
	}
}
