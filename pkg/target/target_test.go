package target

import "testing"

func TestC64UsableBytes(t *testing.T) {
	r := NewRegistry()

	cfg, err := r.Get("c64", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ZeroPage.UsableBytes != 142 {
		t.Fatalf("expected 142 usable bytes, got %d", cfg.ZeroPage.UsableBytes)
	}
}

func TestUnimplementedTargetRequiresOptIn(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get("vic20", false); err == nil {
		t.Fatal("expected TargetNotImplementedError")
	}

	if _, err := r.Get("vic20", true); err != nil {
		t.Fatalf("expected success with allowUnimplemented, got %v", err)
	}
}

func TestUnknownTarget(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get("zx81", false); err == nil {
		t.Fatal("expected UnknownTargetError")
	}
}

// TestAllocationFitBounds is property 9 from spec §8.
func TestAllocationFitBounds(t *testing.T) {
	r := NewRegistry()
	cfg, _ := r.Get("c64", false)

	if !cfg.DoesAllocationFit(0x10, 4) {
		t.Fatal("expected [0x10,0x13] to fit")
	}

	if cfg.DoesAllocationFit(0x00, 2) {
		t.Fatal("expected reserved range to not fit")
	}

	if cfg.DoesAllocationFit(0x8E, 4) {
		t.Fatal("expected allocation crossing into reserved KERNAL range to not fit")
	}

	for start := 0; start < 0x100; start++ {
		if cfg.DoesAllocationFit(start, 3) {
			for k := 0; k < 3; k++ {
				if !cfg.IsAddressSafe(start + k) {
					t.Fatalf("DoesAllocationFit(%d,3) true but offset %d unsafe", start, k)
				}
			}
		}
	}
}
