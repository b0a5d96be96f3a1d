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
package hw6502

import (
	"testing"

	"github.com/blendsdk/blend65core/pkg/target"
)

func newC64ZeroPage(t *testing.T) *C64ZeroPage {
	t.Helper()

	z, err := NewC64ZeroPage(target.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return z
}

func TestCategorizeCPUPort(t *testing.T) {
	z := newC64ZeroPage(t)

	if got := z.Categorize(0x00); got != CategoryReservedCPU {
		t.Fatalf("expected reserved_cpu, got %v", got)
	}
}

func TestCategorizeKernalWorkspace(t *testing.T) {
	z := newC64ZeroPage(t)

	if got := z.Categorize(0xFB); got != CategoryReservedKernal {
		t.Fatalf("expected reserved_kernal, got %v", got)
	}
}

func TestCategorizeSafe(t *testing.T) {
	z := newC64ZeroPage(t)

	if got := z.Categorize(0x02); got != CategorySafe {
		t.Fatalf("expected safe, got %v", got)
	}
}

func TestSuggestZeroPageAllocationFirstFit(t *testing.T) {
	z := newC64ZeroPage(t)

	addr, ok := z.SuggestZeroPageAllocation(4)
	if !ok {
		t.Fatal("expected a fit")
	}

	if addr != 0x02 {
		t.Fatalf("expected first-fit at 0x02, got %#x", addr)
	}
}

func TestSuggestZeroPageAllocationTooLarge(t *testing.T) {
	z := newC64ZeroPage(t)

	if _, ok := z.SuggestZeroPageAllocation(1000); ok {
		t.Fatal("expected no fit for an oversized allocation")
	}
}

func TestSuggestWorstFitMatchesSafeRangeWidth(t *testing.T) {
	z := newC64ZeroPage(t)

	addr, ok := z.suggestWorstFit(4)
	if !ok {
		t.Fatal("expected a fit")
	}

	// The entire C64 safe range (0x02..0x8F) is one contiguous free run, so
	// worst-fit and first-fit agree on the starting address.
	if addr != 0x02 {
		t.Fatalf("expected 0x02, got %#x", addr)
	}
}
