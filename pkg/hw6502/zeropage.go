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

import "github.com/blendsdk/blend65core/pkg/target"

// ZeroPageCategory classifies a C64 zero-page address for the allocator's
// benefit (§4.6's target-specific layer), matching the two reserved ranges
// `pkg/target`'s c64Config names: the 6510 CPU I/O port and the
// KERNAL/BASIC workspace.
type ZeroPageCategory uint8

// The zero-page categories Categorize can return.
const (
	CategoryUnknown ZeroPageCategory = iota
	CategorySafe
	CategoryReservedCPU
	CategoryReservedKernal
)

func (c ZeroPageCategory) String() string {
	switch c {
	case CategorySafe:
		return "safe"
	case CategoryReservedCPU:
		return "reserved_cpu"
	case CategoryReservedKernal:
		return "reserved_kernal"
	default:
		return "unknown"
	}
}

// the fixed C64 boundaries between the CPU I/O port and the KERNAL
// workspace reservations, per pkg/target's c64Config.
const (
	c64CPUPortStart    = 0x00
	c64CPUPortEnd      = 0x01
	c64KernalZoneStart = 0x90
	c64KernalZoneEnd   = 0xFF
)

// C64ZeroPage categorizes C64 zero-page addresses and proposes contiguous
// allocations within the safe range (§4.6).
type C64ZeroPage struct {
	cfg *target.Config
}

// NewC64ZeroPage constructs the C64 zero-page categorizer from the
// registry's resolved c64 config.
func NewC64ZeroPage(reg *target.Registry) (*C64ZeroPage, error) {
	cfg, err := reg.Get(string(target.C64), true)
	if err != nil {
		return nil, err
	}

	return &C64ZeroPage{cfg: cfg}, nil
}

// Categorize classifies one zero-page address (§4.6).
func (z *C64ZeroPage) Categorize(addr int) ZeroPageCategory {
	if z.cfg.IsAddressSafe(addr) {
		return CategorySafe
	}

	switch {
	case addr >= c64CPUPortStart && addr <= c64CPUPortEnd:
		return CategoryReservedCPU
	case addr >= c64KernalZoneStart && addr <= c64KernalZoneEnd:
		return CategoryReservedKernal
	default:
		return CategoryUnknown
	}
}

// SuggestZeroPageAllocation returns the lowest safe address at which a
// `size`-byte allocation entirely fits (first-fit), or false if no such
// hole exists.
func (z *C64ZeroPage) SuggestZeroPageAllocation(size int) (int, bool) {
	safe := z.cfg.ZeroPage.Safe

	for start := safe.Start; start+size-1 <= safe.End; start++ {
		if z.cfg.DoesAllocationFit(start, size) {
			return start, true
		}
	}

	return 0, false
}

// suggestWorstFit returns the start of the largest contiguous safe hole
// that fits `size` bytes, used by tests to cross-check SuggestZeroPageAllocation's
// first-fit result against the actual free-space layout.
func (z *C64ZeroPage) suggestWorstFit(size int) (int, bool) {
	safe := z.cfg.ZeroPage.Safe
	bestStart, bestLen := 0, -1

	addr := safe.Start
	for addr <= safe.End {
		if !z.cfg.IsAddressSafe(addr) {
			addr++
			continue
		}

		runStart := addr
		for addr <= safe.End && z.cfg.IsAddressSafe(addr) {
			addr++
		}

		if runLen := addr - runStart; runLen >= size && runLen > bestLen {
			bestStart, bestLen = runStart, runLen
		}
	}

	if bestLen < 0 {
		return 0, false
	}

	return bestStart, true
}
