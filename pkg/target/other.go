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
package target

// vic20Config is recognized but not yet implemented: its zero-page map is
// close enough to the C64's (same 6502 derivative, same KERNAL) to record
// now, but no backend analysis has been validated against real hardware
// yet, so Implemented stays false.
var vic20Config = Config{
	Architecture:  VIC20,
	CPU:           "6502",
	ClockSpeedMHz: 1.1,
	TotalMemory:   3583 + 1024*5, // unexpanded + common expansions, approximate
	ZeroPage: ZeroPageConfig{
		Safe: SafeRange{Start: 0x02, End: 0x8F},
		Reserved: []ReservedRange{
			{Start: 0x00, End: 0x01, Reason: "6502 port emulation latch (via PIA)"},
			{Start: 0x90, End: 0xFF, Reason: "KERNAL/BASIC workspace"},
		},
	},
	Implemented: false,
}

// atari8bitConfig and nesConfig are placeholders recorded for completeness
// of the Architecture enum; neither has a validated zero-page map yet.
var atari8bitConfig = Config{
	Architecture: Atari8bit,
	CPU:          "6502",
	TotalMemory:  65536,
	ZeroPage: ZeroPageConfig{
		Safe: SafeRange{Start: 0x80, End: 0xCF},
	},
	Implemented: false,
}

var nesConfig = Config{
	Architecture: NES,
	CPU:          "2A03",
	TotalMemory:  2048,
	ZeroPage: ZeroPageConfig{
		Safe: SafeRange{Start: 0x00, End: 0xFF},
	},
	Implemented: false,
}
