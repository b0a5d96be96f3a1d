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

// c64Config is the primary, fully implemented target (§3.9): zero page
// safe range $02..$8F (142 bytes), with $00-$01 reserved for the 6510 CPU
// I/O port and $90-$FF reserved for KERNAL workspace.
var c64Config = Config{
	Architecture:  C64,
	CPU:           "6510",
	ClockSpeedMHz: 1.0227,
	TotalMemory:   65536,
	ZeroPage: ZeroPageConfig{
		Safe: SafeRange{Start: 0x02, End: 0x8F},
		Reserved: []ReservedRange{
			{Start: 0x00, End: 0x01, Reason: "6510 CPU I/O port (bank switching)"},
			{Start: 0x90, End: 0xFF, Reason: "KERNAL/BASIC workspace"},
		},
	},
	GraphicsChip: "VIC-II",
	SoundChip:    "SID",
	Implemented:  true,
}
