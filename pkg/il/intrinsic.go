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
package il

import "sync"

// IntrinsicCategory classifies an intrinsic's purpose (§3.8).
type IntrinsicCategory uint8

const (
	Memory IntrinsicCategory = iota
	CPU
	Stack
	Optimization
	Utility
	CompileTime
)

// IntrinsicDefinition is one registry entry (§3.8). A nil Opcode marks a
// compile-time intrinsic (`sizeof`, `length`) that folds to a constant
// during lowering and emits no instruction.
type IntrinsicDefinition struct {
	Name           string
	Category       IntrinsicCategory
	ParameterTypes []Type
	ReturnType     Type
	Opcode         *Opcode
	IsCompileTime  bool
	HasSideEffects bool
	IsVolatile     bool
	IsBarrier      bool
	// CycleCount is the estimated 6502 cycle cost; zero when not
	// applicable (compile-time intrinsics have no runtime cost).
	CycleCount int
}

func op(o Opcode) *Opcode { return &o }

var (
	registryOnce sync.Once
	registry     map[string]IntrinsicDefinition
)

func buildRegistry() map[string]IntrinsicDefinition {
	defs := []IntrinsicDefinition{
		{
			Name: "peek", Category: Memory,
			ParameterTypes: []Type{WordType}, ReturnType: ByteType,
			Opcode: op(INTRINSIC_PEEK), HasSideEffects: false, CycleCount: 4,
		},
		{
			Name: "poke", Category: Memory,
			ParameterTypes: []Type{WordType, ByteType}, ReturnType: VoidType,
			Opcode: op(INTRINSIC_POKE), HasSideEffects: true, CycleCount: 4,
		},
		{
			Name: "peekw", Category: Memory,
			ParameterTypes: []Type{WordType}, ReturnType: WordType,
			Opcode: op(INTRINSIC_PEEKW), HasSideEffects: false, CycleCount: 8,
		},
		{
			Name: "pokew", Category: Memory,
			ParameterTypes: []Type{WordType, WordType}, ReturnType: VoidType,
			Opcode: op(INTRINSIC_POKEW), HasSideEffects: true, CycleCount: 8,
		},
		{
			Name: "lo", Category: Utility,
			ParameterTypes: []Type{WordType}, ReturnType: ByteType,
			Opcode: op(INTRINSIC_LO), HasSideEffects: false, CycleCount: 2,
		},
		{
			Name: "hi", Category: Utility,
			ParameterTypes: []Type{WordType}, ReturnType: ByteType,
			Opcode: op(INTRINSIC_HI), HasSideEffects: false, CycleCount: 2,
		},
		{
			Name: "sizeof", Category: CompileTime,
			ReturnType: WordType, IsCompileTime: true,
		},
		{
			Name: "length", Category: CompileTime,
			ReturnType: WordType, IsCompileTime: true,
		},
		{
			Name: "sei", Category: CPU,
			ReturnType: VoidType, Opcode: op(CPU_SEI), HasSideEffects: true, CycleCount: 2,
		},
		{
			Name: "cli", Category: CPU,
			ReturnType: VoidType, Opcode: op(CPU_CLI), HasSideEffects: true, CycleCount: 2,
		},
		{
			Name: "nop", Category: CPU,
			ReturnType: VoidType, Opcode: op(CPU_NOP), HasSideEffects: false, CycleCount: 2,
		},
		{
			Name: "brk", Category: CPU,
			ReturnType: VoidType, Opcode: op(CPU_BRK), HasSideEffects: true, CycleCount: 7,
		},
		{
			Name: "pha", Category: Stack,
			ParameterTypes: []Type{ByteType}, ReturnType: VoidType,
			Opcode: op(CPU_PHA), HasSideEffects: true, CycleCount: 3,
		},
		{
			Name: "pla", Category: Stack,
			ReturnType: ByteType, Opcode: op(CPU_PLA), HasSideEffects: true, CycleCount: 4,
		},
		{
			Name: "php", Category: Stack,
			ReturnType: VoidType, Opcode: op(CPU_PHP), HasSideEffects: true, CycleCount: 3,
		},
		{
			Name: "plp", Category: Stack,
			ReturnType: VoidType, Opcode: op(CPU_PLP), HasSideEffects: true, CycleCount: 4,
		},
		{
			Name: "barrier", Category: Optimization,
			ReturnType: VoidType, Opcode: op(OPT_BARRIER), IsBarrier: true,
		},
		{
			Name: "volatile_read", Category: Optimization,
			ParameterTypes: []Type{WordType}, ReturnType: ByteType,
			Opcode: op(VOLATILE_READ), IsVolatile: true, IsBarrier: true, HasSideEffects: true,
		},
		{
			Name: "volatile_write", Category: Optimization,
			ParameterTypes: []Type{WordType, ByteType}, ReturnType: VoidType,
			Opcode: op(VOLATILE_WRITE), IsVolatile: true, IsBarrier: true, HasSideEffects: true,
		},
	}

	m := make(map[string]IntrinsicDefinition, len(defs))
	for _, d := range defs {
		m[d.Name] = d
	}

	return m
}

// LookupIntrinsic queries the process-wide registry by name, building it on
// first use (§3.8 "built once per process and queried by name").
func LookupIntrinsic(name string) (IntrinsicDefinition, bool) {
	registryOnce.Do(func() {
		registry = buildRegistry()
	})

	d, ok := registry[name]
	return d, ok
}

// PureIntrinsicNames are the intrinsics §4.3.e exempts from contaminating
// purity when called: `hi`, `lo`, and the length/size compile-time forms.
func PureIntrinsicNames() []string {
	return []string{"hi", "lo", "sizeof", "length"}
}
