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

// Package optimizer implements the level-parameterised IL to IL pass
// manager (§4.7): each Level names a fixed, precanned set of passes, and
// Run applies a function's set to a fixpoint before moving to the next
// function. Grounded directly on `pkg/ir/mir/optimiser.go`'s
// OptimisationConfig/OPTIMISATION_LEVELS/DEFAULT_OPTIMISATION_INDEX idiom:
// an indexed table of precanned configurations rather than one knob per
// optimization, generalised here from MIR's numeric knobs to Blend65's six
// named levels.
package optimizer

import "github.com/blendsdk/blend65core/pkg/il"

// Level names one of the six optimization levels (§4.7).
type Level string

// The optimization levels this package understands.
const (
	O0 Level = "O0"
	O1 Level = "O1"
	O2 Level = "O2"
	O3 Level = "O3"
	Os Level = "Os"
	Oz Level = "Oz"
)

// pass is one named IL to IL transformation applied to a single function.
// It reports whether it changed anything, so Run can iterate passes to a
// fixpoint.
type pass struct {
	name string
	run  func(f *il.Function) bool
}

// levelConfig is the precanned pass list for one Level.
type levelConfig struct {
	passes []pass
}

var (
	passesO1 = []pass{
		{"eliminate-unreachable-blocks", eliminateUnreachableBlocks},
		{"propagate-constants", propagateConstants},
	}
	passesO2 = append(append([]pass{}, passesO1...),
		pass{"eliminate-dead-instructions", eliminateDeadInstructions})
	passesO3 = append(append([]pass{}, passesO2...),
		pass{"thread-trivial-jumps", threadTrivialJumps})
)

// levelTable maps each Level to its precanned pass list. O0 is the empty
// set (identity). Os favors a moderate, size-conscious pass list (O2's);
// Oz runs every pass this package has (O3's), since every pass here
// strictly cannot grow code size.
var levelTable = map[Level]levelConfig{
	O0: {},
	O1: {passesO1},
	O2: {passesO2},
	O3: {passesO3},
	Os: {passesO2},
	Oz: {passesO3},
}
