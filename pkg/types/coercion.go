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
package types

// CoercionKind classifies an implicit conversion performed at an assignment,
// call-argument or return site (§4.2).
type CoercionKind uint8

const (
	// NoCoercion means the types were already Identical.
	NoCoercion CoercionKind = iota
	// ZeroExtend widens a Byte to a Word.
	ZeroExtend
	// Truncate narrows a Word to a Byte (RequiresConversion, not implicit).
	Truncate
	// BoolToByte reinterprets a Boolean as a Byte.
	BoolToByte
	// ByteToBool reinterprets a Byte as a Boolean.
	ByteToBool
	// BoolToWord widens a Boolean to a Word.
	BoolToWord
	// WordToBool narrows a Word to a Boolean.
	WordToBool
)

// cycleCost gives the estimated 6502 cycle cost of each coercion kind, per
// §4.2. These are hints for later register-allocation decisions, not
// prescriptive timing guarantees.
var cycleCost = map[CoercionKind]int{
	NoCoercion: 0,
	ZeroExtend: 4,
	Truncate:   2,
	BoolToByte: 0,
	ByteToBool: 4,
	BoolToWord: 4,
	WordToBool: 6,
}

// CycleCost returns the estimated 6502 cycle cost of a coercion kind.
func CycleCost(k CoercionKind) int {
	return cycleCost[k]
}

// Classify determines which CoercionKind (if any) connects `from` to `to`,
// given that `CheckCompatibility` has already reported `Compatible` (an
// implicit conversion exists). Returns (kind, true) if a coercion is needed
// to make `from` assignable into `to`'s position, or (NoCoercion, true) if
// `from` and `to` are Identical.
func Classify(from, to Info) (CoercionKind, bool) {
	if from.Name() == to.Name() && from.kind == to.kind {
		return NoCoercion, true
	}

	switch {
	case from.kind == KindByte && to.kind == KindWord:
		return ZeroExtend, true
	case from.kind == KindWord && to.kind == KindByte:
		return Truncate, true
	case from.kind == KindBoolean && to.kind == KindByte:
		return BoolToByte, true
	case from.kind == KindByte && to.kind == KindBoolean:
		return ByteToBool, true
	case from.kind == KindBoolean && to.kind == KindWord:
		return BoolToWord, true
	case from.kind == KindWord && to.kind == KindBoolean:
		return WordToBool, true
	default:
		return NoCoercion, false
	}
}
