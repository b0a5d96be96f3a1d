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

import "github.com/blendsdk/blend65core/pkg/source"

// Instruction is one three-address-form IL operation (§3.7):
// `{opcode, operands, result?, type?, location, metadata}`.
type Instruction struct {
	Opcode   Opcode
	Operands []Operand
	Result   *RegisterID
	Type     Type
	Loc      source.Location
	Metadata map[string]any
}

// HasResult reports whether this instruction produces a value (every
// non-void, non-control opcode does).
func (i Instruction) HasResult() bool {
	return i.Result != nil
}

// SetMetadata records a finding under `key`, creating the map on first use
// — mirrors pkg/ast's Annotated.Set so optimizer/backend passes can attach
// hints to an instruction without a second side-table.
func (i *Instruction) SetMetadata(key string, value any) {
	if i.Metadata == nil {
		i.Metadata = make(map[string]any)
	}

	i.Metadata[key] = value
}

// GetMetadata retrieves a finding previously recorded under `key`.
func (i Instruction) GetMetadata(key string) (any, bool) {
	v, ok := i.Metadata[key]
	return v, ok
}
