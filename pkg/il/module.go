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

// Global is one module-level variable (§3.7 "module metadata ... global
// variables").
type Global struct {
	Name     string
	Type     Type
	Exported bool
	// InitialValue is nil for a zero-initialized global.
	InitialValue any
}

// Module owns an ordered list of Functions plus module metadata: name,
// entry-point name, global variables (§3.7).
type Module struct {
	Name       string
	EntryPoint string
	Globals    []Global
	Functions  []*Function
}

// NewModule constructs an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddFunction appends a function in declaration order.
func (m *Module) AddFunction(f *Function) {
	m.Functions = append(m.Functions, f)
}

// AddGlobal appends a global variable in declaration order.
func (m *Module) AddGlobal(g Global) {
	m.Globals = append(m.Globals, g)
}

// Function looks up a function by name, or returns (nil, false).
func (m *Module) Function(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}

	return nil, false
}

// Validate runs Function.Validate over every function in the module.
func (m *Module) Validate() error {
	for _, f := range m.Functions {
		if err := f.Validate(); err != nil {
			return err
		}
	}

	return nil
}
