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

import (
	"fmt"
	"strings"
)

// UnknownTargetError is returned when a requested architecture name is not
// recognized at all.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target: %q", e.Name)
}

// TargetNotImplementedError is returned when a recognized architecture has
// no validated backend support yet, and the caller did not opt in via
// `allowUnimplemented`.
type TargetNotImplementedError struct {
	Name Architecture
}

func (e *TargetNotImplementedError) Error() string {
	return fmt.Sprintf("target %s is recognized but not implemented", e.Name)
}

// Registry is the static, read-only set of known targets (§4.5), validated
// once at construction.
type Registry struct {
	configs map[Architecture]Config
}

// NewRegistry constructs and validates the registry. A validation failure
// here indicates a bug in this package's static data (an Internal-taxonomy
// error, §7), so it panics rather than returning an error: there is no
// recovery path a caller could take.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[Architecture]Config)}

	for _, c := range []Config{c64Config, vic20Config, atari8bitConfig, nesConfig} {
		cp := c
		if err := cp.validate(); err != nil {
			panic(fmt.Sprintf("target registry: invalid static config: %v", err))
		}

		r.configs[cp.Architecture] = cp
	}

	return r
}

// Get resolves an architecture by its lowercase string name (§4.5). If
// `allowUnimplemented` is false, a recognized-but-unimplemented target
// yields a *TargetNotImplementedError rather than its config.
func (r *Registry) Get(name string, allowUnimplemented bool) (*Config, error) {
	arch := Architecture(strings.ToLower(name))

	cfg, ok := r.configs[arch]
	if !ok {
		return nil, &UnknownTargetError{name}
	}

	if !cfg.Implemented && !allowUnimplemented {
		return nil, &TargetNotImplementedError{arch}
	}

	return &cfg, nil
}

// Architectures returns every known architecture name, in the fixed
// declaration order above (deterministic, §5).
func (r *Registry) Architectures() []Architecture {
	return []Architecture{C64, VIC20, Atari8bit, NES}
}
