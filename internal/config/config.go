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

// Package config encapsulates the build/compile options named in §6
// ("Inputs consumed"): a plain struct populated from CLI flags and
// validated once before the pipeline runs, grounded on
// `pkg/corset/compiler.go`'s CompilationConfig and the flag population in
// `pkg/cmd/compile.go` / `pkg/cmd/check.go`.
package config

import "fmt"

// OutputFormat enumerates the artifact(s) the surrounding CLI writes.
type OutputFormat string

// The output formats named in §6.
const (
	OutputASM  OutputFormat = "asm"
	OutputPRG  OutputFormat = "prg"
	OutputBoth OutputFormat = "both"
	OutputCRT  OutputFormat = "crt"
)

// DebugMode enumerates how much debugging support the CLI emits alongside
// the assembly output.
type DebugMode string

// The debug modes named in §6.
const (
	DebugNone   DebugMode = "none"
	DebugInline DebugMode = "inline"
	DebugVice   DebugMode = "vice"
	DebugBoth   DebugMode = "both"
)

// CompilationConfig is the build/compile options record named in §6: every
// field's valid set is enumerated there; unknown values are
// config-validation errors rather than silently ignored.
type CompilationConfig struct {
	// Target is the architecture name passed to target.Registry.Get, e.g.
	// "c64".
	Target string
	// Optimization is the optimizer.Level name, one of "O0".."O3", "Os", "Oz".
	Optimization string
	// Debug selects how much debug support the output carries.
	Debug DebugMode
	// OutputFormat selects which artifact(s) the CLI writes.
	OutputFormat OutputFormat
	// RunAdvancedAnalysis enables the dataflow passes (liveness, definite
	// assignment, purity, complexity, coercion) in addition to the
	// mandatory passes 1-6.
	RunAdvancedAnalysis bool
	// Strict is passed through to analysis.Options.Strict; no analysis pass
	// reads it, so it does not change any diagnostic's severity.
	Strict bool
	// LoadAddress is the PRG load address, 0..65535.
	LoadAddress int
	// AllowUnimplementedTarget opts into a recognized-but-unimplemented
	// target.Config rather than failing target resolution.
	AllowUnimplementedTarget bool
}

var validOutputFormats = map[OutputFormat]bool{
	OutputASM: true, OutputPRG: true, OutputBoth: true, OutputCRT: true,
}

var validDebugModes = map[DebugMode]bool{
	DebugNone: true, DebugInline: true, DebugVice: true, DebugBoth: true,
}

var validOptimizationLevels = map[string]bool{
	"O0": true, "O1": true, "O2": true, "O3": true, "Os": true, "Oz": true,
}

// Validate checks every field's valid set named in §6, returning the first
// violation found. A config is never partially valid: callers should treat
// any error as "do not start the pipeline".
func (c *CompilationConfig) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("config: target is required")
	}

	if !validOptimizationLevels[c.Optimization] {
		return fmt.Errorf("config: invalid optimization level %q", c.Optimization)
	}

	if c.Debug == "" {
		c.Debug = DebugNone
	} else if !validDebugModes[c.Debug] {
		return fmt.Errorf("config: invalid debug mode %q", c.Debug)
	}

	if c.OutputFormat == "" {
		c.OutputFormat = OutputASM
	} else if !validOutputFormats[c.OutputFormat] {
		return fmt.Errorf("config: invalid output format %q", c.OutputFormat)
	}

	if c.LoadAddress < 0 || c.LoadAddress > 0xFFFF {
		return fmt.Errorf("config: load address %d out of range 0..65535", c.LoadAddress)
	}

	return nil
}
