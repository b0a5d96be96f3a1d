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
package config

import "testing"

func TestValidateRejectsMissingTarget(t *testing.T) {
	c := CompilationConfig{Optimization: "O1"}

	if err := c.Validate(); err == nil {
		t.Fatal("expected a missing target to fail validation")
	}
}

func TestValidateRejectsUnknownOptimizationLevel(t *testing.T) {
	c := CompilationConfig{Target: "c64", Optimization: "O9"}

	if err := c.Validate(); err == nil {
		t.Fatal("expected an unknown optimization level to fail validation")
	}
}

func TestValidateDefaultsDebugAndOutputFormat(t *testing.T) {
	c := CompilationConfig{Target: "c64", Optimization: "O0"}

	if err := c.Validate(); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if c.Debug != DebugNone {
		t.Fatalf("expected debug to default to none, got %q", c.Debug)
	}

	if c.OutputFormat != OutputASM {
		t.Fatalf("expected output format to default to asm, got %q", c.OutputFormat)
	}
}

func TestValidateRejectsLoadAddressOutOfRange(t *testing.T) {
	c := CompilationConfig{Target: "c64", Optimization: "O1", LoadAddress: 70000}

	if err := c.Validate(); err == nil {
		t.Fatal("expected an out-of-range load address to fail validation")
	}
}

func TestValidateAcceptsFullyPopulatedConfig(t *testing.T) {
	c := CompilationConfig{
		Target:              "c64",
		Optimization:        "O2",
		Debug:               DebugVice,
		OutputFormat:        OutputBoth,
		RunAdvancedAnalysis: true,
		Strict:              true,
		LoadAddress:         0x0801,
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}
