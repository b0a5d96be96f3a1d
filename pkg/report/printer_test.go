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
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/blendsdk/blend65core/pkg/source"
)

func TestNewPrinterFallsBackForNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf)
	if p.color {
		t.Fatal("expected color disabled for a non-terminal writer")
	}

	if p.width != defaultWidth {
		t.Fatalf("expected default width %d, got %d", defaultWidth, p.width)
	}
}

func TestPrintRendersLocationSeverityAndCode(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf)
	p.Print([]source.Diagnostic{
		source.Errorf(source.CodeUndefinedSymbol, source.Synthetic, "undefined symbol %q", "foo"),
	})

	out := buf.String()
	if !strings.Contains(out, "error") {
		t.Fatalf("expected severity in output, got %q", out)
	}

	if !strings.Contains(out, "UNDEFINED_SYMBOL") {
		t.Fatalf("expected stable code name in output, got %q", out)
	}

	if !strings.Contains(out, `undefined symbol "foo"`) {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestSummaryCountsBySeverity(t *testing.T) {
	var buf bytes.Buffer

	p := NewPrinter(&buf)
	p.Summary([]source.Diagnostic{
		source.Errorf(source.CodeTypeMismatch, source.Synthetic, "x"),
		source.Errorf(source.CodeTypeMismatch, source.Synthetic, "y"),
		source.Warnf(source.CodeUnusedVariable, source.Synthetic, "z"),
	})

	if got := buf.String(); got != "2 error(s), 1 warning(s)\n" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestWrapSplitsOnWordBoundaries(t *testing.T) {
	lines := wrap("the quick brown fox jumps over the lazy dog", 20)

	for _, l := range lines {
		if len(l) > 20 {
			t.Fatalf("line %q exceeds width 20", l)
		}
	}

	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Fatalf("wrap lost content: %v", lines)
	}
}

func TestWrapEmptyString(t *testing.T) {
	if lines := wrap("", 80); len(lines) != 1 || lines[0] != "" {
		t.Fatalf("expected one empty line, got %v", lines)
	}
}
