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

// Package report renders diagnostics to a terminal (ambient, §7
// "user-visible behavior"). Grounded on
// `pkg/util/termio/terminal.go`'s use of `golang.org/x/term` for terminal
// detection and width/size discovery; unlike that file, a diagnostic
// report never enters raw mode or reads keys, so only `term.IsTerminal`
// and `term.GetSize` are used here.
package report

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/blendsdk/blend65core/pkg/source"
)

// defaultWidth is used whenever the output isn't a real terminal (piped to
// a file, captured by a test) and no width can be queried.
const defaultWidth = 80

// Printer renders diagnostics to a writer, word-wrapping messages to the
// detected terminal width when the writer is one.
type Printer struct {
	w     io.Writer
	width int
	color bool
}

// NewPrinter constructs a Printer for `w`. When `w` is a `*os.File`
// pointing at an interactive terminal, its width is queried via
// `term.GetSize` and ANSI color is enabled; otherwise output falls back to
// a fixed-width, uncolored rendering (§7: plain output must remain
// readable when piped or redirected).
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w, width: defaultWidth}

	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			p.color = true

			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				p.width = width
			}
		}
	}

	return p
}

// severityColor maps a severity to its ANSI color code, matching the
// taxonomy order (§6) Error > Warning > Info > Hint.
var severityColor = map[source.Severity]string{
	source.Error:   "\x1b[31m",
	source.Warning: "\x1b[33m",
	source.Info:    "\x1b[36m",
	source.Hint:    "\x1b[90m",
}

const colorReset = "\x1b[0m"

// Print renders every diagnostic, one per line plus wrapped continuation
// lines, in the order given (callers are expected to have already applied
// `source.Bag.Diagnostics`'s stable ordering).
func (p *Printer) Print(diags []source.Diagnostic) {
	for _, d := range diags {
		p.printOne(d)
	}
}

func (p *Printer) printOne(d source.Diagnostic) {
	header := fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Code)

	if p.color {
		fmt.Fprintf(p.w, "%s%s%s\n", severityColor[d.Severity], header, colorReset)
	} else {
		fmt.Fprintln(p.w, header)
	}

	for _, line := range wrap(d.Message, p.width-2) {
		fmt.Fprintf(p.w, "  %s\n", line)
	}
}

// Summary renders the closing error/warning count line (§7: "a build's
// outcome is its error count; zero errors is success regardless of
// warning count").
func (p *Printer) Summary(diags []source.Diagnostic) {
	var errs, warns int

	for _, d := range diags {
		switch d.Severity {
		case source.Error:
			errs++
		case source.Warning:
			warns++
		}
	}

	fmt.Fprintf(p.w, "%d error(s), %d warning(s)\n", errs, warns)
}

// wrap breaks `s` into lines no wider than `width` (at least 20, so a
// narrow/undetected terminal never produces a degenerate zero-width
// split), breaking only on spaces.
func wrap(s string, width int) []string {
	if width < 20 {
		width = 20
	}

	words := splitWords(s)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   string
	)

	for _, word := range words {
		if cur == "" {
			cur = word
			continue
		}

		if len(cur)+1+len(word) > width {
			lines = append(lines, cur)
			cur = word

			continue
		}

		cur += " " + word
	}

	if cur != "" {
		lines = append(lines, cur)
	}

	return lines
}

func splitWords(s string) []string {
	var (
		words []string
		cur   []rune
	)

	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if len(cur) > 0 {
				words = append(words, string(cur))
				cur = nil
			}

			continue
		}

		cur = append(cur, r)
	}

	if len(cur) > 0 {
		words = append(words, string(cur))
	}

	return words
}
