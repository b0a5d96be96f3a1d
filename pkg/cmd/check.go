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
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blendsdk/blend65core/pkg/analysis"
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/parsefront"
	"github.com/blendsdk/blend65core/pkg/report"
	"github.com/blendsdk/blend65core/pkg/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] source_file",
	Short: "Parse and analyze a source file without generating code.",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		program, parseDiags, ok := parseFile(args[0])

		printer := report.NewPrinter(os.Stdout)
		printer.Print(parseDiags)

		if !ok {
			printer.Summary(parseDiags)
			os.Exit(1)
		}

		result := analysis.Analyze(program, analysis.Options{
			RunAdvancedAnalysis: GetFlag(cmd, "advanced"),
			Strict:              GetFlag(cmd, "strict"),
		})

		printer.Print(result.Diagnostics)
		printer.Summary(result.Diagnostics)

		if !result.Success {
			os.Exit(1)
		}
	},
}

// parseFile reads and parses a single source file, reporting a syntax
// error (if any) as a one-element diagnostic slice rather than a Go error
// so it flows through the same report.Printer path as analyzer output.
func parseFile(path string) (*ast.Program, []source.Diagnostic, bool) {
	file, err := source.ReadFile(path)
	if err != nil {
		return nil, []source.Diagnostic{
			source.Errorf(source.CodeInternalError, source.Synthetic, "reading %q: %v", path, err),
		}, false
	}

	p, err := parsefront.NewParser(file)
	if err != nil {
		return nil, []source.Diagnostic{diagnosticOf(err)}, false
	}

	prog, err := p.ParseProgram()
	if err != nil {
		return nil, []source.Diagnostic{diagnosticOf(err)}, false
	}

	prog.Module.Name = moduleNameOf(path)

	return prog, nil, true
}

func diagnosticOf(err error) source.Diagnostic {
	if se, ok := err.(*parsefront.SyntaxError); ok {
		return se.Diagnostic()
	}

	return source.Errorf(source.CodeInternalError, source.Synthetic, "%v", err)
}

// moduleNameOf derives a module name from a source file's base name, e.g.
// "game.b65" becomes "game".
func moduleNameOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
