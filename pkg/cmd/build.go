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

	"github.com/spf13/cobra"

	"github.com/blendsdk/blend65core/internal/config"
	"github.com/blendsdk/blend65core/pkg/analysis"
	"github.com/blendsdk/blend65core/pkg/hw6502"
	"github.com/blendsdk/blend65core/pkg/il"
	"github.com/blendsdk/blend65core/pkg/ilgen"
	"github.com/blendsdk/blend65core/pkg/optimizer"
	"github.com/blendsdk/blend65core/pkg/report"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/target"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] source_file",
	Short: "Compile a Blend65 source file down to optimized IL for a target machine.",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		cfg := config.CompilationConfig{
			Target:                   GetString(cmd, "target"),
			Optimization:             GetString(cmd, "opt"),
			RunAdvancedAnalysis:      GetFlag(cmd, "advanced"),
			Strict:                   GetFlag(cmd, "strict"),
			AllowUnimplementedTarget: GetFlag(cmd, "allow-unimplemented-target"),
		}

		if err := cfg.Validate(); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		printer := report.NewPrinter(os.Stdout)

		program, parseDiags, ok := parseFile(args[0])
		if !ok {
			printer.Print(parseDiags)
			printer.Summary(parseDiags)
			os.Exit(1)
		}

		result := analysis.Analyze(program, analysis.Options{
			RunAdvancedAnalysis: cfg.RunAdvancedAnalysis,
			Strict:              cfg.Strict,
		})

		diags := result.Diagnostics

		if !result.Success {
			printer.Print(diags)
			printer.Summary(diags)
			os.Exit(1)
		}

		mod, ilDiags := ilgen.Generate(program, result, ilgen.Options{})
		diags = append(diags, ilDiags...)

		if hasErrors(ilDiags) {
			printer.Print(diags)
			printer.Summary(diags)
			os.Exit(1)
		}

		optimized, optDiags := optimizer.Run(optimizer.Level(cfg.Optimization), mod)
		diags = append(diags, optDiags...)

		targetCfg, err := target.NewRegistry().Get(cfg.Target, cfg.AllowUnimplementedTarget)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		diags = append(diags, checkStackUsage(targetCfg, result, optimized.Functions)...)

		printer.Print(diags)
		printer.Summary(diags)

		if hasErrors(diags) {
			os.Exit(1)
		}

		fmt.Printf("compiled %d function(s) for %s at optimization level %s\n",
			len(optimized.Functions), targetCfg.Architecture, cfg.Optimization)
	},
}

func hasErrors(diags []source.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == source.Error {
			return true
		}
	}

	return false
}

// checkStackUsage runs the Common6502Analyzer's stack-depth estimation over
// every function in the module and flags any whose deepest call chain
// risks overflowing the 6502's 256-byte hardware stack.
func checkStackUsage(targetCfg *target.Config, result *analysis.AnalysisResult, funcs []*il.Function) []source.Diagnostic {
	analyzer := hw6502.NewCommon6502Analyzer(targetCfg)

	own := make(map[string]int, len(funcs))

	for _, f := range funcs {
		own[f.Name] = analyzer.EstimatedDepth(len(f.Params), result.CFGs[f.Name])
	}

	return hw6502.CheckStackOverflowRisk(result.CallGraph, own)
}

func init() {
	buildCmd.Flags().String("load-address", "", "PRG load address, e.g. 0x0801; accepted but not read by the build")
}
