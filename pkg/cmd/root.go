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

// Package cmd implements the blend65c command-line interface: a "check"
// subcommand that runs the analyzer alone, and a "build" subcommand that
// drives the pipeline from source to optimized IL. Grounded on
// `pkg/cmd/root.go`'s cobra rootCmd/Execute/init-time-flags shape and
// `pkg/cmd/check.go`'s per-subcommand flag population.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled in when building with a release script; left empty for
// a plain "go build"/"go run".
var Version string

var rootCmd = &cobra.Command{
	Use:   "blend65c",
	Short: "A compiler for the Blend65 language.",
	Long:  "A compiler and static analyzer for the Blend65 language, targeting 8-bit home computers.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("blend65c ")

			if Version != "" {
				fmt.Print(Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Print(info.Main.Version)
			} else {
				fmt.Print("(unknown version)")
			}

			fmt.Println()
		} else {
			_ = cmd.Help()
		}
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "report the version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("target", "c64", "target architecture (c64, vic20, atari8bit, nes)")
	rootCmd.PersistentFlags().Bool("allow-unimplemented-target", false, "allow a recognized-but-unimplemented target")
	rootCmd.PersistentFlags().StringP("opt", "O", "O1", "optimization level (O0, O1, O2, O3, Os, Oz)")
	rootCmd.PersistentFlags().Bool("advanced", false, "run the advanced dataflow analysis passes")
	rootCmd.PersistentFlags().Bool("strict", false, "strict mode; passed to the analyzer, no pass reads it, severities are unchanged")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
}

func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}
