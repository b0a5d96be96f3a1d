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

// Package analysis implements the semantic analyzer pass orchestrator
// (§4.3): a fixed sequence of passes over one parsed module, each reading
// prior pass output and never mutating it, producing an annotated AST, a
// symbol table, a call graph, per-function CFGs and a diagnostic stream.
package analysis

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/callgraph"
	"github.com/blendsdk/blend65core/pkg/cfg"
	"github.com/blendsdk/blend65core/pkg/source"
	"github.com/blendsdk/blend65core/pkg/symbols"
	"github.com/blendsdk/blend65core/pkg/types"
)

// Options configures optional analyzer behavior (§6 "Build/compile
// options", §4.3.b/.e gating flags).
type Options struct {
	// RunAdvancedAnalysis gates pass 7's dataflow family (§4.3 pass 7).
	RunAdvancedAnalysis bool
	// Strict treats additional warnings as errors; currently unused by any
	// single pass but threaded through for future passes, matching the
	// build-options record's `strict` field (§6).
	Strict bool
	// IgnoreLoopCounters suppresses unused/write-only warnings on declared
	// loop counters (§4.3.b).
	IgnoreLoopCounters bool
	// StrictGlobalReads treats reads of globals as impure (§4.3.e).
	StrictGlobalReads bool
	// LivenessIterationCap bounds the liveness fixed-point loop (§4.3.c);
	// zero means the default of 1000.
	LivenessIterationCap int
}

func (o Options) livenessCap() int {
	if o.LivenessIterationCap > 0 {
		return o.LivenessIterationCap
	}

	return 1000
}

// PassResults records which passes ran and headline per-pass findings (§6
// "passResults").
type PassResults struct {
	SymbolTableBuild bool
	TypeResolution   bool
	TypeCheck        bool
	RecursionErrors  []string
	AdvancedAnalysis *AdvancedAnalysisResult
}

// Stats summarizes one analysis run (§6 "stats").
type Stats struct {
	ErrorCount        int
	WarningCount      int
	FunctionsAnalyzed int
	TotalDeclarations int
	ExpressionsChecked int
	AnalysisTimeMs    int64
}

// AnalysisResult is the analyzer's complete output contract (§4.3, §6).
type AnalysisResult struct {
	Success     bool
	ModuleName  string
	Diagnostics []source.Diagnostic
	SymbolTable *symbols.Arena
	TypeCache   *types.Cache
	CallGraph   *callgraph.Graph
	CFGs        map[string]*cfg.Graph
	PassResults PassResults
	Stats       Stats
}

// analyzer carries the mutable state threaded through one module's passes.
type analyzer struct {
	opts     Options
	bag      source.Bag
	arena    *symbols.Arena
	types    *types.Cache
	calls    *callgraph.Graph
	cfgs     map[string]*cfg.Graph
	funcSyms  map[string]symbols.SymbolID // function name -> declared symbol
	funcDecl  map[string]*ast.FuncDecl
	funcSig   map[string]types.Info // function name -> Callback signature
	mapFields map[string]map[string]fieldInfo
	stats     Stats
}

// Analyze runs passes 1-7 over a single module (§4.3 `analyze`).
func Analyze(program *ast.Program, opts Options) *AnalysisResult {
	start := time.Now()

	a := &analyzer{
		opts:     opts,
		arena:    symbols.NewArena(),
		types:    types.NewCache(),
		calls:    callgraph.NewGraph(),
		cfgs:     make(map[string]*cfg.Graph),
		funcSyms: make(map[string]symbols.SymbolID),
		funcDecl: make(map[string]*ast.FuncDecl),
	}

	log.WithField("module", program.Module.Name).Debug("pass 1: building symbol table")
	a.pass1SymbolTable(&program.Module)

	log.WithField("module", program.Module.Name).Debug("pass 2: resolving declared types")
	a.pass2TypeResolution(&program.Module)

	log.WithField("module", program.Module.Name).Debug("pass 3: type checking")
	a.pass3TypeCheck(&program.Module)

	log.WithField("module", program.Module.Name).Debug("pass 4: building control-flow graphs")
	a.pass4ControlFlow(&program.Module)

	log.WithField("module", program.Module.Name).Debug("pass 5: building call graph")
	a.pass5CallGraph(&program.Module)

	log.WithField("module", program.Module.Name).Debug("pass 6: checking for recursion")
	recursionErrs := a.pass6RecursionCheck()

	if len(recursionErrs) > 0 {
		log.WithFields(log.Fields{"module": program.Module.Name, "functions": recursionErrs}).
			Warn("recursion prohibited")
	}

	var advanced *AdvancedAnalysisResult
	if opts.RunAdvancedAnalysis {
		log.WithField("module", program.Module.Name).Debug("pass 7: advanced dataflow analysis")
		advanced = a.pass7Advanced(&program.Module)
	}

	diags := a.bag.Diagnostics()

	for _, d := range diags {
		if d.Severity == source.Error {
			a.stats.ErrorCount++
		} else if d.Severity == source.Warning {
			a.stats.WarningCount++
		}
	}

	a.stats.AnalysisTimeMs = time.Since(start).Milliseconds()

	return &AnalysisResult{
		Success:     !a.bag.HasErrors(),
		ModuleName:  program.Module.Name,
		Diagnostics: diags,
		SymbolTable: a.arena,
		TypeCache:   a.types,
		CallGraph:   a.calls,
		CFGs:        a.cfgs,
		PassResults: PassResults{
			SymbolTableBuild: true,
			TypeResolution:   true,
			TypeCheck:        true,
			RecursionErrors:  recursionErrs,
			AdvancedAnalysis: advanced,
		},
		Stats: a.stats,
	}
}

// AnalyzeMultiple runs Analyze over each program and assembles a
// GlobalSymbolTable from the per-module arenas after passes 1-6 (§4.3
// `analyzeMultiple`).
func AnalyzeMultiple(programs []*ast.Program, opts Options) ([]*AnalysisResult, *symbols.GlobalSymbolTable) {
	results := make([]*AnalysisResult, len(programs))
	global := symbols.NewGlobalSymbolTable()

	for i, p := range programs {
		r := Analyze(p, opts)
		results[i] = r
		global.AddModule(r.ModuleName, r.SymbolTable)
	}

	return results, global
}
