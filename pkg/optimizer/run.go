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
package optimizer

import (
	log "github.com/sirupsen/logrus"

	"github.com/blendsdk/blend65core/pkg/il"
	"github.com/blendsdk/blend65core/pkg/source"
)

// Run applies `level`'s pass list to every function in `mod` in place and
// returns it, alongside any diagnostics the passes themselves raised. O0 is
// pure identity: the module is validated and returned unchanged, never
// walked by a single pass (§4.7 "O0 performs no transformation").
//
// Every pass here only rewrites instruction operands, removes instructions
// with no observable effect, or removes/redirects whole blocks -- none of
// them can produce a block lacking a terminator or a dangling jump target,
// so mod.Validate() is expected to still succeed afterwards; a failure
// there is this package's own bug, reported as an internal-taxonomy
// diagnostic (§7) rather than panicking.
func Run(level Level, mod *il.Module) (*il.Module, []source.Diagnostic) {
	var diags []source.Diagnostic

	if err := mod.Validate(); err != nil {
		diags = append(diags, source.Errorf(source.CodeInternalError, source.Synthetic,
			"optimizer: module %q is invalid before optimization: %v", mod.Name, err))

		return mod, diags
	}

	cfg, ok := levelTable[level]
	if !ok {
		diags = append(diags, source.Errorf(source.CodeInternalError, source.Synthetic,
			"optimizer: unknown optimization level %q", level))

		return mod, diags
	}

	log.WithFields(log.Fields{"module": mod.Name, "level": level}).Debug("running optimizer")

	for _, f := range mod.Functions {
		runToFixpoint(f, cfg.passes)
	}

	if err := mod.Validate(); err != nil {
		diags = append(diags, source.Errorf(source.CodeInternalError, source.Synthetic,
			"optimizer: module %q is invalid after optimization: %v", mod.Name, err))
	}

	return mod, diags
}

// runToFixpoint re-runs the full pass list against one function until a
// full pass over the list makes no further change, since later passes
// (e.g. dead-instruction elimination) routinely expose new opportunities
// for earlier ones (e.g. unreachable-block elimination).
func runToFixpoint(f *il.Function, passes []pass) {
	for {
		changed := false

		for _, p := range passes {
			if p.run(f) {
				changed = true
			}
		}

		if !changed {
			return
		}
	}
}
