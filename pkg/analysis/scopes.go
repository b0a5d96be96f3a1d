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
package analysis

import (
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/symbols"
)

// scopeOf retrieves the ScopeID pass 1 recorded on a node that opens a
// scope (FuncDecl, If-branch Block, WhileStmt, ForStmt), falling back to
// the module root if the node never opened one.
func (a *analyzer) scopeOf(node interface {
	Get(ast.MetadataKey) (any, bool)
}, fallback symbols.ScopeID) symbols.ScopeID {
	v, ok := node.Get(ast.MetaScope)
	if !ok {
		return fallback
	}

	id, ok := v.(symbols.ScopeID)
	if !ok {
		return fallback
	}

	return id
}
