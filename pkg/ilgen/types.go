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
package ilgen

import (
	"github.com/blendsdk/blend65core/pkg/ast"
	"github.com/blendsdk/blend65core/pkg/il"
	"github.com/blendsdk/blend65core/pkg/types"
)

// toILType maps a source-level types.Info (§3.3) down to the IL's smaller
// type universe (§3.7): IL has no distinct boolean-vs-byte representation
// concern and no callback type, since by the time lowering runs every
// callback has already been resolved to a concrete CALL target.
func toILType(t types.Info) il.Type {
	switch t.Kind() {
	case types.KindByte:
		return il.ByteType
	case types.KindWord:
		return il.WordType
	case types.KindBoolean:
		return il.BoolType
	case types.KindArray:
		size := t.ArrayLen()
		return il.ArrayOf(toILType(t.Element()), size)
	case types.KindVoid:
		return il.VoidType
	default:
		return il.WordType
	}
}

// resolveTypeRef lowers a textual TypeRef the same way pass 2 resolves it
// against the type system, but directly to an il.Type since the generator
// runs after type checking has already validated the annotation.
func (g *generator) resolveTypeRef(ref ast.TypeRef) il.Type {
	if ref.IsArray {
		elem := il.ByteType
		if b, ok := types.Builtin(ref.Name); ok {
			elem = toILType(b)
		}

		size := -1
		if ref.ArraySize != nil {
			size = *ref.ArraySize
		}

		return il.ArrayOf(elem, size)
	}

	if b, ok := types.Builtin(ref.Name); ok {
		return toILType(b)
	}

	return il.WordType
}

// exprType reads back the types.Info pass 3 attached to an expression node
// (§5 "Mutation discipline": passes append findings, never overwrite).
func exprType(e ast.Expression) (types.Info, bool) {
	an, ok := e.(interface{ Get(ast.MetadataKey) (any, bool) })
	if !ok {
		return types.Unknown, false
	}

	v, ok := an.Get(ast.MetaExpressionType)
	if !ok {
		return types.Unknown, false
	}

	t, ok := v.(types.Info)
	return t, ok
}
