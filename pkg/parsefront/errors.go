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
package parsefront

import (
	"fmt"

	"github.com/blendsdk/blend65core/pkg/source"
)

// SyntaxError is a lexing or parsing failure carrying the source location it
// occurred at and the stable diagnostic code it maps to.
type SyntaxError struct {
	Loc     source.Location
	Code    source.Code
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Message)
}

// Diagnostic converts a SyntaxError into a reportable source.Diagnostic,
// defaulting to CodeUnexpectedToken when no more specific code was set.
func (e *SyntaxError) Diagnostic() source.Diagnostic {
	code := e.Code
	if code == 0 {
		code = source.CodeUnexpectedToken
	}

	return source.Errorf(code, e.Loc, "%s", e.Message)
}
