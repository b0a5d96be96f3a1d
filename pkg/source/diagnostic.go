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
package source

import (
	"fmt"
	"sort"
)

// Severity classifies a Diagnostic.  Ordering matters: Error > Warning >
// Info > Hint, as required by §6.
type Severity uint8

const (
	// Hint is the lowest severity; purely informational.
	Hint Severity = iota
	// Info is a neutral observation, never gates a build.
	Info
	// Warning indicates a likely defect that does not fail the build.
	Warning
	// Error indicates the build cannot succeed.
	Error
)

// String renders a severity for report output.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code is a stable, numeric-backed identifier for a diagnostic rule.  Codes
// are never renumbered once released, since external tooling may match on
// them.
type Code uint16

// The representative diagnostic codes named in §6, made into a closed,
// exhaustive enumeration per SPEC_FULL.md §E.3.
const (
	CodeUnexpectedToken Code = iota + 1
	CodeUnterminatedString
	CodeInvalidNumberLiteral
	CodeDuplicateDeclaration
	CodeUndefinedSymbol
	CodeTypeMismatch
	CodeArgumentCountMismatch
	CodeInvalidReturnType
	CodeIndexOutOfRange
	CodeUnusedVariable
	CodeWriteOnlyVariable
	CodeUnreachableCode
	CodeRecursionProhibited
	CodeStackOverflowRisk
	CodeUsedBeforeAssigned
	CodePossiblyUninitialized
	CodeUnknownType
	CodeInvalidCondition
	CodeUnknownIntrinsic
	CodeInvalidTarget
	CodeZeroPageOverflow
	CodeInternalError
)

var codeNames = map[Code]string{
	CodeUnexpectedToken:       "UNEXPECTED_TOKEN",
	CodeUnterminatedString:    "UNTERMINATED_STRING",
	CodeInvalidNumberLiteral:  "INVALID_NUMBER_LITERAL",
	CodeDuplicateDeclaration:  "DUPLICATE_DECLARATION",
	CodeUndefinedSymbol:       "UNDEFINED_SYMBOL",
	CodeTypeMismatch:          "TYPE_MISMATCH",
	CodeArgumentCountMismatch: "ARGUMENT_COUNT_MISMATCH",
	CodeInvalidReturnType:     "INVALID_RETURN_TYPE",
	CodeIndexOutOfRange:       "INDEX_OUT_OF_RANGE",
	CodeUnusedVariable:        "UNUSED_VARIABLE",
	CodeWriteOnlyVariable:     "WRITE_ONLY_VARIABLE",
	CodeUnreachableCode:       "UNREACHABLE_CODE",
	CodeRecursionProhibited:   "RECURSION_PROHIBITED",
	CodeStackOverflowRisk:     "STACK_OVERFLOW_RISK",
	CodeUsedBeforeAssigned:    "USED_BEFORE_ASSIGNED",
	CodePossiblyUninitialized: "POSSIBLY_UNINITIALIZED",
	CodeUnknownType:           "UNKNOWN_TYPE",
	CodeInvalidCondition:      "INVALID_CONDITION",
	CodeUnknownIntrinsic:      "UNKNOWN_INTRINSIC",
	CodeInvalidTarget:         "INVALID_TARGET",
	CodeZeroPageOverflow:      "ZERO_PAGE_OVERFLOW",
	CodeInternalError:         "INTERNAL_ERROR",
}

// String renders the stable rule name for a code, e.g. "TYPE_MISMATCH".
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return "UNKNOWN_CODE"
}

// Diagnostic is a single reported finding: a severity, a stable code, a
// human-readable message and the location it pertains to (§3.2).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Location Location
}

// New constructs a Diagnostic.
func New(severity Severity, code Code, message string, loc Location) Diagnostic {
	return Diagnostic{severity, code, message, loc}
}

// Errorf constructs an Error-severity diagnostic.
func Errorf(code Code, loc Location, format string, args ...any) Diagnostic {
	return New(Error, code, sprintf(format, args...), loc)
}

// Warnf constructs a Warning-severity diagnostic.
func Warnf(code Code, loc Location, format string, args ...any) Diagnostic {
	return New(Warning, code, sprintf(format, args...), loc)
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}

	return fmt.Sprintf(format, args...)
}

// Bag accumulates diagnostics across one or more passes and returns them
// stably sorted by source location (see Diagnostics).
type Bag struct {
	items []Diagnostic
}

// Add appends a diagnostic, preserving the order it was produced in within
// whatever pass is currently reporting.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// AddAll appends a slice of diagnostics in order.
func (b *Bag) AddAll(ds []Diagnostic) {
	b.items = append(b.items, ds...)
}

// HasErrors reports whether any Error-severity diagnostic has been recorded;
// this is the §7 "success" predicate.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// Diagnostics returns a copy of the accumulated diagnostics stably sorted
// by (file, start.line, start.column). The reporting pass is not a sort
// key: diagnostics at the same location keep the order they were added in,
// but a later pass's diagnostic at an earlier location sorts before an
// earlier pass's diagnostic at a later location.
func (b *Bag) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)

	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i].Location, out[j].Location)
	})

	return out
}

// Len returns the number of diagnostics recorded so far.
func (b *Bag) Len() int {
	return len(b.items)
}
