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

import "os"

// File holds the full contents of one source file, along with precomputed
// line-start offsets so Position lookups don't rescan the whole buffer.
type File struct {
	name      string
	contents  []rune
	lineStart []int
}

// NewFile constructs a File from an in-memory byte buffer.
func NewFile(name string, contents []byte) *File {
	runes := []rune(string(contents))
	starts := []int{0}

	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &File{name, runes, starts}
}

// ReadFile loads a file from disk.
func ReadFile(name string) (*File, error) {
	bytes, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	return NewFile(name, bytes), nil
}

// Name returns the filename this source file was constructed with.
func (f *File) Name() string {
	return f.name
}

// Contents returns the full rune buffer of this file.
func (f *File) Contents() []rune {
	return f.contents
}

// PositionOf converts an absolute rune offset into a line/column Position.
// Lines and columns both count from 1.
func (f *File) PositionOf(offset int) Position {
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(f.lineStart)-1

	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStart[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	line := lo + 1
	column := offset - f.lineStart[lo] + 1

	return Position{Line: line, Column: column, Offset: offset}
}

// Line returns the text of the given 1-indexed line number, excluding any
// trailing newline.
func (f *File) Line(number int) string {
	if number < 1 || number > len(f.lineStart) {
		return ""
	}

	start := f.lineStart[number-1]

	end := len(f.contents)
	if number < len(f.lineStart) {
		end = f.lineStart[number] - 1
	}

	if end < start {
		end = start
	}

	return string(f.contents[start:end])
}

// LocationOf builds a Location spanning [start,end) rune offsets within
// this file.
func (f *File) LocationOf(start, end int) Location {
	return Location{
		File:  f.name,
		Start: f.PositionOf(start),
		End:   f.PositionOf(end),
	}
}
