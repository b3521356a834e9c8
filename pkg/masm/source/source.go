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

// Package source provides the minimal source-handle representation the
// semantic analyzer needs. Lexing and parsing are external collaborators
// (see pkg/masm/sema); this package only has to support read-only byte
// slicing by span and span-to-line resolution for diagnostics.
package source

import "fmt"

// File is a read-only handle onto the textual contents of a single module
// source file. It is reference-shared: an AnalysisContext and every Span it
// hands out point at the same File, never a copy.
type File struct {
	name     string
	contents []byte
}

// NewFile constructs a source file handle over the given bytes.
func NewFile(name string, contents []byte) *File {
	return &File{name: name, contents: contents}
}

// Name returns the file name associated with this source file.
func (f *File) Name() string {
	return f.name
}

// Contents returns the raw bytes of this source file.
func (f *File) Contents() []byte {
	return f.contents
}

// Slice returns the bytes covered by the given span. Panics if the span is
// not within bounds of this file, since that indicates a parser bug upstream
// of the core.
func (f *File) Slice(span Span) []byte {
	if span.file != f {
		panic("span does not belong to this source file")
	}

	return f.contents[span.Lo:span.Hi]
}

// Line describes a single physical line within a source file, numbered from
// 1, along with its span.
type Line struct {
	Number int
	Span   Span
}

// EnclosingLine finds the first physical line enclosing the start of span.
// If the span starts beyond the end of the file, the last line is returned.
func (f *File) EnclosingLine(span Span) Line {
	var (
		num   = 1
		start = 0
	)

	for i := 0; i < len(f.contents); i++ {
		if i == span.Lo {
			return Line{num, Span{f, start, endOfLine(f.contents, i)}}
		} else if f.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}

	return Line{num, Span{f, start, len(f.contents)}}
}

func endOfLine(text []byte, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}

	return len(text)
}

// Span is a half-open byte range [Lo, Hi) within a specific source File.
// Every AST node produced upstream carries a Span; diagnostics reference
// spans, never raw line/column pairs.
type Span struct {
	file   *File
	Lo, Hi int
}

// NewSpan constructs a span over the given file, checking the basic
// ordering invariant.
func NewSpan(file *File, lo, hi int) Span {
	if lo > hi {
		panic("invalid span: lo > hi")
	}

	return Span{file, lo, hi}
}

// File returns the source file this span refers into.
func (s Span) File() *File {
	return s.file
}

// Length returns the number of bytes covered by this span.
func (s Span) Length() int {
	return s.Hi - s.Lo
}

// String renders a compact, human-readable form of the span for debugging;
// diagnostics rendering proper is an external collaborator's job.
func (s Span) String() string {
	name := "<unknown>"
	if s.file != nil {
		name = s.file.Name()
	}

	return fmt.Sprintf("%s:%d:%d", name, s.Lo, s.Hi)
}
