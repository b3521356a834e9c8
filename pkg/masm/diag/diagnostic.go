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
package diag

import (
	"fmt"
	"strings"

	"github.com/consensys/go-corset/pkg/masm/source"
)

// Diagnostic is a single structured finding produced by semantic analysis,
// adapted from source.SyntaxError but extended with a severity/kind
// taxonomy (a plain SyntaxError carries only a span and a message).
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Span     source.Span
	Message  string
}

// New constructs a diagnostic at its kind's default severity.
func New(kind Kind, span source.Span, message string) Diagnostic {
	return Diagnostic{Severity: kind.DefaultSeverity(), Kind: kind, Span: span, Message: message}
}

// Error implements the error interface for a single diagnostic.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// Diagnostics is an ordered collection of diagnostics. Analyze accumulates
// these in source order and returns them either as warnings alongside a
// successful Module, or as the sole result of a failed analysis.
type Diagnostics []Diagnostic

// Error implements the error interface, so a caller that only wants a
// single Go error (rather than the structured list) can still use
// Diagnostics directly, mirroring how compiler.Compile returns
// []source.SyntaxError for the same purpose.
func (ds Diagnostics) Error() string {
	var b strings.Builder

	for i, d := range ds {
		if i != 0 {
			b.WriteByte('\n')
		}

		b.WriteString(d.Error())
	}

	return b.String()
}

// HasErrors reports whether any diagnostic in the collection carries Error
// severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}

	return false
}

// Errors returns only the Error-severity diagnostics, preserving order.
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics

	for _, d := range ds {
		if d.Severity == Error {
			out = append(out, d)
		}
	}

	return out
}

// Warnings returns only the Warning-severity diagnostics, preserving order.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics

	for _, d := range ds {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}

	return out
}
