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

// Package sema implements the semantic-analysis pass that turns a parsed
// form list into a validated Module. Its structure mirrors
// pkg/zkc/compiler's split of one concern per file (compiler.go drives the
// pipeline, linker.go resolves references, validator.go walks a dataflow
// worklist): context.go holds the process-scoped AnalysisContext,
// analyze.go is the top-level driver, and one file per sub-component
// (constants.go, imports.go, const_eval.go, visitors.go, advice_map.go)
// holds that component's rules.
package sema

import (
	"github.com/consensys/go-corset/pkg/masm/ast"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// AnalysisContext is the per-module, short-lived analysis state. It is
// created when analysis begins for a module and dropped once the module
// value is returned or analysis fails; it is never shared across
// goroutines.
type AnalysisContext struct {
	source           *source.File
	warningsAsErrors bool
	diagnostics      diag.Diagnostics
	constants        *ConstantTable
	procedureNames   map[ident.Identifier]struct{}
}

// NewAnalysisContext constructs a fresh context bound to the given source
// file.
func NewAnalysisContext(src *source.File) *AnalysisContext {
	return &AnalysisContext{
		source:         src,
		constants:      NewConstantTable(),
		procedureNames: make(map[ident.Identifier]struct{}),
	}
}

// SetWarningsAsErrors configures whether warnings are re-tagged as errors
// at the point they enter the diagnostic buffer.
func (c *AnalysisContext) SetWarningsAsErrors(v bool) {
	c.warningsAsErrors = v
}

// Source returns the shared source-file handle every span in this
// analysis run is built against.
func (c *AnalysisContext) Source() *source.File {
	return c.source
}

// Error pushes a diagnostic onto the buffer, promoting Warning severity to
// Error when warnings-as-errors is set.
func (c *AnalysisContext) Error(d diag.Diagnostic) {
	if c.warningsAsErrors && d.Severity == diag.Warning {
		d.Severity = diag.Error
	}

	c.diagnostics = append(c.diagnostics, d)
}

// Errorf constructs and pushes a diagnostic at its kind's default
// severity, a convenience wrapper around Error(diag.New(...)).
func (c *AnalysisContext) Errorf(kind diag.Kind, span source.Span, message string) {
	c.Error(diag.New(kind, span, message))
}

// DefineConstant inserts a constant into the constant table. On name
// collision it emits ConstantConflict and returns false; unlike an
// ImportConflict or SymbolConflict, the caller treats this as fatal to the
// current dispatch pass rather than skipping just this form (see
// DESIGN.md).
func (c *AnalysisContext) DefineConstant(cst *ast.Constant) bool {
	if !c.constants.Define(cst) {
		c.Errorf(diag.ConstantConflict, cst.Span(), "constant `"+cst.Name.String()+"` is already defined")
		return false
	}

	return true
}

// Constants returns the constant table being built for this module.
func (c *AnalysisContext) Constants() *ConstantTable {
	return c.constants
}

// RegisterProcedureName adds name to the known set of locally-defined
// procedure names, used later to distinguish local calls from
// calls-via-import.
func (c *AnalysisContext) RegisterProcedureName(name ident.Identifier) {
	c.procedureNames[name] = struct{}{}
}

// HasLocalProcedure reports whether name was registered via
// RegisterProcedureName.
func (c *AnalysisContext) HasLocalProcedure(name ident.Identifier) bool {
	_, ok := c.procedureNames[name]
	return ok
}

// HasFailed reports whether any Error-severity diagnostic has been
// recorded so far. Non-error warnings never fail here.
func (c *AnalysisContext) HasFailed() bool {
	return c.diagnostics.HasErrors()
}

// IntoResult consumes the context, returning the accumulated diagnostics.
// The second return value reports success: true only if no Error-severity
// diagnostic remains.
func (c *AnalysisContext) IntoResult() (diag.Diagnostics, bool) {
	return c.diagnostics, !c.diagnostics.HasErrors()
}
