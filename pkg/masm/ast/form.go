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
package ast

import (
	"github.com/consensys/go-corset/pkg/masm/ast/instr"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Form is one parsed top-level item, produced by an external parser and
// consumed in source order by the Form Dispatcher. The parser has already
// validated grammar; the dispatcher trusts syntactic well-formedness and
// only enforces the semantic rules below.
type Form interface {
	Span() source.Span
	form()
}

// ModuleDocForm sets the module's top-level docs. Asserted to occur at
// most once.
type ModuleDocForm struct {
	SpanValue source.Span
	Text      string
}

// Span implements Form.
func (f *ModuleDocForm) Span() source.Span { return f.SpanValue }
func (*ModuleDocForm) form()               {}

// DocForm replaces the Form Dispatcher's pending-docstring slot.
type DocForm struct {
	SpanValue source.Span
	Text      string
}

// Span implements Form.
func (f *DocForm) Span() source.Span { return f.SpanValue }
func (*DocForm) form()               {}

// ConstantForm introduces a named constant definition.
type ConstantForm struct {
	Constant *Constant
}

// Span implements Form.
func (f *ConstantForm) Span() source.Span { return f.Constant.Span() }
func (*ConstantForm) form()               {}

// ImportForm introduces a module-level import. Imports never carry docs.
type ImportForm struct {
	Import *Import
}

// Span implements Form.
func (f *ImportForm) Span() source.Span { return f.Import.Span() }
func (*ImportForm) form()               {}

// ProcedureForm wraps an Export — either a freshly-defined Procedure or a
// re-export Alias — in source position.
type ProcedureForm struct {
	Export Export
}

// Span implements Form.
func (f *ProcedureForm) Span() source.Span { return f.Export.Span() }
func (*ProcedureForm) form()               {}

// BeginForm is an Executable module's entry-point body, synthesized by the
// dispatcher into a public `main` procedure with zero locals.
type BeginForm struct {
	SpanValue source.Span
	Body      instr.Body
}

// Span implements Form.
func (f *BeginForm) Span() source.Span { return f.SpanValue }
func (*BeginForm) form()               {}

// AdviceMapEntryForm introduces an advice-map definition.
type AdviceMapEntryForm struct {
	Entry *AdviceMapEntry
}

// Span implements Form.
func (f *AdviceMapEntryForm) Span() source.Span { return f.Entry.Span() }
func (*AdviceMapEntryForm) form()                {}
