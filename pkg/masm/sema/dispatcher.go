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
package sema

import (
	"github.com/consensys/go-corset/pkg/masm/ast"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// pendingDoc is the Form Dispatcher's single-element mutable cell for a
// docstring awaiting the item it documents, carrying both the text and the
// span so that an evicted docstring can still be reported accurately.
type pendingDoc struct {
	text string
	span source.Span
}

// dispatch consumes forms head-to-tail, routing each to its handler and
// managing the pending-docstring slot. It returns as soon as the queue is
// drained or a fatal diagnostic has been recorded: a self-import or
// constant-name collision aborts the whole pass immediately rather than
// merely skipping the current form.
func dispatch(
	ctx *AnalysisContext,
	module *ast.Module,
	kind ast.ModuleKind,
	imports *ImportTable,
	symbols *SymbolTable,
	forms []ast.Form,
) {
	var (
		pending     *pendingDoc
		moduleDocAt bool
	)

	takeDocs := func() *string {
		if pending == nil {
			return nil
		}

		text := pending.text
		pending = nil

		return &text
	}

	for _, form := range forms {
		switch f := form.(type) {
		case *ast.ModuleDocForm:
			if moduleDocAt || pending != nil {
				// The spec's taxonomy (§7) has no dedicated "misplaced module
				// docs" kind; UnusedDocstring is the closest existing fit for a
				// docstring that cannot be attached where it appears (see
				// DESIGN.md Open Questions).
				ctx.Errorf(diag.UnusedDocstring, f.Span(), "module docs must appear at most once, before any item-level doc")
				continue
			}

			text := f.Text
			module.Docs = &text
			moduleDocAt = true

		case *ast.DocForm:
			if pending != nil {
				ctx.Errorf(diag.UnusedDocstring, pending.span, "doc comment is not followed by a documentable item")
			}

			pending = &pendingDoc{text: f.Text, span: f.Span()}

		case *ast.ConstantForm:
			f.Constant.Docs = takeDocs()
			if !ctx.DefineConstant(f.Constant) {
				return
			}

		case *ast.ImportForm:
			if pending != nil {
				ctx.Errorf(diag.ImportDocstring, pending.span, "doc comments cannot precede an import")
				pending = nil
			}

			if imports.Define(ctx, f.Import) {
				return
			}

		case *ast.ProcedureForm:
			dispatchProcedureForm(ctx, kind, symbols, f, takeDocs)

		case *ast.BeginForm:
			if kind != ast.Executable {
				takeDocs()
				ctx.Errorf(diag.UnexpectedEntrypoint, f.Span(), "`begin` blocks are only allowed in an executable module")

				continue
			}

			proc := &ast.Procedure{
				SpanValue:  f.Span(),
				Visibility: ast.Public,
				Name:       ident.Main,
				Locals:     0,
				Body:       f.Body,
				Docs:       takeDocs(),
			}
			symbols.Define(ctx, proc)

		case *ast.AdviceMapEntryForm:
			f.Entry.Docs = takeDocs()
			if !DefineAdviceMapEntry(ctx, module, f.Entry) {
				return
			}
		}
	}

	if pending != nil {
		ctx.Errorf(diag.UnusedDocstring, pending.span, "doc comment is not followed by a documentable item")
	}

	if kind == ast.Executable && module.Entrypoint() == nil {
		ctx.Errorf(diag.MissingEntrypoint, module.Span(), "executable module has no `main` entry point")
	}
}

// dispatchProcedureForm handles the Procedure(Export) form, whose legality
// depends on both the module kind and whether the export is an Alias (spec
// §4.1's dedicated rules for ReexportFromKernel/UnexpectedExport).
func dispatchProcedureForm(
	ctx *AnalysisContext,
	kind ast.ModuleKind,
	symbols *SymbolTable,
	f *ast.ProcedureForm,
	takeDocs func() *string,
) {
	if alias, isAlias := f.Export.(*ast.Alias); isAlias {
		switch kind {
		case ast.Kernel:
			takeDocs()
			ctx.Errorf(diag.ReexportFromKernel, alias.Span(), "re-exports are forbidden in a kernel module")
		case ast.Executable:
			takeDocs()
			ctx.Errorf(diag.UnexpectedExport, alias.Span(), "re-exports are forbidden in an executable module")
		case ast.Library:
			alias.Docs = takeDocs()
			symbols.Define(ctx, alias)
		}

		return
	}

	proc := f.Export.(*ast.Procedure)
	if kind == ast.Executable && proc.Visibility.IsExported() && !proc.IsEntrypoint() {
		takeDocs()
		ctx.Errorf(diag.UnexpectedExport, proc.Span(), "only `main` may be exported from an executable module")

		return
	}

	proc.Docs = takeDocs()
	symbols.Define(ctx, proc)
}
