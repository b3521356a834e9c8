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
	"github.com/consensys/go-corset/pkg/masm/ast/instr"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Analyze constructs and validates a Module given the forms constituting
// its body. On success it returns the validated module and any warnings
// collected along the way; on failure it returns a nil module and the
// complete diagnostic list, also available as the returned error via
// Diagnostics.Error.
func Analyze(
	src *source.File,
	kind ast.ModuleKind,
	path ident.LibraryPath,
	forms []ast.Form,
	warningsAsErrors bool,
) (*ast.Module, diag.Diagnostics, error) {
	ctx := NewAnalysisContext(src)
	ctx.SetWarningsAsErrors(warningsAsErrors)

	module := ast.NewModule(source.NewSpan(src, 0, len(src.Contents())), path, kind)

	imports := NewImportTable(module)
	symbols := NewSymbolTable(module)

	dispatch(ctx, module, kind, imports, symbols, forms)

	if ctx.HasFailed() {
		diags, _ := ctx.IntoResult()
		return nil, diags, diags.Errors()
	}

	visitProcedures(ctx, module)

	for _, imp := range module.Imports {
		if !imp.IsUsed() {
			ctx.Errorf(diag.UnusedImport, imp.Span(), "import `"+imp.Path.String()+"` as `"+imp.Alias.String()+"` is never used")
		}
	}

	diags, ok := ctx.IntoResult()
	if !ok {
		return nil, diags, diags.Errors()
	}

	return module, diags, nil
}

// visitProcedures walks every export of module, applying the kernel
// visibility rewrite, ConstEvalVisitor and InvokeTargetVerifier to each
// procedure body in turn, and resolving each alias's target import (spec
// §2 "second sweep", §4.5 "Kernel-visibility rewrite ordering"). The
// kernel-visibility rewrite happens before invoke-target verification so
// that kernel procedures see their rewritten visibility when consulted.
func visitProcedures(ctx *AnalysisContext, module *ast.Module) {
	var (
		isKernel = module.Kind == ast.Kernel
		eval     = NewConstantEvaluator(ctx, ctx.Constants())
		exports  = module.Exports
	)

	module.Exports = make([]ast.Export, 0, len(exports))

	for _, export := range exports {
		switch e := export.(type) {
		case *ast.Procedure:
			if isKernel && e.Visibility == ast.Public {
				e.Visibility = ast.Syscall
			}

			instr.Walk(e.Body, NewConstEvalVisitor(ctx, eval))
			instr.Walk(e.Body, NewInvokeTargetVerifier(ctx, module))

		case *ast.Alias:
			if e.TargetsImport() {
				if imp := module.FindImport(e.Target.ImportAlias); imp != nil {
					imp.MarkUsed()
				} else {
					ctx.Errorf(diag.MissingImport, e.Span(), "no import bound to alias `"+e.Target.ImportAlias.String()+"`")
				}
			}
		}

		module.Exports = append(module.Exports, export)
	}
}
