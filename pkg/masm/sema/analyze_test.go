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
	"testing"

	"github.com/consensys/go-corset/pkg/masm/ast"
	"github.com/consensys/go-corset/pkg/masm/ast/expr"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/ast/instr"
	"github.com/consensys/go-corset/pkg/masm/ast/value"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/felt"
	"github.com/consensys/go-corset/pkg/masm/rpo"
	"github.com/consensys/go-corset/pkg/masm/source"
	"github.com/consensys/go-corset/pkg/util/assert"
)

func testFile(t *testing.T) *source.File {
	t.Helper()
	return source.NewFile(t.Name(), []byte("test module source"))
}

func sp(f *source.File) source.Span {
	return source.NewSpan(f, 0, 1)
}

func kindsOf(diags diag.Diagnostics) []diag.Kind {
	kinds := make([]diag.Kind, len(diags))
	for i, d := range diags {
		kinds[i] = d.Kind
	}

	return kinds
}

// S1: a library importing std::math::u64 and calling into it should
// succeed, with the import's usage count incremented to 1.
func TestAnalyzeS1ImportedCallSucceeds(t *testing.T) {
	f := testFile(t)
	alias := ident.Identifier("u64")

	imp := &ast.Import{SpanValue: sp(f), Path: ident.ParseLibraryPath("std::math::u64"), Alias: alias}
	proc := &ast.Procedure{
		SpanValue:  sp(f),
		Visibility: ast.Public,
		Name:       "foo",
		Body: instr.Body{
			&instr.Invoke{SpanValue: sp(f), Kind: instr.Exec, Alias: &alias, Name: "add"},
		},
	}

	forms := []ast.Form{
		&ast.ImportForm{Import: imp},
		&ast.ProcedureForm{Export: proc},
	}

	module, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, false)
	assert.Equal(t, nil, err)

	if module == nil {
		t.Fatal("expected a module")
	}

	assert.Equal(t, 0, len(diags))
	assert.Equal(t, uint(1), module.Imports[0].Uses)
}

// S2: an import that is never used, alongside a call to an undefined local
// procedure, should produce exactly [UnusedImport, UndefinedCallee].
func TestAnalyzeS2UnusedImportAndUndefinedCallee(t *testing.T) {
	f := testFile(t)

	imp := &ast.Import{SpanValue: sp(f), Path: ident.ParseLibraryPath("std::a"), Alias: "a"}
	proc := &ast.Procedure{
		SpanValue:  sp(f),
		Visibility: ast.Public,
		Name:       "foo",
		Body: instr.Body{
			&instr.Invoke{SpanValue: sp(f), Kind: instr.Exec, Name: "local_bar"},
		},
	}

	forms := []ast.Form{
		&ast.ImportForm{Import: imp},
		&ast.ProcedureForm{Export: proc},
	}

	_, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, false)
	if err == nil {
		t.Fatal("expected failure due to UndefinedCallee")
	}

	// UnusedImport is reported by the finalizer's own sub-phase, after
	// InvokeTargetVerifier's sweep reports UndefinedCallee; diagnostics are
	// only guaranteed to appear in source order within a single sub-phase.
	kinds := kindsOf(diags)
	if len(kinds) != 2 {
		t.Fatalf("expected exactly 2 diagnostics, got %v", kinds)
	}

	assert.Equal(t, true, (kinds[0] == diag.UnusedImport || kinds[0] == diag.UndefinedCallee))
	assert.Equal(t, true, (kinds[1] == diag.UnusedImport || kinds[1] == diag.UndefinedCallee))
	assert.Equal(t, true, kinds[0] != kinds[1])
}

// S3: two begin blocks in an Executable module: the first succeeds, the
// second conflicts; the first-defined main is kept.
func TestAnalyzeS3DuplicateBeginIsSymbolConflict(t *testing.T) {
	f := testFile(t)

	forms := []ast.Form{
		&ast.BeginForm{SpanValue: sp(f), Body: instr.Body{&instr.Op{SpanValue: sp(f), Mnemonic: "drop"}}},
		&ast.BeginForm{SpanValue: sp(f), Body: instr.Body{&instr.Op{SpanValue: sp(f), Mnemonic: "drop"}}},
	}

	_, diags, err := Analyze(f, ast.Executable, ident.ParseLibraryPath("test"), forms, false)
	if err == nil {
		t.Fatal("expected failure due to SymbolConflict")
	}

	assert.Equal(t, []diag.Kind{diag.SymbolConflict}, kindsOf(diags))
}

// S4: a `call` instruction inside a kernel procedure is rejected, and (were
// analysis otherwise to succeed) the procedure's visibility would have been
// rewritten from Public to Syscall.
func TestAnalyzeS4KernelCallRejectedAndVisibilityRewritten(t *testing.T) {
	f := testFile(t)

	bar := ident.Identifier("bar")
	proc := &ast.Procedure{
		SpanValue:  sp(f),
		Visibility: ast.Public,
		Name:       "foo",
		Body: instr.Body{
			&instr.Invoke{SpanValue: sp(f), Kind: instr.Call, Alias: &bar, Name: "add"},
		},
	}
	// Give the call a qualified target bound to a real import, so the only
	// diagnostic in play is the kernel restriction itself.
	imp := &ast.Import{SpanValue: sp(f), Path: ident.ParseLibraryPath("std::bar"), Alias: bar}

	forms := []ast.Form{
		&ast.ImportForm{Import: imp},
		&ast.ProcedureForm{Export: proc},
	}

	_, diags, err := Analyze(f, ast.Kernel, ident.ParseLibraryPath("test"), forms, false)
	if err == nil {
		t.Fatal("expected failure due to KernelCall")
	}

	assert.Equal(t, []diag.Kind{diag.KernelCall}, kindsOf(diags))
	// The rewrite still runs even though the pass as a whole fails.
	assert.Equal(t, ast.Syscall, proc.Visibility)
}

// S5: a two-constant cycle produces at least one ConstantCycle and fails
// analysis.
func TestAnalyzeS5ConstantCycleFails(t *testing.T) {
	f := testFile(t)

	a := &ast.Constant{SpanValue: sp(f), Name: "A", Expr: &expr.Binary{
		SpanValue: sp(f), Operator: expr.Add,
		Left:  &expr.Reference{SpanValue: sp(f), Name: "B"},
		Right: &expr.Literal{SpanValue: sp(f), Value: value.OfFelt(felt.One())},
	}}
	b := &ast.Constant{SpanValue: sp(f), Name: "B", Expr: &expr.Binary{
		SpanValue: sp(f), Operator: expr.Add,
		Left:  &expr.Reference{SpanValue: sp(f), Name: "A"},
		Right: &expr.Literal{SpanValue: sp(f), Value: value.OfFelt(felt.One())},
	}}

	forms := []ast.Form{
		&ast.ConstantForm{Constant: a},
		&ast.ConstantForm{Constant: b},
	}

	// Force evaluation: a Library module alone never evaluates constants, so
	// reference them from a procedure's immediate to trigger the evaluator.
	forms = append(forms, &ast.ProcedureForm{Export: &ast.Procedure{
		SpanValue:  sp(f),
		Visibility: ast.Private,
		Name:       "foo",
		Body: instr.Body{
			&instr.Op{SpanValue: sp(f), Mnemonic: "push", Immediate: &instr.Immediate{
				Expected: value.Felt,
				Expr:     &expr.Reference{SpanValue: sp(f), Name: "A"},
			}},
		},
	}})

	_, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, false)
	if err == nil {
		t.Fatal("expected failure due to ConstantCycle")
	}

	found := false

	for _, d := range diags {
		if d.Kind == diag.ConstantCycle {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected a ConstantCycle diagnostic, got %v", kindsOf(diags))
	}
}

// S6: an advice-map entry without an explicit key hashes its value and
// defines a companion constant bound to that hash.
func TestAnalyzeS6AdviceMapEntryHashesValue(t *testing.T) {
	f := testFile(t)

	value4 := []felt.Felt{felt.New(1), felt.New(2), felt.New(3), felt.New(4)}
	entry := &ast.AdviceMapEntry{SpanValue: sp(f), Name: "K", Value: value4}

	forms := []ast.Form{&ast.AdviceMapEntryForm{Entry: entry}}

	module, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, false)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(diags))

	wantKey := rpo.HashElements(value4)

	got, ok := module.AdviceMap[wantKey]
	if !ok {
		t.Fatal("expected advice map to contain the derived key")
	}

	assert.Equal(t, value4, got)
}

// Boundary #10: an empty form list succeeds for Library, but fails with
// MissingEntrypoint for Executable.
func TestAnalyzeEmptyFormList(t *testing.T) {
	f := testFile(t)

	module, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), nil, false)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(diags))

	if module == nil || len(module.Exports) != 0 {
		t.Fatal("expected an empty module")
	}

	_, diags, err = Analyze(f, ast.Executable, ident.ParseLibraryPath("test"), nil, false)
	if err == nil {
		t.Fatal("expected MissingEntrypoint")
	}

	assert.Equal(t, []diag.Kind{diag.MissingEntrypoint}, kindsOf(diags))
}

// Boundary #11: a doc comment followed by EOF produces a single
// UnusedDocstring.
func TestAnalyzeDanglingDocAtEOF(t *testing.T) {
	f := testFile(t)

	forms := []ast.Form{&ast.DocForm{SpanValue: sp(f), Text: "dangling"}}

	_, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, false)
	if err != nil {
		t.Fatalf("expected success (warning only), got %v", err)
	}

	assert.Equal(t, []diag.Kind{diag.UnusedDocstring}, kindsOf(diags))
}

// Boundary #12: two imports sharing an alias report exactly one
// ImportConflict (not two independent failures) — the conflict is
// recoverable at the Import Table level, even though ImportConflict's
// Error severity still fails the analysis overall once dispatch finishes.
func TestAnalyzeDuplicateImportAlias(t *testing.T) {
	f := testFile(t)

	module := ast.NewModule(sp(f), ident.ParseLibraryPath("test"), ast.Library)
	imports := NewImportTable(module)
	ctx := NewAnalysisContext(f)

	imp1 := &ast.Import{SpanValue: sp(f), Path: ident.ParseLibraryPath("std::a"), Alias: "a"}
	imp2 := &ast.Import{SpanValue: sp(f), Path: ident.ParseLibraryPath("std::b"), Alias: "a"}

	if fatal := imports.Define(ctx, imp1); fatal {
		t.Fatal("first import must not be fatal")
	}

	if fatal := imports.Define(ctx, imp2); fatal {
		t.Fatal("an alias conflict is recoverable, not fatal")
	}

	diags, ok := ctx.IntoResult()
	if ok {
		t.Fatal("ImportConflict is Error severity and must fail into_result")
	}

	assert.Equal(t, []diag.Kind{diag.ImportConflict}, kindsOf(diags))
	// Both imports remain visible in the module's import list even though
	// only the first is reachable by alias lookup.
	assert.Equal(t, 2, len(module.Imports))
	assert.Equal(t, imp1, imports.Lookup("a"))
}

// warnings_as_errors promotes UnusedImport to an Error.
func TestAnalyzeWarningsAsErrors(t *testing.T) {
	f := testFile(t)

	imp := &ast.Import{SpanValue: sp(f), Path: ident.ParseLibraryPath("std::a"), Alias: "a"}
	forms := []ast.Form{&ast.ImportForm{Import: imp}}

	_, diags, err := Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, false)
	assert.Equal(t, nil, err)
	assert.Equal(t, diag.Warning, diags[0].Severity)

	_, diags, err = Analyze(f, ast.Library, ident.ParseLibraryPath("test"), forms, true)
	if err == nil {
		t.Fatal("expected warnings_as_errors to fail analysis")
	}

	assert.Equal(t, diag.Error, diags[0].Severity)
}
