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

// Package ast models the validated output of analysis (Module)
// and the definitions it is built from (Constant, Import, Procedure,
// Alias, AdviceMapEntry). The tree is split across leaf packages — ident,
// value, expr and instr — the way pkg/zkc/compiler/ast splits decl, expr
// and stmt around the shared ast/data and ast/variable leaves, so that
// this package and instr can each depend on the shared vocabulary without
// an import cycle between them.
package ast

import (
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/felt"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Module is the output of semantic analysis. Invariants checked by the end
// of analysis: no two Exports share a name; no two Imports
// share an alias; every Alias targeting a procedure path has a resolvable
// import; every Import has usage_count >= 1 unless a diagnostic was
// emitted for it; if Kind == Executable then exactly one export is named
// "main".
type Module struct {
	SpanValue source.Span
	Path      ident.LibraryPath
	Kind      ModuleKind
	Docs      *string
	Exports   []Export
	Imports   []*Import
	// AdviceMap is keyed by the derived or explicit Word key.
	AdviceMap map[felt.Word][]felt.Felt
}

// NewModule constructs an empty Module ready to receive definitions from
// the Form Dispatcher.
func NewModule(span source.Span, path ident.LibraryPath, kind ModuleKind) *Module {
	return &Module{
		SpanValue: span,
		Path:      path,
		Kind:      kind,
		AdviceMap: make(map[felt.Word][]felt.Felt),
	}
}

// Span returns the source span of this module.
func (m *Module) Span() source.Span {
	return m.SpanValue
}

// FindImport returns the import bound to the given local alias, or nil if
// none matches.
func (m *Module) FindImport(alias ident.Identifier) *Import {
	for _, imp := range m.Imports {
		if imp.Alias == alias {
			return imp
		}
	}

	return nil
}

// FindExport returns the export registered under the given name, or nil
// if none matches.
func (m *Module) FindExport(name ident.Identifier) Export {
	for _, exp := range m.Exports {
		if exp.ExportName() == name {
			return exp
		}
	}

	return nil
}

// Entrypoint returns the module's `main` export, or nil if it has none.
func (m *Module) Entrypoint() *Procedure {
	for _, exp := range m.Exports {
		if proc, ok := exp.(*Procedure); ok && proc.IsEntrypoint() {
			return proc
		}
	}

	return nil
}
