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
)

// SymbolTable maps a module's procedure/alias export names to their
// definitions. The first definition of a given name wins: a later
// conflicting export is reported but discarded from both this table and
// the owning Module's export list, while its name is still registered with
// the AnalysisContext so that calls to it do not cascade into spurious
// UndefinedCallee diagnostics.
type SymbolTable struct {
	module *ast.Module
	byName map[ident.Identifier]ast.Export
}

// NewSymbolTable constructs an empty table bound to module.
func NewSymbolTable(module *ast.Module) *SymbolTable {
	return &SymbolTable{module: module, byName: make(map[ident.Identifier]ast.Export)}
}

// Define registers export under its ExportName. On collision it emits
// SymbolConflict and discards export (the first definition is kept); the
// name is registered with ctx either way. This is always recoverable: a
// procedure definition can only ever fail with SymbolConflict, so unlike
// ImportTable.Define there is no fatal case to report back to the
// dispatcher.
func (t *SymbolTable) Define(ctx *AnalysisContext, export ast.Export) {
	name := export.ExportName()

	if _, exists := t.byName[name]; exists {
		ctx.Errorf(diag.SymbolConflict, export.Span(), "procedure `"+name.String()+"` is already defined")
	} else {
		t.byName[name] = export
		t.module.Exports = append(t.module.Exports, export)
	}

	ctx.RegisterProcedureName(name)
}
