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

// ImportTable tracks a module's imports by local alias, appending them to
// the owning Module in source order and detecting conflicting aliases and
// self-imports as they are defined.
type ImportTable struct {
	module  *ast.Module
	byAlias map[ident.Identifier]*ast.Import
}

// NewImportTable constructs an empty table bound to module.
func NewImportTable(module *ast.Module) *ImportTable {
	return &ImportTable{module: module, byAlias: make(map[ident.Identifier]*ast.Import)}
}

// Define appends imp to the module's import list, reporting SelfImport when
// imp's path structurally equals the enclosing module's own path (detected
// by structural equality of path components, not by string formatting) and
// ImportConflict on a duplicate local alias. A conflicting import is still
// appended — both remain visible in the final table — but only the first
// definition is reachable via Lookup.
//
// The bool return reports whether this import is fatal to the current
// analysis pass: a self-import aborts the dispatch loop immediately, while
// an alias conflict is recoverable and dispatch continues (see DESIGN.md).
func (t *ImportTable) Define(ctx *AnalysisContext, imp *ast.Import) (fatal bool) {
	t.module.Imports = append(t.module.Imports, imp)

	if imp.Path.Equal(t.module.Path) {
		ctx.Errorf(diag.SelfImport, imp.Span(), "module cannot import its own path `"+imp.Path.String()+"`")
		return true
	}

	if _, conflict := t.byAlias[imp.Alias]; conflict {
		ctx.Errorf(diag.ImportConflict, imp.Span(), "import alias `"+imp.Alias.String()+"` is already defined")
		return false
	}

	t.byAlias[imp.Alias] = imp

	return false
}

// Lookup returns the import bound to alias, or nil if none matches.
func (t *ImportTable) Lookup(alias ident.Identifier) *ast.Import {
	return t.byAlias[alias]
}
