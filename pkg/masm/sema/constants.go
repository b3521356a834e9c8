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
)

// ConstantTable holds named constants and their definition order. Lookup
// and cycle-safe evaluation are provided by ConstantEvaluator in
// const_eval.go; this file only holds the table itself, the way
// pkg/zkc/compiler/linker.go keeps its component map separate from the
// analysis that walks it.
type ConstantTable struct {
	byName map[ident.Identifier]*ast.Constant
	order  []ident.Identifier
}

// NewConstantTable constructs an empty table.
func NewConstantTable() *ConstantTable {
	return &ConstantTable{byName: make(map[ident.Identifier]*ast.Constant)}
}

// Define inserts cst into the table. Returns false on name collision,
// leaving the first definition in place so the evaluator's results stay
// deterministic regardless of how many conflicting redefinitions follow.
func (t *ConstantTable) Define(cst *ast.Constant) bool {
	if _, exists := t.byName[cst.Name]; exists {
		return false
	}

	t.byName[cst.Name] = cst
	t.order = append(t.order, cst.Name)

	return true
}

// Lookup returns the constant bound to name, or nil if undefined.
func (t *ConstantTable) Lookup(name ident.Identifier) *ast.Constant {
	return t.byName[name]
}
