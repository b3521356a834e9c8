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
	"github.com/consensys/go-corset/pkg/masm/ast/expr"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/rpo"
)

// DefineAdviceMapEntry derives entry's key, defines its companion constant,
// and inserts key -> value into module's advice map.
//
// Defining the companion constant uses the same fatal-on-conflict path as a
// bare Constant form: a ConstantConflict aborts the whole analysis pass, not
// just this entry. A duplicate advice-map key, by contrast, is recoverable:
// it is reported and the existing value is left intact.
func DefineAdviceMapEntry(ctx *AnalysisContext, module *ast.Module, entry *ast.AdviceMapEntry) (ok bool) {
	key := rpo.HashElements(entry.Value)
	if entry.HasExplicitKey() {
		key = *entry.ExplicitKey
	}

	cst := &ast.Constant{
		SpanValue: entry.Span(),
		Name:      entry.Name,
		Expr:      &expr.WordLiteral{SpanValue: entry.Span(), Value: key},
		Docs:      entry.Docs,
	}

	if !ctx.DefineConstant(cst) {
		return false
	}

	if _, exists := module.AdviceMap[key]; exists {
		ctx.Errorf(diag.AdvMapKeyAlreadyDefined, entry.Span(), "advice map key is already defined")
		return true
	}

	module.AdviceMap[key] = entry.Value

	return true
}
