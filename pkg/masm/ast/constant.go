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
	"github.com/consensys/go-corset/pkg/masm/ast/expr"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Constant is a named constant definition.
type Constant struct {
	SpanValue source.Span
	Name      ident.Identifier
	Expr      expr.Expr
	Docs      *string
}

// Span returns the source span of this definition.
func (c *Constant) Span() source.Span {
	return c.SpanValue
}

// WithDocs attaches a (possibly nil) docstring to this constant, returning
// the receiver for chaining, matching the move-semantics pattern used
// throughout the Form Dispatcher.
func (c *Constant) WithDocs(docs *string) *Constant {
	c.Docs = docs
	return c
}
