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
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Import is a single module-level import. Imports never carry
// documentation.
type Import struct {
	SpanValue source.Span
	Path      ident.LibraryPath
	Alias     ident.Identifier
	Uses      uint
}

// Span returns the source span of this import declaration.
func (i *Import) Span() source.Span {
	return i.SpanValue
}

// IsUsed reports whether at least one call site has been resolved through
// this import.
func (i *Import) IsUsed() bool {
	return i.Uses > 0
}

// MarkUsed increments the usage counter. Called by the Invoke-Target
// Verifier (and, for re-exports, by the alias-resolution step of
// visit-procedures) whenever a call is resolved through this import.
func (i *Import) MarkUsed() {
	i.Uses++
}
