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
	"github.com/consensys/go-corset/pkg/masm/felt"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// AdviceMapEntry is a single advice-map definition. If ExplicitKey is nil,
// the Advice-Map Builder derives the key as the RPO-256 hash of Value.
type AdviceMapEntry struct {
	SpanValue   source.Span
	Name        ident.Identifier
	ExplicitKey *felt.Word
	Value       []felt.Felt
	Docs        *string
}

// Span returns the source span of this definition.
func (e *AdviceMapEntry) Span() source.Span {
	return e.SpanValue
}

// HasExplicitKey reports whether this entry supplies its own key rather
// than deriving one by hashing Value.
func (e *AdviceMapEntry) HasExplicitKey() bool {
	return e.ExplicitKey != nil
}
