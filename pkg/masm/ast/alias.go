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

// AliasTargetKind distinguishes the two shapes an Alias's target can take.
type AliasTargetKind uint8

const (
	// AliasTargetProcedurePath names a fully-qualified `alias::name`
	// procedure, which requires a matching Import to resolve.
	AliasTargetProcedurePath AliasTargetKind = iota
	// AliasTargetMastRoot names a procedure directly by its compiled
	// digest, requiring no import.
	AliasTargetMastRoot
)

// AliasTarget is the union of the two forms an Alias may re-export.
type AliasTarget struct {
	Kind AliasTargetKind
	// ImportAlias and Name are meaningful when Kind ==
	// AliasTargetProcedurePath: ImportAlias names the local import binding
	// that must resolve, and Name is the procedure within that module.
	ImportAlias ident.Identifier
	Name        ident.Identifier
	// Root is meaningful when Kind == AliasTargetMastRoot.
	Root felt.Word
}

// Alias is a re-export declaration, legal only in Library modules.
type Alias struct {
	SpanValue source.Span
	LocalName ident.Identifier
	Target    AliasTarget
	Docs      *string
}

// Span returns the source span of this declaration.
func (a *Alias) Span() source.Span {
	return a.SpanValue
}

// TargetsImport reports whether this alias's target requires a resolvable
// import, as opposed to a bare MAST-root literal.
func (a *Alias) TargetsImport() bool {
	return a.Target.Kind == AliasTargetProcedurePath
}
