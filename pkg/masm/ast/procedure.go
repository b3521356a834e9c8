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
	"github.com/consensys/go-corset/pkg/masm/ast/instr"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Procedure is a named, bodied item within a module. Entry-point
// procedures carry the reserved name ident.Main and zero
// locals, synthesized by the Form Dispatcher from a Begin form.
type Procedure struct {
	SpanValue  source.Span
	Visibility Visibility
	Name       ident.Identifier
	Locals     uint
	Body       instr.Body
	Docs       *string
}

// Span returns the source span of this definition.
func (p *Procedure) Span() source.Span {
	return p.SpanValue
}

// IsEntrypoint reports whether this procedure is the reserved `main` export
// synthesized from a `begin ... end` block.
func (p *Procedure) IsEntrypoint() bool {
	return p.Name.IsMain()
}
