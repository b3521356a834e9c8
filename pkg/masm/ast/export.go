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

// Export is an item visible outside its defining module: either a
// Procedure or an Alias re-exporting another module's procedure.
type Export interface {
	Span() source.Span
	// ExportName returns the locally-visible export name, used for Symbol
	// Table conflict detection.
	ExportName() ident.Identifier
	export()
}

// ExportName implements Export.
func (p *Procedure) ExportName() ident.Identifier { return p.Name }

// ExportName implements Export.
func (a *Alias) ExportName() ident.Identifier { return a.LocalName }

func (*Procedure) export() {}
func (*Alias) export()     {}
