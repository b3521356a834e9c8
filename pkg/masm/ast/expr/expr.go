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

// Package expr models the small expression tree a Constant's definition (or
// a procedure body's named immediate) is built from. Evaluation itself
// lives in pkg/masm/sema, alongside the rest of the analysis passes; this
// package only has the tree shape.
package expr

import (
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/ast/value"
	"github.com/consensys/go-corset/pkg/masm/felt"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// Operator enumerates the operators a Binary node may carry: arithmetic
// operators require Felt or Integer operands, bitwise operators require
// Integer operands.
type Operator uint8

const (
	// Add is the `+` operator.
	Add Operator = iota
	// Sub is the `-` operator.
	Sub
	// Mul is the `*` operator.
	Mul
	// Div is the `/` operator.
	Div
	// Mod is the `%` operator.
	Mod
	// And is the bitwise `&` operator.
	And
	// Or is the bitwise `|` operator.
	Or
	// Xor is the bitwise `^` operator.
	Xor
	// Shl is the bitwise `<<` operator.
	Shl
	// Shr is the bitwise `>>` operator.
	Shr
)

// IsBitwise reports whether this operator requires Integer-kind operands.
func (op Operator) IsBitwise() bool {
	switch op {
	case And, Or, Xor, Shl, Shr:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case And:
		return "&"
	case Or:
		return "|"
	case Xor:
		return "^"
	case Shl:
		return "<<"
	case Shr:
		return ">>"
	default:
		return "?"
	}
}

// Expr is one node of a constant expression tree. Every variant carries its
// own span so the evaluator can report precise diagnostics.
type Expr interface {
	Span() source.Span
	expr()
}

// Literal is a directly-given Felt or Integer value.
type Literal struct {
	SpanValue source.Span
	Value     value.Value
}

// Span implements Expr.
func (l *Literal) Span() source.Span { return l.SpanValue }
func (*Literal) expr()               {}

// WordLiteral is a directly-given four-element word, e.g. 0x0000...
type WordLiteral struct {
	SpanValue source.Span
	Value     felt.Word
}

// Span implements Expr.
func (l *WordLiteral) Span() source.Span { return l.SpanValue }
func (*WordLiteral) expr()               {}

// Reference is a named reference to another constant, resolved during
// evaluation.
type Reference struct {
	SpanValue source.Span
	Name      ident.Identifier
}

// Span implements Expr.
func (r *Reference) Span() source.Span { return r.SpanValue }
func (*Reference) expr()               {}

// Binary combines two sub-expressions with an operator.
type Binary struct {
	SpanValue source.Span
	Operator  Operator
	Left      Expr
	Right     Expr
}

// Span implements Expr.
func (b *Binary) Span() source.Span { return b.SpanValue }
func (*Binary) expr()               {}

// WordComposition builds a Word out of four Felt-kind sub-expressions.
type WordComposition struct {
	SpanValue source.Span
	Elements  [4]Expr
}

// Span implements Expr.
func (w *WordComposition) Span() source.Span { return w.SpanValue }
func (*WordComposition) expr()               {}

// HashOfValue evaluates a payload of sub-expressions to a sequence of Felts
// and returns the RPO-256 hash of that sequence as a Word.
type HashOfValue struct {
	SpanValue source.Span
	Payload   []Expr
}

// Span implements Expr.
func (h *HashOfValue) Span() source.Span { return h.SpanValue }
func (*HashOfValue) expr()               {}
