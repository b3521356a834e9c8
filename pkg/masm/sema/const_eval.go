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
	"github.com/bits-and-blooms/bitset"

	"github.com/consensys/go-corset/pkg/masm/ast/expr"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/ast/value"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/felt"
	"github.com/consensys/go-corset/pkg/masm/rpo"
)

// ConstantEvaluator evaluates constant expressions to concrete values,
// folding named references and detecting cycles in the reference graph.
// Cycle detection tracks the names currently on the evaluation stack in a
// bitset.BitSet indexed by each constant's position in definition order,
// generalizing the index-set style of pkg/util/collection/bit to this
// evaluator's "visiting" set.
type ConstantEvaluator struct {
	ctx      *AnalysisContext
	table    *ConstantTable
	indices  map[ident.Identifier]uint
	visiting *bitset.BitSet
	resolved map[ident.Identifier]value.Value
	poisoned map[ident.Identifier]bool
}

// NewConstantEvaluator constructs an evaluator over table, reporting
// diagnostics through ctx.
func NewConstantEvaluator(ctx *AnalysisContext, table *ConstantTable) *ConstantEvaluator {
	indices := make(map[ident.Identifier]uint, len(table.order))
	for i, name := range table.order {
		indices[name] = uint(i)
	}

	return &ConstantEvaluator{
		ctx:      ctx,
		table:    table,
		indices:  indices,
		visiting: bitset.New(uint(len(table.order))),
		resolved: make(map[ident.Identifier]value.Value),
		poisoned: make(map[ident.Identifier]bool),
	}
}

// EvalConstant resolves the constant bound to name, memoizing the result.
// The second return value is false if the constant is undefined or its
// evaluation is or was poisoned by a cycle.
func (e *ConstantEvaluator) EvalConstant(name ident.Identifier) (value.Value, bool) {
	if v, ok := e.resolved[name]; ok {
		return v, true
	}

	if e.poisoned[name] {
		return value.Value{}, false
	}

	cst := e.table.Lookup(name)
	if cst == nil {
		return value.Value{}, false
	}

	idx, hasIdx := e.indices[name]
	if hasIdx && e.visiting.Test(idx) {
		e.ctx.Errorf(diag.ConstantCycle, cst.Span(), "constant `"+name.String()+"` is part of a cyclic definition")
		e.poisoned[name] = true

		return value.Value{}, false
	}

	if hasIdx {
		e.visiting.Set(idx)
		defer e.visiting.Clear(idx)
	}

	v, ok := e.Eval(cst.Expr)
	if !ok {
		e.poisoned[name] = true
		return value.Value{}, false
	}

	e.resolved[name] = v

	return v, true
}

// Eval evaluates a single expression tree node to a concrete value (spec
// §4.3 "Evaluation is a recursive fold"). The second return value is false
// once a sub-expression has already reported its own diagnostic; callers
// must not emit a second diagnostic for the same failure.
func (e *ConstantEvaluator) Eval(node expr.Expr) (value.Value, bool) {
	switch n := node.(type) {
	case *expr.Literal:
		return n.Value, true
	case *expr.WordLiteral:
		return value.OfWord(n.Value), true
	case *expr.Reference:
		v, ok := e.EvalConstant(n.Name)
		if !ok && !e.poisoned[n.Name] {
			e.ctx.Errorf(diag.UndefinedConstant, n.SpanValue, "undefined constant `"+n.Name.String()+"`")
		}

		return v, ok
	case *expr.Binary:
		return e.evalBinary(n)
	case *expr.WordComposition:
		return e.evalWordComposition(n)
	case *expr.HashOfValue:
		return e.evalHashOfValue(n)
	default:
		return value.Value{}, false
	}
}

func (e *ConstantEvaluator) evalBinary(n *expr.Binary) (value.Value, bool) {
	left, lok := e.Eval(n.Left)
	right, rok := e.Eval(n.Right)

	if !lok || !rok {
		return value.Value{}, false
	}

	if n.Operator.IsBitwise() {
		if left.Kind != value.Integer || right.Kind != value.Integer {
			e.ctx.Errorf(diag.ImmediateTypeMismatch, n.SpanValue, "bitwise operator requires Integer operands")
			return value.Value{}, false
		}

		return e.evalBitwise(n, left.Integer, right.Integer)
	}

	if left.Kind != right.Kind || (left.Kind != value.Felt && left.Kind != value.Integer) {
		e.ctx.Errorf(diag.ImmediateTypeMismatch, n.SpanValue, "arithmetic operator requires matching Felt or Integer operands")
		return value.Value{}, false
	}

	if left.Kind == value.Integer {
		return e.evalArithInteger(n, left.Integer, right.Integer)
	}

	return e.evalArithFelt(n, left.Felt, right.Felt)
}

func (e *ConstantEvaluator) evalBitwise(n *expr.Binary, l, r uint64) (value.Value, bool) {
	switch n.Operator {
	case expr.And:
		return value.OfInteger(l & r), true
	case expr.Or:
		return value.OfInteger(l | r), true
	case expr.Xor:
		return value.OfInteger(l ^ r), true
	case expr.Shl:
		return value.OfInteger(l << (r & 63)), true
	case expr.Shr:
		return value.OfInteger(l >> (r & 63)), true
	default:
		return value.Value{}, false
	}
}

func (e *ConstantEvaluator) evalArithInteger(n *expr.Binary, l, r uint64) (value.Value, bool) {
	switch n.Operator {
	case expr.Add:
		return value.OfInteger(l + r), true
	case expr.Sub:
		return value.OfInteger(l - r), true
	case expr.Mul:
		return value.OfInteger(l * r), true
	case expr.Div:
		if r == 0 {
			e.ctx.Errorf(diag.ImmediateTypeMismatch, n.SpanValue, "division by zero in constant expression")
			return value.Value{}, false
		}

		return value.OfInteger(l / r), true
	case expr.Mod:
		if r == 0 {
			e.ctx.Errorf(diag.ImmediateTypeMismatch, n.SpanValue, "modulo by zero in constant expression")
			return value.Value{}, false
		}

		return value.OfInteger(l % r), true
	default:
		return value.Value{}, false
	}
}

func (e *ConstantEvaluator) evalArithFelt(n *expr.Binary, l, r felt.Felt) (value.Value, bool) {
	switch n.Operator {
	case expr.Add:
		return value.OfFelt(l.Add(r)), true
	case expr.Sub:
		return value.OfFelt(l.Sub(r)), true
	case expr.Mul:
		return value.OfFelt(l.Mul(r)), true
	case expr.Div:
		if r.IsZero() {
			e.ctx.Errorf(diag.ImmediateTypeMismatch, n.SpanValue, "division by zero in constant expression")
			return value.Value{}, false
		}

		return value.OfFelt(l.Mul(r.Inverse())), true
	case expr.Mod:
		e.ctx.Errorf(diag.ImmediateTypeMismatch, n.SpanValue, "modulo is not defined over field elements")
		return value.Value{}, false
	default:
		return value.Value{}, false
	}
}

func (e *ConstantEvaluator) evalWordComposition(n *expr.WordComposition) (value.Value, bool) {
	var w felt.Word

	ok := true

	for i, sub := range n.Elements {
		v, subOk := e.Eval(sub)
		if !subOk {
			ok = false
			continue
		}

		if v.Kind != value.Felt {
			e.ctx.Errorf(diag.ImmediateTypeMismatch, sub.Span(), "word composition element must be a felt")
			ok = false

			continue
		}

		w[i] = v.Felt
	}

	if !ok {
		return value.Value{}, false
	}

	return value.OfWord(w), true
}

func (e *ConstantEvaluator) evalHashOfValue(n *expr.HashOfValue) (value.Value, bool) {
	elems := make([]felt.Felt, 0, len(n.Payload))

	for _, sub := range n.Payload {
		v, ok := e.Eval(sub)
		if !ok {
			return value.Value{}, false
		}

		if v.Kind != value.Felt {
			e.ctx.Errorf(diag.ImmediateTypeMismatch, sub.Span(), "hash-of-value payload element must be a felt")
			return value.Value{}, false
		}

		elems = append(elems, v.Felt)
	}

	return value.OfWord(rpo.HashElements(elems)), true
}
