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

// Package value models the result of evaluating a constant expression or a
// named immediate. Kept as a leaf package, alongside ident, so both
// pkg/masm/ast and pkg/masm/ast/instr can depend on it.
package value

import (
	"fmt"

	"github.com/consensys/go-corset/pkg/masm/felt"
)

// Kind classifies the three shapes a constant expression can evaluate to.
type Kind uint8

const (
	// Felt is a single field element.
	Felt Kind = iota
	// Word is four field elements.
	Word
	// Integer is a bounded non-negative integer, used for bitwise operators
	// and counts (e.g. repeat.N, locals counts).
	Integer
)

// MaxInteger bounds the Integer-kind value space at 2^32-1, matching the
// width of the count-like immediates (repeat counts, local counts) this
// value kind is used for in the dialect (see DESIGN.md for the
// corresponding Open Question resolution).
const MaxInteger = uint64(0xFFFFFFFF)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Felt:
		return "felt"
	case Word:
		return "word"
	case Integer:
		return "integer"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating a constant expression or a named
// immediate: exactly one of its Felt/Word/Integer fields is meaningful,
// selected by Kind.
type Value struct {
	Kind    Kind
	Felt    felt.Felt
	Word    felt.Word
	Integer uint64
}

// OfFelt constructs a Felt-kind value.
func OfFelt(f felt.Felt) Value {
	return Value{Kind: Felt, Felt: f}
}

// OfWord constructs a Word-kind value.
func OfWord(w felt.Word) Value {
	return Value{Kind: Word, Word: w}
}

// OfInteger constructs an Integer-kind value, clamped to MaxInteger. The
// evaluator is expected to have already range-checked the value; clamping
// here is a last-resort safety net, not a substitute for that check.
func OfInteger(v uint64) Value {
	if v > MaxInteger {
		v = MaxInteger
	}

	return Value{Kind: Integer, Integer: v}
}

// String renders the value for diagnostics/debugging.
func (v Value) String() string {
	switch v.Kind {
	case Felt:
		return v.Felt.Text(10)
	case Word:
		return v.Word.String()
	case Integer:
		return fmt.Sprintf("%d", v.Integer)
	default:
		return "<invalid>"
	}
}

// AsWord converts a Felt or Word value to the four-limb Word it implicitly
// represents, for contexts (like the advice-map's companion constant) that
// always bind a Word. Panics on an Integer value, which would indicate a
// bug in the caller rather than user input.
func (v Value) AsWord() felt.Word {
	switch v.Kind {
	case Word:
		return v.Word
	case Felt:
		return felt.Word{v.Felt, felt.Zero(), felt.Zero(), felt.Zero()}
	default:
		panic("value is not convertible to a word")
	}
}
