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

// Package felt implements the 64-bit prime field the target VM operates
// over (p = 2^64 - 2^32 + 1, the "Goldilocks" field), plus the Word type (4
// field elements) used for hashes and MAST roots.
//
// None of the curves available via github.com/consensys/gnark-crypto use
// this modulus (its scalar fields are all much larger, e.g. BLS12-377's
// ~253-bit Fr), so Felt cannot be built on gnark-crypto's fr.Element the way
// pkg/util/field wraps per-curve elements. Felt mirrors the *shape* of that
// package's Element[Operand] contract (Add/Sub/Mul/Cmp/IsZero/Text) instead,
// so callers already familiar with pkg/util/field will recognise the API.
package felt

import "math/big"

// Modulus is the field's prime modulus, 2^64 - 2^32 + 1.
const Modulus uint64 = 18446744069414584321

// Felt is an element of the prime field modulo Modulus. The zero value is
// the field element 0.
type Felt uint64

// New reduces v modulo the field and returns the corresponding element.
func New(v uint64) Felt {
	return Felt(v % Modulus)
}

// FromInt64 reduces a signed integer modulo the field. Negative values wrap
// around, matching the two's-complement-free modular arithmetic used
// throughout the constant evaluator.
func FromInt64(v int64) Felt {
	if v >= 0 {
		return New(uint64(v))
	}

	var (
		m big.Int
		r big.Int
	)

	m.SetUint64(Modulus)
	r.SetInt64(v)
	r.Mod(&r, &m)

	return Felt(r.Uint64())
}

// Zero is the additive identity.
func Zero() Felt { return Felt(0) }

// One is the multiplicative identity.
func One() Felt { return Felt(1) }

// IsZero reports whether this element is the additive identity.
func (f Felt) IsZero() bool {
	return f == 0
}

// Uint64 returns the canonical (reduced) representative of this element.
func (f Felt) Uint64() uint64 {
	return uint64(f)
}

// Add computes f+g modulo the field.
func (f Felt) Add(g Felt) Felt {
	return Felt(reduceBig(new(big.Int).Add(f.big(), g.big())))
}

// Sub computes f-g modulo the field.
func (f Felt) Sub(g Felt) Felt {
	return Felt(reduceBig(new(big.Int).Sub(f.big(), g.big())))
}

// Mul computes f*g modulo the field.
func (f Felt) Mul(g Felt) Felt {
	return Felt(reduceBig(new(big.Int).Mul(f.big(), g.big())))
}

// Neg computes -f modulo the field.
func (f Felt) Neg() Felt {
	return Zero().Sub(f)
}

// Inverse computes f⁻¹, or 0 if f is zero.
func (f Felt) Inverse() Felt {
	if f.IsZero() {
		return Zero()
	}

	var (
		m = new(big.Int).SetUint64(Modulus)
		r = new(big.Int).ModInverse(f.big(), m)
	)

	return Felt(r.Uint64())
}

// Pow computes f^e modulo the field.
func (f Felt) Pow(e uint64) Felt {
	var (
		m = new(big.Int).SetUint64(Modulus)
		x = new(big.Int).SetUint64(uint64(f))
		n = new(big.Int).SetUint64(e)
	)

	return Felt(new(big.Int).Exp(x, n, m).Uint64())
}

// Cmp returns 1 if f > g, 0 if f == g, and -1 if f < g, comparing canonical
// representatives.
func (f Felt) Cmp(g Felt) int {
	switch {
	case f < g:
		return -1
	case f > g:
		return 1
	default:
		return 0
	}
}

// Text returns the numerical value of f in the given base.
func (f Felt) Text(base int) string {
	return f.big().Text(base)
}

func (f Felt) big() *big.Int {
	return new(big.Int).SetUint64(uint64(f))
}

func reduceBig(v *big.Int) uint64 {
	m := new(big.Int).SetUint64(Modulus)
	v.Mod(v, m)

	if v.Sign() < 0 {
		v.Add(v, m)
	}

	return v.Uint64()
}
