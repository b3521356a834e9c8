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
package felt

import (
	"testing"

	"github.com/consensys/go-corset/pkg/util/assert"
)

func TestAddWraps(t *testing.T) {
	f := New(Modulus - 1)
	g := New(2)
	// (p-1) + 2 = p+1 = 1 (mod p)
	assert.Equal(t, uint64(1), f.Add(g).Uint64())
}

func TestSubWraps(t *testing.T) {
	f := Zero()
	g := One()
	// 0 - 1 = p-1 (mod p)
	assert.Equal(t, Modulus-1, f.Sub(g).Uint64())
}

func TestMulIdentity(t *testing.T) {
	f := New(12345)
	assert.Equal(t, f.Uint64(), f.Mul(One()).Uint64())
}

func TestInverse(t *testing.T) {
	f := New(7)
	inv := f.Inverse()
	assert.Equal(t, uint64(1), f.Mul(inv).Uint64())
}

func TestInverseOfZero(t *testing.T) {
	assert.Equal(t, uint64(0), Zero().Inverse().Uint64())
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, New(1).Cmp(New(2)))
	assert.Equal(t, 1, New(2).Cmp(New(1)))
	assert.Equal(t, 0, New(2).Cmp(New(2)))
}

func TestWordEqual(t *testing.T) {
	a := NewWord(1, 2, 3, 4)
	b := NewWord(1, 2, 3, 4)
	c := NewWord(1, 2, 3, 5)

	if !a.Equal(b) {
		t.Fatal("expected equal words")
	}

	if a.Equal(c) {
		t.Fatal("expected distinct words")
	}
}
