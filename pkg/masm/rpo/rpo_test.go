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
package rpo

import (
	"testing"

	"github.com/consensys/go-corset/pkg/masm/felt"
)

func TestHashElementsDeterministic(t *testing.T) {
	values := []felt.Felt{felt.New(1), felt.New(2), felt.New(3), felt.New(4)}

	a := HashElements(values)
	b := HashElements(values)

	if !a.Equal(b) {
		t.Fatalf("expected deterministic hash, got %s and %s", a, b)
	}
}

func TestHashElementsDistinguishesLength(t *testing.T) {
	short := HashElements([]felt.Felt{felt.New(1), felt.New(2)})
	long := HashElements([]felt.Felt{felt.New(1), felt.New(2), felt.New(0)})

	if short.Equal(long) {
		t.Fatal("expected distinct hashes for distinct-length inputs")
	}
}

func TestHashElementsSensitiveToValues(t *testing.T) {
	a := HashElements([]felt.Felt{felt.New(1), felt.New(2), felt.New(3), felt.New(4)})
	b := HashElements([]felt.Felt{felt.New(1), felt.New(2), felt.New(3), felt.New(5)})

	if a.Equal(b) {
		t.Fatal("expected distinct hashes for distinct inputs")
	}
}

func TestHashElementsEmpty(t *testing.T) {
	a := HashElements(nil)
	b := HashElements([]felt.Felt{})

	if !a.Equal(b) {
		t.Fatal("expected nil and empty slice to hash identically")
	}
}
