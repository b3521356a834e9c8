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

import "fmt"

// Word is four field elements treated as a single atomic value: the natural
// output of the hash used for advice-map keys and MAST roots.
type Word [4]Felt

// ZeroWord is the all-zero word.
func ZeroWord() Word {
	return Word{}
}

// NewWord constructs a word from four raw uint64 values, reducing each
// modulo the field.
func NewWord(a, b, c, d uint64) Word {
	return Word{New(a), New(b), New(c), New(d)}
}

// Equal reports whether two words are identical.
func (w Word) Equal(o Word) bool {
	return w == o
}

// String renders the word as four hex-encoded limbs.
func (w Word) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", w[0].Text(16), w[1].Text(16), w[2].Text(16), w[3].Text(16))
}
