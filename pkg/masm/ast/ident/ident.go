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

// Package ident models the two identifier shapes the dialect uses
// (procedure names and namespace/library paths), kept as a leaf package so
// both pkg/masm/ast and pkg/masm/ast/instr can depend on it without a
// cycle, the way pkg/zkc/compiler/ast/variable and ast/data are leaf
// packages shared by ast/decl, ast/expr and ast/stmt.
package ident

import "strings"

// MaxIdentifierLength bounds the length of a single (dot-separated simple)
// procedure identifier component. The spec requires "max length bounded"
// without naming a constant; 100 mirrors the convention used by this class
// of stack-assembly dialect for readable mnemonic names.
const MaxIdentifierLength = 100

// Identifier is a case-sensitive name: either a simple procedure-name
// component or a namespace component of a LibraryPath. Go string equality
// is already structural and case-sensitive, so no separate interning pool
// is needed the way a Rust Symbol table would be (an explicit trade-off,
// recorded in DESIGN.md).
type Identifier string

// Main is the reserved name given to an executable module's synthesized
// entrypoint procedure.
const Main Identifier = "main"

// IsMain reports whether this identifier is the reserved entrypoint name.
func (id Identifier) IsMain() bool {
	return id == Main
}

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return string(id)
}

// ValidSimpleName reports whether s is well-formed as a single (non
// dot-separated) identifier component: non-empty, within
// MaxIdentifierLength, and restricted to ASCII letters, digits, and
// underscore, starting with a letter or underscore. The parser is assumed
// to enforce this already; this helper exists for defensive use in tests
// and for any caller that constructs a Module programmatically rather than
// via a parser.
func ValidSimpleName(s string) bool {
	if len(s) == 0 || len(s) > MaxIdentifierLength {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

// ValidProcedureName reports whether s is a well-formed (possibly
// dot-separated) procedure identifier.
func ValidProcedureName(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, part := range strings.Split(s, ".") {
		if !ValidSimpleName(part) {
			return false
		}
	}

	return true
}

// LibraryPath is an ordered sequence of namespace identifiers identifying a
// module, e.g. std::math::u64. Equality is structural (component-wise), not
// based on string formatting.
type LibraryPath struct {
	Components []Identifier
}

// NewLibraryPath constructs a path from its components.
func NewLibraryPath(components ...Identifier) LibraryPath {
	cs := make([]Identifier, len(components))
	copy(cs, components)

	return LibraryPath{Components: cs}
}

// ParseLibraryPath splits a "::"-separated path string into a LibraryPath.
// Provided as a convenience for tests and for callers assembling paths
// outside of the parser.
func ParseLibraryPath(s string) LibraryPath {
	parts := strings.Split(s, "::")
	ids := make([]Identifier, len(parts))

	for i, p := range parts {
		ids[i] = Identifier(p)
	}

	return LibraryPath{Components: ids}
}

// Equal reports whether two library paths refer to the same module,
// comparing components structurally rather than via any derived string
// representation.
func (p LibraryPath) Equal(o LibraryPath) bool {
	if len(p.Components) != len(o.Components) {
		return false
	}

	for i := range p.Components {
		if p.Components[i] != o.Components[i] {
			return false
		}
	}

	return true
}

// Namespace returns the last component of the path, which is the default
// local binding name for an import that declares no explicit alias.
func (p LibraryPath) Namespace() Identifier {
	if len(p.Components) == 0 {
		return ""
	}

	return p.Components[len(p.Components)-1]
}

// String renders the path using the dialect's "::" separator.
func (p LibraryPath) String() string {
	parts := make([]string, len(p.Components))
	for i, c := range p.Components {
		parts[i] = string(c)
	}

	return strings.Join(parts, "::")
}
