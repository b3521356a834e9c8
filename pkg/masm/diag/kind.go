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
package diag

// Kind enumerates the complete diagnostic taxonomy semantic analysis can
// produce.
type Kind uint8

const (
	// UnusedDocstring fires when a Doc form is not followed by a
	// documentable item.
	UnusedDocstring Kind = iota
	// ImportDocstring fires when a Doc form immediately precedes an Import.
	ImportDocstring
	// UnusedImport fires when an import's usage count is zero at finalize.
	UnusedImport
	// ImportConflict fires on a duplicate import alias.
	ImportConflict
	// SelfImport fires when a module imports its own path.
	SelfImport
	// SymbolConflict fires on a duplicate procedure export name.
	SymbolConflict
	// ConstantConflict fires on a duplicate constant name.
	ConstantConflict
	// UndefinedConstant fires when a named-immediate or expression
	// references an unknown constant.
	UndefinedConstant
	// ConstantCycle fires when a constant's evaluation transitively
	// depends on itself.
	ConstantCycle
	// ImmediateTypeMismatch fires when a value's kind does not match an
	// instruction's expected immediate kind.
	ImmediateTypeMismatch
	// UnexpectedEntrypoint fires on a `begin` block in a non-Executable
	// module.
	UnexpectedEntrypoint
	// MissingEntrypoint fires when an Executable module lacks `main`.
	MissingEntrypoint
	// UnexpectedExport fires on an exported non-main procedure in an
	// Executable module.
	UnexpectedExport
	// ReexportFromKernel fires on an alias declaration in a Kernel module.
	ReexportFromKernel
	// KernelCall fires on a `call` instruction inside a Kernel procedure.
	KernelCall
	// KernelSyscall fires on a `syscall` instruction inside a Kernel
	// procedure.
	KernelSyscall
	// MissingImport fires when a call is qualified by an unknown alias.
	MissingImport
	// UndefinedCallee fires on a local call to an unknown name.
	UndefinedCallee
	// AdvMapKeyAlreadyDefined fires on a duplicate advice-map key.
	AdvMapKeyAlreadyDefined
)

// names maps each Kind to its identifier.
var names = map[Kind]string{
	UnusedDocstring:         "UnusedDocstring",
	ImportDocstring:         "ImportDocstring",
	UnusedImport:            "UnusedImport",
	ImportConflict:          "ImportConflict",
	SelfImport:              "SelfImport",
	SymbolConflict:          "SymbolConflict",
	ConstantConflict:        "ConstantConflict",
	UndefinedConstant:       "UndefinedConstant",
	ConstantCycle:           "ConstantCycle",
	ImmediateTypeMismatch:   "ImmediateTypeMismatch",
	UnexpectedEntrypoint:    "UnexpectedEntrypoint",
	MissingEntrypoint:       "MissingEntrypoint",
	UnexpectedExport:        "UnexpectedExport",
	ReexportFromKernel:      "ReexportFromKernel",
	KernelCall:              "KernelCall",
	KernelSyscall:           "KernelSyscall",
	MissingImport:           "MissingImport",
	UndefinedCallee:         "UndefinedCallee",
	AdvMapKeyAlreadyDefined: "AdvMapKeyAlreadyDefined",
}

// defaultSeverity gives each Kind its severity absent warnings-as-errors
// promotion.
var defaultSeverity = map[Kind]Severity{
	UnusedDocstring:         Warning,
	ImportDocstring:         Warning,
	UnusedImport:            Warning,
	ImportConflict:          Error,
	SelfImport:              Error,
	SymbolConflict:          Error,
	ConstantConflict:        Error,
	UndefinedConstant:       Error,
	ConstantCycle:           Error,
	ImmediateTypeMismatch:   Error,
	UnexpectedEntrypoint:    Error,
	MissingEntrypoint:       Error,
	UnexpectedExport:        Error,
	ReexportFromKernel:      Error,
	KernelCall:              Error,
	KernelSyscall:           Error,
	MissingImport:           Error,
	UndefinedCallee:         Error,
	AdvMapKeyAlreadyDefined: Error,
}

// String renders the kind's identifier.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}

	return "Unknown"
}

// DefaultSeverity returns the severity this kind carries absent
// warnings-as-errors promotion.
func (k Kind) DefaultSeverity() Severity {
	return defaultSeverity[k]
}
