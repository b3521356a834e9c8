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

// Package diag defines the diagnostic taxonomy produced by semantic
// analysis. Rendering diagnostics into human-readable text with
// source-span highlighting is left to callers; this package only models
// the structured data.
package diag

// Severity classifies how serious a Diagnostic is.
type Severity uint8

const (
	// Warning indicates a diagnostic that does not by itself cause analysis
	// to fail, unless warnings-as-errors has been requested.
	Warning Severity = iota
	// Error indicates a diagnostic that causes analysis to fail.
	Error
)

// String renders the severity for debugging/logging purposes.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}
