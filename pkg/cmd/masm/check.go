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
package masm

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/consensys/go-corset/pkg/masm/ast"
	"github.com/consensys/go-corset/pkg/masm/ast/expr"
	"github.com/consensys/go-corset/pkg/masm/ast/ident"
	"github.com/consensys/go-corset/pkg/masm/ast/value"
	"github.com/consensys/go-corset/pkg/masm/diag"
	"github.com/consensys/go-corset/pkg/masm/felt"
	"github.com/consensys/go-corset/pkg/masm/sema"
	"github.com/consensys/go-corset/pkg/masm/source"
)

// moduleDoc is the JSON shape accepted by "masm check". It models only the
// module-level constant and import forms: a real frontend feeds sema.Analyze
// a parsed Form list directly, so this decoder exists solely to let the
// command line exercise the analysis core end to end without a
// lexer/parser of its own.
type moduleDoc struct {
	Kind      string         `json:"kind"`
	Path      string         `json:"path"`
	Constants []constantSpec `json:"constants,omitempty"`
	Imports   []importSpec   `json:"imports,omitempty"`
}

type constantSpec struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type importSpec struct {
	Path  string `json:"path"`
	Alias string `json:"alias"`
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run semantic analysis over a JSON-encoded module skeleton and report diagnostics.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatalf("reading %s: %v", args[0], err)
		}

		var doc moduleDoc
		if err := json.Unmarshal(bytes, &doc); err != nil {
			log.Fatalf("decoding %s: %v", args[0], err)
		}

		kind, err := parseKind(doc.Kind)
		if err != nil {
			log.Fatal(err)
		}

		forms := doc.buildForms()

		src := source.NewFile(args[0], bytes)
		path := ident.ParseLibraryPath(doc.Path)

		_, diags, err := sema.Analyze(src, kind, path, forms, GetFlag(cmd, "werror"))

		printDiagnostics(diags)

		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().Bool("werror", false, "treat warnings as errors")
}

func parseKind(s string) (ast.ModuleKind, error) {
	switch s {
	case "", "library":
		return ast.Library, nil
	case "kernel":
		return ast.Kernel, nil
	case "executable":
		return ast.Executable, nil
	default:
		return 0, fmt.Errorf("unknown module kind %q", s)
	}
}

// buildForms lowers the JSON skeleton into the Form list sema.Analyze
// expects. Every synthesized span points at offset zero: this command
// never has real source positions to hand out, since it bypasses lexing
// entirely.
func (doc moduleDoc) buildForms() []ast.Form {
	var (
		forms []ast.Form
		zero  source.Span
	)

	for _, c := range doc.Constants {
		forms = append(forms, &ast.ConstantForm{
			Constant: &ast.Constant{
				SpanValue: zero,
				Name:      ident.Identifier(c.Name),
				Expr:      &expr.Literal{SpanValue: zero, Value: value.OfFelt(felt.FromInt64(c.Value))},
			},
		})
	}

	for _, i := range doc.Imports {
		forms = append(forms, &ast.ImportForm{
			Import: &ast.Import{
				SpanValue: zero,
				Path:      ident.ParseLibraryPath(i.Path),
				Alias:     ident.Identifier(i.Alias),
			},
		})
	}

	return forms
}

// printDiagnostics renders one line per diagnostic, colouring the summary
// count only when stdout is a real terminal; colour escapes in a
// redirected log file just add noise.
func printDiagnostics(diags diag.Diagnostics) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Error())
	}

	summary := fmt.Sprintf("%d diagnostic(s), %d error(s)", len(diags), len(diags.Errors()))

	if term.IsTerminal(int(os.Stdout.Fd())) {
		if len(diags.Errors()) > 0 {
			fmt.Printf("\033[31m%s\033[0m\n", summary)
		} else {
			fmt.Printf("\033[32m%s\033[0m\n", summary)
		}
	} else {
		fmt.Println(summary)
	}
}
