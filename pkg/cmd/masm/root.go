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

// Package masm is the thin CLI shell around pkg/masm/sema.Analyze, in the
// shape of pkg/cmd/zkc's root command (verbose flag, version reporting). It
// intentionally embeds no lexer/parser of its own — module sources are
// read as forms elsewhere — so the only subcommand it exposes, "check",
// takes a pre-built form list and exists to give the ambient logging/config
// stack (logrus, cobra, x/term) a concrete home around the core.
package masm

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via
// "go install" (mirrors pkg/cmd/zkc/root.go's Version var).
var Version string

var rootCmd = &cobra.Command{
	Use:   "masm",
	Short: "Semantic analyzer for the stack-assembly module dialect.",
	Long:  "Validates parsed module forms and reports the resulting diagnostics.",
	Run: func(cmd *cobra.Command, _ []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("masm ")

			switch {
			case Version != "":
				fmt.Printf("%s", Version)
			default:
				if info, ok := debug.ReadBuildInfo(); ok {
					fmt.Printf("%s", info.Main.Version)
				} else {
					fmt.Printf("(unknown version)")
				}
			}

			fmt.Println()
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main(); only needs to happen once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("version", false, "print version information and exit")

	cobra.OnInitialize(func() {
		if GetFlag(rootCmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	})

	rootCmd.AddCommand(checkCmd)
}

// GetFlag reads a boolean flag's value, panicking if it was never
// registered (a programming error, not user input), matching
// pkg/cmd/util.GetFlag's contract.
func GetFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(err)
	}

	return v
}
