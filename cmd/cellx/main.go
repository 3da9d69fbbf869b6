/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package main provides the cellx CLI: it inspects and exercises the
// process console.
//
// Usage:
//
//	cellx probe [--format text|yaml] [--metrics]
//	cellx cat [--input-encoding NAME] [--output-encoding NAME]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// flags shared by every subcommand.
type rootFlags struct {
	verbose    bool
	configPath string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var rf rootFlags
	root := &cobra.Command{
		Use:   "cellx",
		Short: "Inspect and exercise the process console",
		Long: `cellx opens the process console the way a library user would: streams,
encodings and redirection flags are built lazily on first use.

Commands:
  probe  report encodings, redirection and console cell state
  cat    copy standard input to standard output, transcoding`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&rf.verbose, "verbose", "V", false, "Log cell lifecycle events to stderr")
	root.PersistentFlags().StringVarP(&rf.configPath, "config", "c", "", "YAML console configuration file")

	root.AddCommand(newProbeCmd(&rf), newCatCmd(&rf))
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cellx: %v\n", err)
		os.Exit(1)
	}
}
