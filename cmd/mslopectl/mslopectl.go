// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

// A utility to exercise the multislope acquisition core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mslopectl",
	Short: "mslopectl is a utility to exercise the multislope acquisition core",
	Long:  "mslopectl drives a simulated multislope acquisition and converts readings to the Q0.32 wire format",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "mslopectl %s: %s\n", cmd.Name(), err)
}
