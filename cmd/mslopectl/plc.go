// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uliano/multislope"
)

func init() {
	plcCmd.Flags().StringVarP(&plcOpts.Grid, "grid", "g", "50", "mains grid frequency, 50 or 60")
	rootCmd.AddCommand(plcCmd)
}

var (
	plcCmd = &cobra.Command{
		Use:                   "plc [flags]",
		Short:                 "List the supported power-line-cycle windows",
		Long:                  `List the supported power-line-cycle multiples and their window geometry at the given grid frequency.`,
		Args:                  cobra.NoArgs,
		RunE:                  plc,
		DisableFlagsInUseLine: true,
	}
	plcOpts = struct {
		Grid string
	}{}
)

// the instrument's front-panel set, in display order
var plcMultiples = []uint32{
	2, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000,
}

func plc(cmd *cobra.Command, args []string) error {
	grid, err := parseGrid(plcOpts.Grid)
	if err != nil {
		return err
	}
	fmt.Println("PLC      events  divisor  sub-cycles")
	for _, m := range plcMultiples {
		length, divisor, err := multislope.PLCWindow(m, grid)
		if err != nil {
			continue
		}
		fmt.Printf("%-8s %-7d %-8d %d\n",
			fmt.Sprintf("%g", float64(m)/100), length, divisor, length/divisor)
	}
	return nil
}
