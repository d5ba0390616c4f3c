// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/uliano/multislope"
)

func init() {
	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:                   "pack <counts> <residual> <window> <denominator>",
	Short:                 "Pack a raw reading into the Q0.32 wire format",
	Long:                  `Convert a raw (counts, residual) reading for the given window length and calibration denominator into the Q0.32 wire word.`,
	Args:                  cobra.ExactArgs(4),
	RunE:                  pack,
	DisableFlagsInUseLine: true,
}

func pack(cmd *cobra.Command, args []string) error {
	i, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("can't parse counts '%s'", args[0])
	}
	k, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		return fmt.Errorf("can't parse residual '%s'", args[1])
	}
	j, err := strconv.ParseUint(args[2], 0, 32)
	if err != nil {
		return fmt.Errorf("can't parse window '%s'", args[2])
	}
	d, err := strconv.ParseUint(args[3], 0, 16)
	if err != nil {
		return fmt.Errorf("can't parse denominator '%s'", args[3])
	}
	q := multislope.PackQ32(uint32(i), uint16(k), uint32(j), uint16(d))
	fmt.Printf("0x%08x %.9f\n", q, float64(q)/(1<<32))
	return nil
}
