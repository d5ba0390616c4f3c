// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uliano/multislope"
	"github.com/uliano/multislope/evsys"
)

func init() {
	runCmd.Flags().Uint32VarP(&runOpts.Num, "num", "n", 10, "number of measurements to acquire")
	runCmd.Flags().Uint32Var(&runOpts.PLC, "plc", 100, "window length as a power-line-cycle multiple scaled by 100")
	runCmd.Flags().StringVarP(&runOpts.Grid, "grid", "g", "50", "mains grid frequency, 50 or 60")
	runCmd.Flags().Uint32VarP(&runOpts.Window, "window", "w", 0, "explicit window length in reference events, overrides --plc")
	runCmd.Flags().Uint32VarP(&runOpts.Divisor, "divisor", "d", 30, "sub-counter divisor for an explicit window")
	runCmd.Flags().UintVar(&runOpts.PulsePeriod, "pulse-period", 3, "simulate one gated pulse every n reference events")
	runCmd.Flags().Int32Var(&runOpts.Slope, "slope", 40, "simulated residue drift per conversion")
	rootCmd.AddCommand(runCmd)
}

var (
	runCmd = &cobra.Command{
		Use:                   "run [flags]",
		Short:                 "Run a simulated acquisition",
		Long:                  `Run a simulated multislope acquisition and print the measurements to standard output.`,
		Args:                  cobra.NoArgs,
		RunE:                  run,
		DisableFlagsInUseLine: true,
	}
	runOpts = struct {
		Num         uint32
		PLC         uint32
		Grid        string
		Window      uint32
		Divisor     uint32
		PulsePeriod uint
		Slope       int32
	}{}
)

// loadConfig reads the optional mslope config file providing the board
// calibration. Flags cover everything else.
func loadConfig() {
	viper.SetConfigName("mslope")
	viper.AddConfigPath("/etc")
	viper.AddConfigPath(".")
	viper.SetDefault("cal.denominator", 3000)
	viper.SetDefault("buffer.capacity", 1024)
	viper.ReadInConfig()
}

func parseGrid(s string) (multislope.GridFrequency, error) {
	switch strings.TrimSuffix(s, "Hz") {
	case "50":
		return multislope.Grid50Hz, nil
	case "60":
		return multislope.Grid60Hz, nil
	}
	return 0, fmt.Errorf("unsupported grid frequency '%s'", s)
}

func run(cmd *cobra.Command, args []string) error {
	if runOpts.Num == 0 {
		return fmt.Errorf("num must be at least 1")
	}
	loadConfig()
	f := evsys.NewFabric()
	acq, err := multislope.New(
		multislope.WithFabric(f),
		multislope.WithDenominator(uint16(viper.GetUint32("cal.denominator"))),
		multislope.WithBufferCapacity(viper.GetInt("buffer.capacity")),
	)
	if err != nil {
		return err
	}
	if runOpts.Window != 0 {
		err = acq.ConfigureWindow(runOpts.Window, runOpts.Divisor)
	} else {
		var grid multislope.GridFrequency
		grid, err = parseGrid(runOpts.Grid)
		if err == nil {
			err = acq.ConfigurePLC(runOpts.PLC, grid)
		}
	}
	if err != nil {
		return err
	}

	// synthetic integrator: the residue drifts by a fixed step per
	// conversion, so every reported value equals the configured slope
	residue := int32(1000)
	f.Sampler.SetSource(func() int32 {
		residue += runOpts.Slope
		return residue
	})

	if err = acq.StartTrigger(runOpts.Num); err != nil {
		return err
	}
	period := runOpts.PulsePeriod
	if period == 0 {
		period = 1
	}
	step := uint(0)
	for acq.Armed() {
		step++
		f.Step(step%period == 0)
		if acq.Service() {
			m, _ := acq.ReadLast()
			fmt.Printf("%d,%d,%d,0x%08x\n",
				m.Timestamp, m.Counts, m.Value, acq.Pack(m))
		}
	}
	o := acq.Overruns()
	if o.Sample+o.Boundary+o.Result > 0 {
		logErr(cmd, fmt.Errorf("overruns: sample=%d boundary=%d result=%d",
			o.Sample, o.Boundary, o.Result))
	}
	return nil
}
