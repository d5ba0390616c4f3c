// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

// A monitor streaming measurements from a simulated multislope acquisition.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/uliano/multislope"
	"github.com/uliano/multislope/evsys"
	"github.com/warthog618/config"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/keys"
	"github.com/warthog618/config/pflag"
)

var version = "undefined"

func main() {
	shortFlags := map[byte]string{
		'h': "help",
		'v': "version",
		'n': "num-measurements",
		's': "silent",
		'p': "packed",
		'g': "grid",
	}
	defaults := dict.New(dict.WithMap(
		map[string]interface{}{
			"num-measurements": 0,
			"silent":           false,
			"packed":           false,
			"grid":             "50",
			"plc":              100,
			"pulse-period":     3,
			"denominator":      3000,
		}))
	flags := pflag.New(pflag.WithShortFlags(shortFlags),
		pflag.WithKeyReplacer(keys.NullReplacer()))
	cfg := config.New(flags, config.WithDefault(defaults))
	if v, err := cfg.Get("help"); err == nil && v.Bool() {
		printHelp()
		os.Exit(0)
	}
	if v, err := cfg.Get("version"); err == nil && v.Bool() {
		printVersion()
		os.Exit(0)
	}

	grid, err := parseGrid(cfg.MustGet("grid").String())
	if err != nil {
		die(err.Error())
	}
	f := evsys.NewFabric()
	acq, err := multislope.New(multislope.WithFabric(f),
		multislope.WithDenominator(uint16(cfg.MustGet("denominator").Int())))
	if err != nil {
		die(err.Error())
	}
	if err = acq.ConfigurePLC(uint32(cfg.MustGet("plc").Int()), grid); err != nil {
		die(err.Error())
	}
	if err = acq.StartTrigger(0); err != nil {
		die(err.Error())
	}

	mchan := make(chan multislope.Measurement)
	period := uint64(cfg.MustGet("pulse-period").Int())
	if period == 0 {
		period = 1
	}
	go acquire(f, acq, period, mchan)

	sigdone := make(chan os.Signal, 1)
	signal.Notify(sigdone, os.Interrupt, os.Kill)
	defer signal.Stop(sigdone)
	count := int64(0)
	num := cfg.MustGet("num-measurements").Int()
	silent := cfg.MustGet("silent").Bool()
	packed := cfg.MustGet("packed").Bool()
	for {
		select {
		case m := <-mchan:
			if !silent {
				if packed {
					fmt.Printf("measurement: %8d ms  0x%08x\n",
						m.Timestamp, acq.Pack(m))
				} else {
					fmt.Printf("measurement: %8d ms  counts %6d  value %6d\n",
						m.Timestamp, m.Counts, m.Value)
				}
			}
			count++
			if num > 0 && count >= num {
				return
			}
		case <-sigdone:
			return
		}
	}
}

// acquire drives the simulated fabric at roughly real time, one millisecond
// of reference events per millisecond of wall clock.
func acquire(f *evsys.Fabric, acq *multislope.Acquirer, period uint64, mchan chan<- multislope.Measurement) {
	residue := int32(1000)
	f.Sampler.SetSource(func() int32 {
		residue += 40
		return residue
	})
	step := uint64(0)
	for {
		for i := 0; i < evsys.DefaultEventsPerMilli; i++ {
			step++
			f.Step(step%period == 0)
			if acq.Service() {
				m, _ := acq.ReadLast()
				mchan <- m
			}
		}
		time.Sleep(time.Millisecond)
	}
}

func parseGrid(s string) (multislope.GridFrequency, error) {
	switch s {
	case "50":
		return multislope.Grid50Hz, nil
	case "60":
		return multislope.Grid60Hz, nil
	}
	return 0, fmt.Errorf("unsupported grid frequency '%s'", s)
}

func die(reason string) {
	fmt.Fprintln(os.Stderr, "mslopemon: "+reason)
	os.Exit(1)
}

func printHelp() {
	fmt.Printf("Usage: %s [OPTIONS]\n", os.Args[0])
	fmt.Println("Stream measurements from a simulated multislope acquisition.")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -h, --help:\t\t\tdisplay this message and exit")
	fmt.Println("  -v, --version:\t\tdisplay the version and exit")
	fmt.Println("  -n, --num-measurements=NUM:\texit after NUM measurements")
	fmt.Println("  -s, --silent:\t\t\tdon't print measurement info")
	fmt.Println("  -p, --packed:\t\t\tprint the Q0.32 wire word instead of raw fields")
	fmt.Println("  -g, --grid=FREQ:\t\tmains grid frequency, 50 or 60")
	fmt.Println("  --plc=PLC100:\t\t\twindow length as a PLC multiple scaled by 100")
	fmt.Println("  --pulse-period=N:\t\tone gated pulse every N reference events")
	fmt.Println("  --denominator=D:\t\tcalibration denominator")
}

func printVersion() {
	fmt.Printf("%s (multislope) %s\n", os.Args[0], version)
}
