// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

import "github.com/uliano/multislope/evsys"

// Option defines the interface required to provide an Acquirer option.
type Option interface {
	applyOption(*acqOptions)
}

type acqOptions struct {
	fabric  *evsys.Fabric
	tb      Timebase
	bufCap  int
	denom   uint16
	blanker uint16
}

func defaultOptions() acqOptions {
	return acqOptions{
		bufCap:  1024,
		denom:   3000,
		blanker: evsys.DefaultBlankerCycles,
	}
}

// FabricOption provides the event fabric to run on.
type FabricOption struct {
	f *evsys.Fabric
}

// WithFabric provides the event fabric the acquirer runs on. Without it a
// fresh simulated fabric is constructed.
func WithFabric(f *evsys.Fabric) FabricOption {
	return FabricOption{f}
}

func (o FabricOption) applyOption(a *acqOptions) {
	a.fabric = o.f
}

// TimebaseOption provides the measurement timestamp source.
type TimebaseOption struct {
	tb Timebase
}

// WithTimebase provides the monotonic millisecond source used to stamp
// measurements. Defaults to the fabric's simulated ticker.
func WithTimebase(tb Timebase) TimebaseOption {
	return TimebaseOption{tb}
}

func (o TimebaseOption) applyOption(a *acqOptions) {
	a.tb = o.tb
}

// BufferCapacityOption sets the measurement buffer capacity.
type BufferCapacityOption int

// WithBufferCapacity sets the capacity of the measurement buffer. When the
// buffer is full the oldest measurement is discarded to make room.
func WithBufferCapacity(n int) BufferCapacityOption {
	return BufferCapacityOption(n)
}

func (o BufferCapacityOption) applyOption(a *acqOptions) {
	a.bufCap = int(o)
}

// DenominatorOption sets the calibrated fractional denominator.
type DenominatorOption uint16

// WithDenominator sets the calibrated fractional denominator D used by Pack.
// Must lie strictly between 2048 and 4095.
func WithDenominator(d uint16) DenominatorOption {
	return DenominatorOption(d)
}

func (o DenominatorOption) applyOption(a *acqOptions) {
	a.denom = uint16(o)
}

// BlankerCyclesOption sets the settling blanker interval.
type BlankerCyclesOption uint16

// WithBlankerCycles sets the number of reference-clock events the one-shot
// settling blanker gates the analog path for after each boundary.
func WithBlankerCycles(n uint16) BlankerCyclesOption {
	return BlankerCyclesOption(n)
}

func (o BlankerCyclesOption) applyOption(a *acqOptions) {
	a.blanker = uint16(o)
}
