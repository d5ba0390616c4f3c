// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package evsys

// SimTicker is a monotonic millisecond counter advanced by the fabric clock.
//
// With the reference clock running at perMilli events per millisecond it
// tracks elapsed time exactly, which gives simulated acquisitions strictly
// ordered timestamps. Wraps around after ~49 days of simulated time.
type SimTicker struct {
	events   uint64
	perMilli uint64
}

// NewSimTicker returns a ticker advancing one millisecond every perMilli
// clock events.
func NewSimTicker(perMilli uint64) *SimTicker {
	if perMilli == 0 {
		perMilli = 1
	}
	return &SimTicker{perMilli: perMilli}
}

// Millis returns elapsed simulated milliseconds.
func (t *SimTicker) Millis() uint32 {
	return uint32(t.events / t.perMilli)
}

// clock delivers one clock event. Called by the fabric under the IRQ lock.
func (t *SimTicker) clock() { t.events++ }
