// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package evsys

// OneShot is a single-shot gate timer.
//
// Trigger asserts the gate output, which deasserts by itself after the
// configured number of clock events. It is used to blank the analog path for
// the settling time of the first sub-cycle after a window boundary.
// Retriggering while active restarts the interval; the timer re-arms
// automatically once it expires, so it fires once per trigger, never
// periodically.
type OneShot struct {
	cycles    uint16
	remaining uint16
	active    bool
}

// NewOneShot returns a one-shot asserting its gate for cycles clock events
// per trigger.
func NewOneShot(cycles uint16) *OneShot {
	return &OneShot{cycles: cycles}
}

// SetCycles sets the gate interval in clock events.
func (o *OneShot) SetCycles(cycles uint16) { o.cycles = cycles }

// Cycles returns the gate interval in clock events.
func (o *OneShot) Cycles() uint16 { return o.cycles }

// Trigger asserts the gate output.
func (o *OneShot) Trigger() {
	if o.cycles == 0 {
		return
	}
	o.active = true
	o.remaining = o.cycles
}

// Active reports whether the gate output is asserted.
func (o *OneShot) Active() bool { return o.active }

// clock delivers one clock event. Called by the fabric under the IRQ lock.
func (o *OneShot) clock() {
	if !o.active {
		return
	}
	o.remaining--
	if o.remaining == 0 {
		o.active = false
	}
}
