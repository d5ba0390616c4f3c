// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

import "github.com/uliano/multislope/evsys"

// NegativeCounter counts polarity-gated pulses during a window.
//
// The hardware low word counts continuously; the software high byte is
// maintained by the overflow handler, which is its only writer. The two are
// recombined by Count under a critical section so a read can never be torn
// by an intervening overflow.
//
// Combined range is 24 bits. Window lengths are bounded so the high byte
// itself cannot overflow within a window; that is a documented invariant,
// not a runtime check.
type NegativeCounter struct {
	irq *evsys.IRQ
	low *evsys.Counter
	msb uint8
}

// NewNegativeCounter returns a counter over the given hardware low word and
// binds its overflow vector.
func NewNegativeCounter(irq *evsys.IRQ, low *evsys.Counter) *NegativeCounter {
	nc := &NegativeCounter{irq: irq, low: low}
	low.OnInterrupt(nc.overflow)
	return nc
}

// Start enables pulse counting.
func (nc *NegativeCounter) Start() {
	nc.irq.Critical(func() { nc.low.Enable() })
}

// Stop disables pulse counting.
func (nc *NegativeCounter) Stop() {
	nc.irq.Critical(func() { nc.low.Disable() })
}

// Reset zeroes the hardware low word and the software high byte.
//
// Call only while counting is stopped or immediately after a window
// boundary, never concurrently with an in-flight overflow.
func (nc *NegativeCounter) Reset() {
	nc.irq.Critical(func() {
		nc.low.SetCount(0)
		nc.low.Ack()
		nc.msb = 0
	})
}

// Count recombines the low word and high byte into the pulse count.
func (nc *NegativeCounter) Count() (v uint32) {
	nc.irq.Critical(func() {
		v = uint32(nc.msb)<<16 | uint32(nc.low.Count())
	})
	return
}

// overflow is the low-word overflow interrupt handler: acknowledge the
// hardware condition, then extend into the high byte. Runs under the IRQ
// lock.
func (nc *NegativeCounter) overflow() {
	nc.low.Ack()
	nc.msb++
}

// pause and resume gate counting from the boundary handler. Interrupt
// context only.
func (nc *NegativeCounter) pause()  { nc.low.Disable() }
func (nc *NegativeCounter) resume() { nc.low.Enable() }

// captureAndReset snapshots the combined count and zeroes both parts for the
// next window. Interrupt context only; the low word is captured first so it
// cannot increment past the snapshot.
func (nc *NegativeCounter) captureAndReset() uint32 {
	lo := nc.low.Count()
	nc.low.SetCount(0)
	hi := nc.msb
	nc.msb = 0
	nc.low.Ack()
	return uint32(hi)<<16 | uint32(lo)
}
