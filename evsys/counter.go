// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package evsys

// Counter is a 16-bit event counter with a compare register.
//
// The counter counts input events while enabled. When the count reaches the
// compare value the next behaviour mirrors the hardware timer/counter
// blocks: the count reloads to zero, the wrap event output fires exactly
// once, and the interrupt flag latches.
//
// Two distinct outputs exist, as on the silicon:
//
//   - the wrap event (OnWrapEvent) is an event-system route. It fires once
//     per wrap and is used to clock a cascaded stage or trigger a one-shot.
//   - the interrupt (OnInterrupt) is level-latched. The handler must call
//     Ack before returning or it is dispatched again on the next input
//     event, the same way an unacknowledged flag re-enters the vector.
//
// With the compare left at its reset value of 0xffff the counter is
// free-running and wraps every 65536 events.
type Counter struct {
	enabled bool
	cnt     uint16
	cmp     uint16
	intf    bool
	onWrap  func()
	onIRQ   func()
}

// NewCounter returns a disabled free-running counter.
func NewCounter() *Counter {
	return &Counter{cmp: 0xffff}
}

// Enable starts counting input events.
func (c *Counter) Enable() { c.enabled = true }

// Disable stops counting. The count is retained.
func (c *Counter) Disable() { c.enabled = false }

// Enabled reports whether the counter is counting.
func (c *Counter) Enabled() bool { return c.enabled }

// Count returns the current count register.
func (c *Counter) Count() uint16 { return c.cnt }

// SetCount loads the count register.
func (c *Counter) SetCount(v uint16) { c.cnt = v }

// Compare returns the compare register.
func (c *Counter) Compare() uint16 { return c.cmp }

// SetCompare loads the compare register. The counter wraps after cmp+1
// input events.
func (c *Counter) SetCompare(cmp uint16) { c.cmp = cmp }

// Pending reports whether the interrupt flag is latched.
func (c *Counter) Pending() bool { return c.intf }

// Ack clears the latched interrupt flag.
func (c *Counter) Ack() { c.intf = false }

// OnWrapEvent binds the wrap event output. Bind once, at startup.
func (c *Counter) OnWrapEvent(fn func()) { c.onWrap = fn }

// OnInterrupt binds the interrupt vector. Bind once, at startup.
func (c *Counter) OnInterrupt(fn func()) { c.onIRQ = fn }

// clock delivers one input event. Called by the fabric under the IRQ lock.
func (c *Counter) clock() {
	if !c.enabled {
		return
	}
	if c.cnt == c.cmp {
		c.cnt = 0
		c.intf = true
		if c.onWrap != nil {
			c.onWrap()
		}
	} else {
		c.cnt++
	}
	if c.intf && c.onIRQ != nil {
		c.onIRQ()
	}
}
