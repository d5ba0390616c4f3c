// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

import "github.com/uliano/multislope/evsys"

// WindowController owns the wide event counter that defines the acquisition
// window: two cascaded 16-bit stages whose combined compare geometry fires
// the boundary exactly once per window length, plus the one-shot settling
// blanker triggered by the same boundary.
type WindowController struct {
	irq     *evsys.IRQ
	low     *evsys.Counter
	high    *evsys.Counter
	blanker *evsys.OneShot

	length  uint32
	divisor uint32
}

// NewWindowController returns a window controller over the fabric's window
// cascade, configured for the default 1 PLC window at 50 Hz.
func NewWindowController(f *evsys.Fabric) *WindowController {
	w := &WindowController{
		irq:     f.IRQ,
		low:     f.WindowLow,
		high:    f.WindowHigh,
		blanker: f.Blanker,
	}
	w.Configure(7500, uint32(Grid50Hz))
	return w
}

// Configure sets the window to length input events, with the low cascade
// stage wrapping every divisor events.
//
// Fails with ErrNotDivisible unless length is a positive exact multiple of
// divisor, and with ErrWindowRange if either stage count exceeds 16 bits.
// The prior configuration is retained on failure.
func (w *WindowController) Configure(length, divisor uint32) error {
	if divisor == 0 || length == 0 || length%divisor != 0 {
		return ErrNotDivisible
	}
	sub := length / divisor
	if divisor > 0x10000 || sub > 0x10000 {
		return ErrWindowRange
	}
	w.irq.Critical(func() {
		w.low.SetCompare(uint16(divisor - 1))
		w.high.SetCompare(uint16(sub - 1))
		w.length = length
		w.divisor = divisor
	})
	return nil
}

// Length returns the configured window length in input events.
func (w *WindowController) Length() uint32 { return w.length }

// Divisor returns the configured sub-counter divisor.
func (w *WindowController) Divisor() uint32 { return w.divisor }

// SubCycles returns the number of sub-cycles per window.
func (w *WindowController) SubCycles() uint32 { return w.length / w.divisor }

// Start enables both cascade stages.
func (w *WindowController) Start() {
	w.irq.Critical(func() {
		w.low.Enable()
		w.high.Enable()
	})
}

// Stop disables both cascade stages. A stopped window has no resume
// semantics: partial counts are discarded and the window must be restarted
// from zero via Reset.
func (w *WindowController) Stop() {
	w.irq.Critical(func() {
		w.low.Disable()
		w.high.Disable()
	})
}

// Running reports whether either cascade stage is counting.
func (w *WindowController) Running() (running bool) {
	w.irq.Critical(func() {
		running = w.low.Enabled() || w.high.Enabled()
	})
	return
}

// Reset reloads both cascade stages to their initial offsets and clears any
// pending boundary.
//
// Fails with ErrRunning unless both stages are stopped; resetting a live
// cascade could capture a boundary from the previous window's residue.
func (w *WindowController) Reset() (err error) {
	w.irq.Critical(func() {
		if w.low.Enabled() || w.high.Enabled() {
			err = ErrRunning
			return
		}
		w.low.SetCount(0)
		w.high.SetCount(0)
		w.high.Ack()
	})
	return
}

// OnBoundary binds the window-boundary interrupt handler. The latched
// boundary condition is acknowledged before the handler body runs. Bind
// once, at startup.
func (w *WindowController) OnBoundary(fn func()) {
	w.high.OnInterrupt(func() {
		w.high.Ack()
		fn()
	})
}

// Blanking reports whether the settling blanker is gating the analog path.
func (w *WindowController) Blanking() (active bool) {
	w.irq.Critical(func() { active = w.blanker.Active() })
	return
}
