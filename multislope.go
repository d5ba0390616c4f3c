// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

// Package multislope implements the acquisition core of a charge-balance
// ("multislope") analog-to-digital front end.
//
// The core turns a free-running reference clock, a polarity-gated pulse
// train and an end-of-conversion residual-charge sample into one normalized
// measurement per acquisition window:
//
//   - a WindowController synthesizes a wide acquisition window from two
//     cascaded 16-bit counters and fires a boundary exactly once per window,
//   - a NegativeCounter accumulates gated pulses as a hardware low word plus
//     a software high byte maintained by its overflow handler,
//   - a measurement state machine sequences the residual-charge sample
//     against the boundary and the captured pulse count, and
//   - PackQ32 converts the result into a Q0.32 fixed-point fraction.
//
// Example of use:
//
//	fab := evsys.NewFabric()
//	acq, err := multislope.New(multislope.WithFabric(fab))
//	if err != nil {
//		panic(err)
//	}
//	acq.ConfigureWindow(7500, 30)
//	acq.StartTrigger(3)
//	for acq.Armed() {
//		fab.Run(100, pulses)
//		if acq.Service() {
//			m, _ := acq.ReadLast()
//			fmt.Println(m.Timestamp, m.Value)
//		}
//	}
package multislope

import (
	"errors"

	"github.com/uliano/multislope/buffer"
	"github.com/uliano/multislope/evsys"
)

// Timebase supplies the monotonic millisecond counter used to stamp
// measurements at hand-off.
type Timebase interface {
	Millis() uint32
}

// Acquirer owns the acquisition pipeline and exposes the control surface
// consumed by a protocol layer.
//
// The hardware side (interrupt handlers dispatched by the fabric) is the
// single producer; the control loop driving Service, ReadLast and Drain is
// the single consumer. No other concurrency is supported.
type Acquirer struct {
	irq *evsys.IRQ
	fab *evsys.Fabric
	win *WindowController
	neg *NegativeCounter
	tb  Timebase

	seq   sequencer
	denom uint16

	buf     *buffer.Ring[Measurement]
	last    Measurement
	hasLast bool

	armed     bool
	budget    uint32
	remaining uint32
}

// New constructs an Acquirer and binds the interrupt vectors.
//
// Without options it runs on a fresh simulated fabric with a 1024-entry
// measurement buffer and the default calibration denominator.
func New(options ...Option) (*Acquirer, error) {
	opts := defaultOptions()
	for _, option := range options {
		option.applyOption(&opts)
	}
	if opts.denom <= 2048 || opts.denom >= 4095 {
		return nil, ErrBadDenominator
	}
	fab := opts.fabric
	if fab == nil {
		fab = evsys.NewFabric()
	}
	tb := opts.tb
	if tb == nil {
		tb = fab.Ticker
	}
	fab.Blanker.SetCycles(opts.blanker)
	a := &Acquirer{
		irq:   fab.IRQ,
		fab:   fab,
		win:   NewWindowController(fab),
		neg:   NewNegativeCounter(fab.IRQ, fab.PulseLow),
		tb:    tb,
		denom: opts.denom,
		buf:   buffer.NewRing[Measurement](opts.bufCap),
	}
	a.win.OnBoundary(a.onBoundary)
	fab.Sampler.OnResult(a.onSampleReady)
	return a, nil
}

// Fabric returns the event fabric the acquirer runs on.
func (a *Acquirer) Fabric() *evsys.Fabric { return a.fab }

// Window returns the window controller.
func (a *Acquirer) Window() *WindowController { return a.win }

// Negative returns the negative-pulse counter.
func (a *Acquirer) Negative() *NegativeCounter { return a.neg }

// ConfigureWindow sets the acquisition window to length reference-clock
// events with the given sub-counter divisor.
//
// Fails with ErrBusy while a trigger is armed and with ErrNotDivisible or
// ErrWindowRange on an invalid geometry; the prior configuration is
// retained on failure.
func (a *Acquirer) ConfigureWindow(length, divisor uint32) error {
	if a.armed {
		return ErrBusy
	}
	return a.win.Configure(length, divisor)
}

// ConfigurePLC sets the acquisition window to a power-line-cycle multiple at
// the given grid frequency. plc100 is the multiple scaled by 100, e.g. 2 for
// 0.02 PLC and 100 for 1 PLC.
func (a *Acquirer) ConfigurePLC(plc100 uint32, grid GridFrequency) error {
	length, divisor, err := PLCWindow(plc100, grid)
	if err != nil {
		return err
	}
	return a.ConfigureWindow(length, divisor)
}

// StartTrigger arms the acquisition for n measurements; n == 0 runs until
// Stop. The counters are reset and started, so the first window begins from
// a clean slate.
func (a *Acquirer) StartTrigger(n uint32) error {
	if a.armed {
		return ErrBusy
	}
	a.irq.Critical(func() { a.seq.reset() })
	a.neg.Stop()
	a.win.Stop()
	a.neg.Reset()
	if err := a.win.Reset(); err != nil {
		return err
	}
	a.neg.Start()
	a.win.Start()
	a.armed = true
	a.budget = n
	a.remaining = n
	return nil
}

// Stop halts the acquisition immediately. Partial window counts are
// discarded; restarting requires a new trigger.
func (a *Acquirer) Stop() {
	a.win.Stop()
	a.neg.Stop()
	a.armed = false
}

// Armed reports whether a trigger is armed.
func (a *Acquirer) Armed() bool { return a.armed }

// Reset recovers from a stuck sequencing state: the acquisition is stopped,
// the state machine returns to CLEAN and both counters are cleared. Overrun
// counters are preserved.
func (a *Acquirer) Reset() error {
	a.Stop()
	a.irq.Critical(func() { a.seq.clear() })
	a.neg.Reset()
	return a.win.Reset()
}

// Service is the non-blocking main-loop poll: it captures a completed
// result, stamps it, and queues it on the measurement buffer, discarding the
// oldest entry first if the buffer is at capacity. It reports whether a
// measurement was captured.
//
// When the armed trigger budget is exhausted the acquisition stops itself.
func (a *Acquirer) Service() bool {
	if !a.armed {
		return false
	}
	var m Measurement
	ok := false
	a.irq.Critical(func() {
		var counts uint32
		var value int32
		counts, value, ok = a.seq.take()
		if ok {
			m = Measurement{
				Timestamp: a.tb.Millis(),
				Counts:    counts,
				Value:     value,
			}
		}
	})
	if !ok {
		return false
	}
	for a.buf.Full() {
		a.buf.Get()
	}
	a.buf.Put(m)
	a.last = m
	a.hasLast = true
	if a.budget > 0 {
		a.remaining--
		if a.remaining == 0 {
			a.Stop()
		}
	}
	return true
}

// ReadLast returns the most recent measurement, independent of the buffer.
func (a *Acquirer) ReadLast() (Measurement, bool) {
	return a.last, a.hasLast
}

// BufferedCount returns the number of queued measurements.
func (a *Acquirer) BufferedCount() int { return a.buf.Len() }

// Drain removes and returns the n oldest queued measurements.
//
// Fails with ErrUnderflow if fewer than n are buffered; nothing is removed
// on failure.
func (a *Acquirer) Drain(n int) ([]Measurement, error) {
	if n < 0 || n > a.buf.Len() {
		return nil, ErrUnderflow
	}
	mm := make([]Measurement, 0, n)
	for i := 0; i < n; i++ {
		m, _ := a.buf.Get()
		mm = append(mm, m)
	}
	if len(mm) > 0 {
		a.last = mm[len(mm)-1]
		a.hasLast = true
	}
	return mm, nil
}

// Status returns the current state of the measurement state machine.
func (a *Acquirer) Status() (s Status) {
	a.irq.Critical(func() { s = a.seq.status })
	return
}

// Overruns returns the sequencing error counters.
func (a *Acquirer) Overruns() (o Overruns) {
	a.irq.Critical(func() { o = a.seq.over })
	return
}

// Denominator returns the calibrated fractional denominator D.
func (a *Acquirer) Denominator() uint16 { return a.denom }

// Pack converts a measurement into a Q0.32 fraction of the configured
// window, using the calibrated denominator.
//
// The measurement value must already be calibrated into [0, D); readings
// outside that range are not meaningful and may saturate.
func (a *Acquirer) Pack(m Measurement) uint32 {
	return PackQ32(m.Counts, uint16(m.Value), a.win.Length(), a.denom)
}

// onBoundary is the window-boundary interrupt handler. It runs under the
// IRQ lock.
//
// Pulse counting is gated off only for the capture and reset; the settling
// blanker covers the disabled interval at the head of the next window.
func (a *Acquirer) onBoundary() {
	a.neg.pause()
	counts := a.neg.captureAndReset()
	a.seq.boundary(counts)
	a.neg.resume()
}

// onSampleReady is the residual-charge result-ready interrupt handler. It
// runs under the IRQ lock.
func (a *Acquirer) onSampleReady(v int32) {
	a.seq.sampleReady(v)
}

var (
	// ErrNotDivisible indicates a window length that is not an exact
	// multiple of the sub-counter divisor.
	ErrNotDivisible = errors.New("window length not a multiple of divisor")

	// ErrWindowRange indicates a window geometry that does not fit the
	// 16-bit cascade stages.
	ErrWindowRange = errors.New("window geometry exceeds counter range")

	// ErrRunning indicates a reset attempted while a cascade stage is
	// still counting.
	ErrRunning = errors.New("counter still running")

	// ErrBusy indicates an operation attempted while a trigger is armed.
	ErrBusy = errors.New("trigger armed")

	// ErrUnderflow indicates a drain request exceeding the buffered count.
	ErrUnderflow = errors.New("drain exceeds buffered measurements")

	// ErrInvalidPLC indicates an unsupported power-line-cycle multiple.
	ErrInvalidPLC = errors.New("unsupported PLC multiple")

	// ErrBadDenominator indicates a calibration denominator outside the
	// supported (2048, 4095) range.
	ErrBadDenominator = errors.New("calibration denominator out of range")
)
