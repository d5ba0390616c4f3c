// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package evsys

const (
	// DefaultEventsPerMilli is the reference clock rate: 375 events per
	// millisecond (375 kHz charge-balance clock).
	DefaultEventsPerMilli = 375

	// DefaultSampleLatency is the conversion time of the residual-charge
	// sampler in reference-clock events.
	DefaultSampleLatency = 8

	// DefaultBlankerCycles is the settling blanker interval: one ADC clock
	// cycle expressed in reference-clock events.
	DefaultBlankerCycles = 64
)

// Fabric owns the counter blocks and routes events between them the way the
// hardware event system routes channels:
//
//	reference clock -> WindowLow -> (wrap) -> WindowHigh
//	WindowHigh wrap -> Blanker trigger, Sampler start
//	gated negative pulses -> PulseLow
//
// The window boundary interrupt (WindowHigh.OnInterrupt) and the pulse
// counter overflow interrupt (PulseLow.OnInterrupt) are left for the
// acquisition core to bind.
//
// Step delivers stimulus one reference-clock event at a time while holding
// the IRQ lock, so handlers observe the same atomicity they would have on a
// flat-priority interrupt controller.
type Fabric struct {
	IRQ        *IRQ
	WindowLow  *Counter
	WindowHigh *Counter
	PulseLow   *Counter
	Blanker    *OneShot
	Sampler    *Sampler
	Ticker     *SimTicker
}

// NewFabric returns a fabric with all routes wired and every counter
// disabled.
func NewFabric() *Fabric {
	f := &Fabric{
		IRQ:        &IRQ{},
		WindowLow:  NewCounter(),
		WindowHigh: NewCounter(),
		PulseLow:   NewCounter(),
		Blanker:    NewOneShot(DefaultBlankerCycles),
		Sampler:    NewSampler(DefaultSampleLatency),
		Ticker:     NewSimTicker(DefaultEventsPerMilli),
	}
	f.WindowLow.OnWrapEvent(f.WindowHigh.clock)
	f.WindowHigh.OnWrapEvent(func() {
		f.Blanker.Trigger()
		f.Sampler.Start()
	})
	return f
}

// Step delivers one reference-clock event.
//
// neg indicates that the polarity synchronizer gated a negative pulse onto
// this cycle; the pulse is counted before the window stage so a pulse
// coincident with the boundary edge still belongs to the closing window.
func (f *Fabric) Step(neg bool) {
	f.IRQ.lock()
	defer f.IRQ.unlock()
	f.Ticker.clock()
	f.Blanker.clock()
	f.Sampler.clock()
	if neg {
		f.PulseLow.clock()
	}
	f.WindowLow.clock()
}

// Run delivers n reference-clock events. neg, if non-nil, is consulted with
// the event index 0..n-1 to decide which cycles carry a negative pulse.
func (f *Fabric) Run(n int, neg func(i int) bool) {
	for i := 0; i < n; i++ {
		f.Step(neg != nil && neg(i))
	}
}

// InjectSample completes a residual-charge conversion immediately with the
// given reading. Test and simulation hook.
func (f *Fabric) InjectSample(v int32) {
	f.IRQ.lock()
	defer f.IRQ.unlock()
	f.Sampler.complete(v)
}
