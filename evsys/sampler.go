// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package evsys

// Sampler models the residual-charge ADC.
//
// Start begins a conversion; the result is delivered to the bound handler
// after Latency clock events. The reading itself comes from the configured
// source, so tests and simulations decide what the integrator residue looks
// like. Starting while a conversion is in flight restarts it, as retriggering
// the hardware would.
type Sampler struct {
	source    func() int32
	latency   uint16
	countdown uint16
	busy      bool
	onReady   func(int32)
}

// NewSampler returns a sampler delivering results latency clock events after
// Start.
func NewSampler(latency uint16) *Sampler {
	return &Sampler{latency: latency}
}

// SetSource sets the reading source consulted when a conversion completes.
func (s *Sampler) SetSource(fn func() int32) { s.source = fn }

// SetLatency sets the conversion time in clock events.
func (s *Sampler) SetLatency(latency uint16) { s.latency = latency }

// OnResult binds the result-ready vector. Bind once, at startup.
func (s *Sampler) OnResult(fn func(int32)) { s.onReady = fn }

// Start begins a conversion.
func (s *Sampler) Start() {
	s.busy = true
	s.countdown = s.latency
}

// Busy reports whether a conversion is in flight.
func (s *Sampler) Busy() bool { return s.busy }

// clock delivers one clock event. Called by the fabric under the IRQ lock.
func (s *Sampler) clock() {
	if !s.busy {
		return
	}
	if s.countdown > 0 {
		s.countdown--
	}
	if s.countdown == 0 {
		s.busy = false
		v := int32(0)
		if s.source != nil {
			v = s.source()
		}
		if s.onReady != nil {
			s.onReady(v)
		}
	}
}

// complete finishes the conversion immediately with the given reading.
// Used by Fabric.InjectSample under the IRQ lock.
func (s *Sampler) complete(v int32) {
	s.busy = false
	if s.onReady != nil {
		s.onReady(v)
	}
}
