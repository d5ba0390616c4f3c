// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

// Measurement is one completed acquisition window result. Immutable once
// produced; ownership passes to the consumer on hand-off.
type Measurement struct {
	// Timestamp in milliseconds from the timebase. Rolls over in ~49 days.
	Timestamp uint32

	// Counts is the number of whole charge-balance cycles captured at the
	// window boundary.
	Counts uint32

	// Value is the residual-charge difference between this window's sample
	// and the previous baseline.
	Value int32
}

// Overruns are the sequencing error counters: events that arrived while the
// state machine was not expecting them. Each counted event was dropped
// without disturbing stored data.
type Overruns struct {
	// Sample counts residual-charge samples that arrived with a baseline
	// already held and no boundary in between.
	Sample uint32

	// Boundary counts window boundaries that arrived before the previous
	// window's sample completed.
	Boundary uint32

	// Result counts events of either kind that arrived while a result was
	// still waiting for the consumer.
	Result uint32
}

// sequencer is the measurement state machine.
//
// It enforces strict alternation of sample and boundary events: a boundary
// is only meaningful once a baseline sample exists, and a new sample is only
// meaningful once the count for the just-closed window has been captured.
// Out-of-order events are dropped and counted rather than overwriting data.
//
// All methods run either under the IRQ lock (handler side) or inside a
// critical section (consumer side).
type sequencer struct {
	status   Status
	baseline int32
	value    int32
	counts   uint32
	over     Overruns
}

// sampleReady handles a residual-charge sample completion.
func (s *sequencer) sampleReady(v int32) {
	switch s.status {
	case StatusClean:
		s.baseline = v
		s.status = StatusPrevCharge
	case StatusPrevCharge:
		// duplicate sample without an intervening boundary; keep the
		// baseline.
		s.over.Sample++
	case StatusNegativeCounts:
		s.value = v - s.baseline
		s.baseline = v
		s.status = StatusResultAvail
	case StatusResultAvail:
		s.over.Result++
	}
}

// boundary handles a window boundary with the pulse count captured from the
// closing window.
func (s *sequencer) boundary(counts uint32) {
	switch s.status {
	case StatusClean:
		// first boundary after arming: no baseline yet, the count has
		// nothing to pair with. Benign.
	case StatusPrevCharge:
		s.counts = counts
		s.status = StatusNegativeCounts
	case StatusNegativeCounts:
		// boundary before the previous window's sample completed.
		s.over.Boundary++
	case StatusResultAvail:
		s.over.Result++
	}
}

// take hands off a completed result and returns the machine to CLEAN.
func (s *sequencer) take() (counts uint32, value int32, ok bool) {
	if s.status != StatusResultAvail {
		return 0, 0, false
	}
	s.status = StatusClean
	return s.counts, s.value, true
}

// reset returns to CLEAN for a new trigger session. Overrun counters carry
// across sessions.
func (s *sequencer) reset() {
	s.status = StatusClean
	s.baseline = 0
	s.value = 0
	s.counts = 0
}

// clear is reset for explicit recovery.
func (s *sequencer) clear() { s.reset() }
