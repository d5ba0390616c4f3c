// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqEvent drives one sequencer input.
type seqEvent struct {
	boundary bool
	sample   int32
	counts   uint32
}

func sample(v int32) seqEvent { return seqEvent{sample: v} }

func boundary(c uint32) seqEvent { return seqEvent{boundary: true, counts: c} }

func (e seqEvent) apply(s *sequencer) {
	if e.boundary {
		s.boundary(e.counts)
	} else {
		s.sampleReady(e.sample)
	}
}

func TestSequencerNominalCycle(t *testing.T) {
	s := sequencer{}
	assert.Equal(t, StatusClean, s.status)

	s.sampleReady(1000)
	assert.Equal(t, StatusPrevCharge, s.status)

	s.boundary(500)
	assert.Equal(t, StatusNegativeCounts, s.status)

	s.sampleReady(1040)
	assert.Equal(t, StatusResultAvail, s.status)

	counts, value, ok := s.take()
	require.True(t, ok)
	assert.Equal(t, uint32(500), counts)
	assert.Equal(t, int32(40), value)
	assert.Equal(t, StatusClean, s.status)
	assert.Equal(t, Overruns{}, s.over)

	// the closing sample became the next baseline, so the following
	// boundary/sample pair completes a second result without re-priming
	s.boundary(502)
	s.sampleReady(1110)
	counts, value, ok = s.take()
	require.True(t, ok)
	assert.Equal(t, uint32(502), counts)
	assert.Equal(t, int32(70), value)
}

func TestSequencerTransitions(t *testing.T) {
	patterns := []struct {
		name    string
		events  []seqEvent
		xstatus Status
		xover   Overruns
	}{
		{"clean boundary benign",
			[]seqEvent{boundary(123)},
			StatusClean,
			Overruns{}},
		{"repeated clean boundaries benign",
			[]seqEvent{boundary(1), boundary(2), boundary(3)},
			StatusClean,
			Overruns{}},
		{"duplicate sample",
			[]seqEvent{sample(10), sample(20)},
			StatusPrevCharge,
			Overruns{Sample: 1}},
		{"boundary before sample",
			[]seqEvent{sample(10), boundary(5), boundary(6)},
			StatusNegativeCounts,
			Overruns{Boundary: 1}},
		{"sample on pending result",
			[]seqEvent{sample(10), boundary(5), sample(20), sample(30)},
			StatusResultAvail,
			Overruns{Result: 1}},
		{"boundary on pending result",
			[]seqEvent{sample(10), boundary(5), sample(20), boundary(6)},
			StatusResultAvail,
			Overruns{Result: 1}},
		{"storm on pending result",
			[]seqEvent{sample(10), boundary(5), sample(20),
				boundary(6), sample(30), boundary(7)},
			StatusResultAvail,
			Overruns{Result: 3}},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			s := sequencer{}
			for _, e := range p.events {
				e.apply(&s)
			}
			assert.Equal(t, p.xstatus, s.status)
			assert.Equal(t, p.xover, s.over)
		}
		t.Run(p.name, tf)
	}
}

func TestSequencerOverrunPreservesResult(t *testing.T) {
	s := sequencer{}
	s.sampleReady(100)
	s.boundary(500)
	s.sampleReady(130)

	// late events while the result waits must not disturb the stored data
	s.sampleReady(999)
	s.boundary(777)

	counts, value, ok := s.take()
	require.True(t, ok)
	assert.Equal(t, uint32(500), counts)
	assert.Equal(t, int32(30), value)
	assert.Equal(t, Overruns{Result: 2}, s.over)
}

func TestSequencerDuplicateSampleKeepsBaseline(t *testing.T) {
	s := sequencer{}
	s.sampleReady(100)
	s.sampleReady(250) // dropped
	s.boundary(500)
	s.sampleReady(140)

	_, value, ok := s.take()
	require.True(t, ok)
	// value measured against the first sample, not the dropped duplicate
	assert.Equal(t, int32(40), value)
}

func TestSequencerTakeOnlyWhenAvailable(t *testing.T) {
	s := sequencer{}
	for _, e := range []seqEvent{sample(10), boundary(5)} {
		_, _, ok := s.take()
		assert.False(t, ok)
		e.apply(&s)
	}
	s.sampleReady(25)
	_, _, ok := s.take()
	assert.True(t, ok)
	// consumed; a second take has nothing
	_, _, ok = s.take()
	assert.False(t, ok)
}

func TestSequencerResetKeepsOverruns(t *testing.T) {
	s := sequencer{}
	s.sampleReady(10)
	s.sampleReady(20)
	require.Equal(t, Overruns{Sample: 1}, s.over)

	s.reset()
	assert.Equal(t, StatusClean, s.status)
	assert.Equal(t, Overruns{Sample: 1}, s.over)
	assert.Equal(t, int32(0), s.baseline)
	assert.Equal(t, uint32(0), s.counts)
}
