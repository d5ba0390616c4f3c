// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uliano/multislope"
	"github.com/uliano/multislope/evsys"
)

func TestNegativeCounterExactAcrossWraps(t *testing.T) {
	f := evsys.NewFabric()
	nc := multislope.NewNegativeCounter(f.IRQ, f.PulseLow)
	nc.Start()

	// three low-word wraparounds and change
	const n = 200000
	f.Run(n, func(int) bool { return true })
	assert.Equal(t, uint32(n), nc.Count())
}

func TestNegativeCounterWrapEdge(t *testing.T) {
	f := evsys.NewFabric()
	nc := multislope.NewNegativeCounter(f.IRQ, f.PulseLow)
	nc.Start()

	f.Run(65535, func(int) bool { return true })
	assert.Equal(t, uint32(65535), nc.Count())

	// the overflow carries into the high byte, never a torn mix
	f.Step(true)
	assert.Equal(t, uint32(65536), nc.Count())
}

func TestNegativeCounterReadNeverTorn(t *testing.T) {
	f := evsys.NewFabric()
	nc := multislope.NewNegativeCounter(f.IRQ, f.PulseLow)
	nc.Start()

	const n = 150000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			f.Step(true)
		}
	}()

	// Reads race the pulse train, including reads landing exactly on a
	// low-word overflow. Each snapshot must be a value the counter
	// actually held: monotonic, never a corrupted low/high mix.
	prev := uint32(0)
	for prev < n {
		v := nc.Count()
		require.GreaterOrEqual(t, v, prev)
		require.LessOrEqual(t, v, uint32(n))
		prev = v
	}
	<-done
	assert.Equal(t, uint32(n), nc.Count())
}

func TestNegativeCounterReset(t *testing.T) {
	f := evsys.NewFabric()
	nc := multislope.NewNegativeCounter(f.IRQ, f.PulseLow)
	nc.Start()

	f.Run(70000, func(int) bool { return true })
	require.Equal(t, uint32(70000), nc.Count())

	nc.Stop()
	nc.Reset()
	assert.Equal(t, uint32(0), nc.Count())

	// counting resumes from zero, high byte included
	nc.Start()
	f.Run(3, func(int) bool { return true })
	assert.Equal(t, uint32(3), nc.Count())
}

func TestNegativeCounterStopGates(t *testing.T) {
	f := evsys.NewFabric()
	nc := multislope.NewNegativeCounter(f.IRQ, f.PulseLow)
	nc.Start()
	f.Run(10, func(int) bool { return true })
	nc.Stop()
	f.Run(10, func(int) bool { return true })
	assert.Equal(t, uint32(10), nc.Count())
}
