// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uliano/multislope/buffer"
)

func TestRingFIFO(t *testing.T) {
	r := buffer.NewRing[int](4)
	assert.Equal(t, 4, r.Cap())
	assert.Equal(t, 0, r.Len())

	for i := 1; i <= 3; i++ {
		require.True(t, r.Put(i))
	}
	assert.Equal(t, 3, r.Len())

	v, ok := r.Get()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = r.Get()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, r.Len())
}

func TestRingPutFailsWhenFull(t *testing.T) {
	r := buffer.NewRing[int](2)
	require.True(t, r.Put(1))
	require.True(t, r.Put(2))
	assert.True(t, r.Full())

	// no implicit overwrite
	assert.False(t, r.Put(3))
	v, _ := r.Peek()
	assert.Equal(t, 1, v)
}

func TestRingGetEmpty(t *testing.T) {
	r := buffer.NewRing[int](2)
	_, ok := r.Get()
	assert.False(t, ok)
	_, ok = r.Peek()
	assert.False(t, ok)
}

func TestRingWrapsIndices(t *testing.T) {
	r := buffer.NewRing[int](3)
	// many cycles through a small ring keep strict FIFO order
	require.True(t, r.Put(0))
	require.True(t, r.Put(1))
	for i := 2; i < 10; i++ {
		require.True(t, r.Put(i))
		v, ok := r.Get()
		require.True(t, ok)
		require.Equal(t, i-2, v)
	}
	for want := 8; want < 10; want++ {
		v, ok := r.Get()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	assert.Equal(t, 0, r.Len())
}

func TestRingClear(t *testing.T) {
	r := buffer.NewRing[string](2)
	r.Put("a")
	r.Put("b")
	r.Clear()
	assert.Equal(t, 0, r.Len())
	require.True(t, r.Put("c"))
	v, _ := r.Get()
	assert.Equal(t, "c", v)
}

func TestRingClampsCapacity(t *testing.T) {
	r := buffer.NewRing[int](0)
	assert.Equal(t, 1, r.Cap())
	require.True(t, r.Put(9))
	assert.False(t, r.Put(10))
}
