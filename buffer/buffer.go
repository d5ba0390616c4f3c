// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

// Package buffer provides the bounded FIFO that queues completed
// measurements between the acquisition core and the protocol layer.
//
// Single producer, single consumer. The ring never overwrites implicitly:
// Put fails when full, and the producer decides whether to discard the
// oldest record first.
package buffer

// Ring is a bounded FIFO ring buffer.
type Ring[T any] struct {
	d     []T
	head  int
	tail  int
	count int
}

// NewRing returns an empty ring with the given capacity. Capacities below 1
// are clamped to 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{d: make([]T, capacity)}
}

// Put appends v. It reports false, leaving the ring unchanged, if the ring
// is full.
func (r *Ring[T]) Put(v T) bool {
	if r.count == len(r.d) {
		return false
	}
	r.d[r.tail] = v
	r.tail++
	if r.tail == len(r.d) {
		r.tail = 0
	}
	r.count++
	return true
}

// Get removes and returns the oldest record. It reports false if the ring
// is empty.
func (r *Ring[T]) Get() (v T, ok bool) {
	if r.count == 0 {
		return v, false
	}
	v = r.d[r.head]
	r.head++
	if r.head == len(r.d) {
		r.head = 0
	}
	r.count--
	return v, true
}

// Peek returns the oldest record without removing it.
func (r *Ring[T]) Peek() (v T, ok bool) {
	if r.count == 0 {
		return v, false
	}
	return r.d[r.head], true
}

// Len returns the number of queued records.
func (r *Ring[T]) Len() int { return r.count }

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int { return len(r.d) }

// Full reports whether the ring is at capacity.
func (r *Ring[T]) Full() bool { return r.count == len(r.d) }

// Clear discards all queued records.
func (r *Ring[T]) Clear() {
	r.head = 0
	r.tail = 0
	r.count = 0
}
