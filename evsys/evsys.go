// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

// Package evsys models the timer/counter blocks and the event-routing fabric
// that the acquisition core is built on.
//
// The fabric mirrors the hardware: narrow 16-bit event counters that can be
// cascaded through their wrap outputs, a one-shot gate timer, a
// residual-charge sampler with a conversion latency, and a millisecond
// ticker. All of them are clocked deterministically from Fabric.Step, so the
// same package serves as the production register model and as the test
// bench.
//
// Interrupt handlers are plain callbacks dispatched while the fabric holds
// the IRQ lock. Code running outside handler context must wrap its register
// accesses in IRQ.Critical, exactly as firmware brackets them with cli/sei.
package evsys

import "sync"

// IRQ serialises interrupt dispatch against main-loop critical sections.
//
// The fabric acquires the lock for the duration of each Step, so a handler
// can never interleave with a Critical section. Handlers themselves run with
// the lock already held and must not call Critical.
type IRQ struct {
	mu sync.Mutex
}

// Critical runs f with interrupt delivery deferred.
//
// Any multi-word value shared with a handler must be read inside Critical or
// the read may be torn by an intervening wrap or sample event.
func (q *IRQ) Critical(f func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	f()
}

// lock/unlock are used by the fabric to bracket event dispatch.
func (q *IRQ) lock()   { q.mu.Lock() }
func (q *IRQ) unlock() { q.mu.Unlock() }
