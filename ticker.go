// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

//go:build linux
// +build linux

package multislope

import "golang.org/x/sys/unix"

// SysTicker is a Timebase backed by the system CLOCK_MONOTONIC, for
// acquirers driven by real hardware rather than the simulated fabric clock.
type SysTicker struct{}

// Millis returns the monotonic clock in milliseconds. Rolls over in ~49
// days, matching the wire representation of Measurement.Timestamp.
func (SysTicker) Millis() uint32 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0
	}
	return uint32(ts.Sec*1000 + ts.Nsec/1000000)
}
