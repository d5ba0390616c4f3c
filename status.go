// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

// Status is the state of the measurement state machine. There is exactly one
// instance per Acquirer; it is mutated only by the boundary and sample-ready
// interrupt handlers and read or reset by the consumer under a critical
// section.
type Status uint8

const (
	// StatusClean indicates no baseline residual-charge sample is held.
	StatusClean Status = iota

	// StatusPrevCharge indicates a baseline sample is held and the next
	// window boundary will capture the pulse count.
	StatusPrevCharge

	// StatusNegativeCounts indicates the pulse count is captured and the
	// next sample completes the measurement.
	StatusNegativeCounts

	// StatusResultAvail indicates a measurement is ready for the consumer.
	StatusResultAvail
)

func (s Status) String() string {
	switch s {
	case StatusClean:
		return "CLEAN"
	case StatusPrevCharge:
		return "PREV_CHARGE"
	case StatusNegativeCounts:
		return "NEGATIVE_COUNTS"
	case StatusResultAvail:
		return "RESULT_AVAIL"
	}
	return "unknown"
}
