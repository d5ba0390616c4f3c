// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

import "math/bits"

// PackQ32 converts a charge-balance measurement expressed as
//
//	x = (i + k/d) / j
//
// into its unsigned Q0.32 fixed-point representation round(x * 2^32), where
// i is the count of whole charge-injection cycles, k/d the fractional
// residual charge, and j the total cycles in the acquisition window.
//
// Documented invariants, not defensively checked:
//
//	0 <= k < d
//	2048 < d < 4095
//	(i + k/d) < j by construction
//
// The computation is exact integer arithmetic with a 128-bit intermediate,
// no floating point. The +denom/2 term rounds to nearest; quantization error
// is at most half an LSB. The conversion is monotonic and linear in both i
// and k.
//
// If numer >= denom (x >= 1 from a transient out-of-bound input) the result
// saturates to 0xffffffff, the maximum representable value just below 1.0.
func PackQ32(i uint32, k uint16, j uint32, d uint16) uint32 {
	denom := uint64(j) * uint64(d)
	numer := uint64(i)*uint64(d) + uint64(k)
	if numer >= denom {
		return 0xffffffff
	}
	// numer * 2^32 + denom/2, as a 128-bit value
	hi := numer >> 32
	lo, carry := bits.Add64(numer<<32, denom/2, 0)
	q, _ := bits.Div64(hi+carry, lo, denom)
	return uint32(q)
}
