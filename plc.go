// SPDX-License-Identifier: MIT
//
// Copyright © 2026 uliano.

package multislope

// GridFrequency selects the sub-counter divisor that lines a sub-cycle up
// with the mains period: 30 reference events per sub-cycle on a 50 Hz grid,
// 25 on 60 Hz.
type GridFrequency uint32

const (
	// Grid50Hz is the sub-cycle divisor for a 50 Hz grid.
	Grid50Hz GridFrequency = 30

	// Grid60Hz is the sub-cycle divisor for a 60 Hz grid.
	Grid60Hz GridFrequency = 25
)

// plcSubCycles maps a PLC multiple scaled by 100 to the number of sub-cycles
// per window. The supported multiples are the instrument's front-panel set.
var plcSubCycles = map[uint32]uint32{
	2:     5,     // 0.02 PLC
	10:    25,    // 0.1 PLC
	20:    50,    // 0.2 PLC
	50:    125,   // 0.5 PLC
	100:   250,   // 1 PLC
	200:   500,   // 2 PLC
	500:   1250,  // 5 PLC
	1000:  2500,  // 10 PLC
	2000:  5000,  // 20 PLC
	5000:  12500, // 50 PLC
	10000: 25000, // 100 PLC
	20000: 50000, // 200 PLC
}

// PLCWindow returns the window geometry for a power-line-cycle multiple at
// the given grid frequency. plc100 is the multiple scaled by 100 (2 = 0.02
// PLC ... 20000 = 200 PLC). Fails with ErrInvalidPLC for multiples outside
// the supported set.
func PLCWindow(plc100 uint32, grid GridFrequency) (length, divisor uint32, err error) {
	sub, ok := plcSubCycles[plc100]
	if !ok {
		return 0, 0, ErrInvalidPLC
	}
	divisor = uint32(grid)
	length = sub * divisor
	return length, divisor, nil
}
