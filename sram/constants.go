package sram

// Commands understood by the chip.
const (
	CmdRead        = 0x03 // Read, single lane, no wait cycles
	CmdFastRead    = 0x0B // Fast read, single lane, 8 wait cycles
	CmdQuadRead    = 0xEB // Quad read, quad address and data, 6 wait cycles
	CmdWrite       = 0x02 // Write, single lane
	CmdQuadWrite   = 0x38 // Quad write, quad address and data
	CmdResetEnable = 0x66
	CmdReset       = 0x99
	CmdReadID      = 0x9F // Read ID, address is don't-care
)

// CommandNames gives a readable name to each command byte.
var CommandNames = map[byte]string{
	CmdRead:        "Read",
	CmdFastRead:    "FastRead",
	CmdQuadRead:    "QuadRead",
	CmdWrite:       "Write",
	CmdQuadWrite:   "QuadWrite",
	CmdResetEnable: "ResetEnable",
	CmdReset:       "Reset",
	CmdReadID:      "ReadID",
}

// Wait cycles between address and data.
const (
	FastReadWaitCycles = 8
	QuadReadWaitCycles = 6
)

// Identity of the part.
const (
	ManufacturerID = 0x0D // AP Memory
	KGDPass        = 0x5D // known good die
	KGDFail        = 0x55
	Density64Mb    = 0x02
)

// Geometry of the part.
const (
	Capacity = 8 << 20 // 64 Mbit
	PageSize = 1024
)

// idLength is MFID, KGD and six bytes of EID.
const idLength = 8
