package spi

import "fmt"

// Lane widths.
const (
	Single = 1
	Dual   = 2
	Quad   = 4
)

// AddrBytes is the width of the address phase.
const AddrBytes = 3

// A Transaction is one chip-select cycle on the bus.
type Transaction struct {
	// Seq is assigned by the bus, starting from 1.
	Seq uint64

	Cmd     byte
	HasAddr bool
	Addr    uint32

	// Lanes used by the address and data phases.
	Lanes int

	// DummyCycles between the address and the data phase.
	DummyCycles int

	// Tx is sent by the host after the address phase.
	Tx []byte

	// Rx is filled by the target. Its length is the number of bytes the
	// host clocks in.
	Rx []byte
}

// NewTransaction creates a command-only transaction.
func NewTransaction(cmd byte) *Transaction {
	return &Transaction{
		Cmd:   cmd,
		Lanes: Single,
	}
}

// WithAddr sets the address phase.
func (t *Transaction) WithAddr(addr uint32) *Transaction {
	t.HasAddr = true
	t.Addr = addr

	return t
}

// WithLanes sets the lanes of the address and data phases.
func (t *Transaction) WithLanes(lanes int) *Transaction {
	t.Lanes = lanes
	return t
}

// WithDummy sets the number of dummy cycles.
func (t *Transaction) WithDummy(cycles int) *Transaction {
	t.DummyCycles = cycles
	return t
}

// WithTx attaches data to send.
func (t *Transaction) WithTx(data []byte) *Transaction {
	t.Tx = data
	return t
}

// WithRx attaches the buffer to receive into.
func (t *Transaction) WithRx(buf []byte) *Transaction {
	t.Rx = buf
	return t
}

// Cycles returns the number of bus clock cycles the transaction occupies.
func (t *Transaction) Cycles() uint64 {
	lanes := t.Lanes
	if lanes <= 0 {
		lanes = Single
	}

	cycles := uint64(8)

	if t.HasAddr {
		cycles += AddrBytes * 8 / uint64(lanes)
	}

	cycles += uint64(t.DummyCycles)
	cycles += uint64(len(t.Tx)+len(t.Rx)) * 8 / uint64(lanes)

	return cycles
}

func (t *Transaction) String() string {
	if !t.HasAddr {
		return fmt.Sprintf("cmd 0x%02x", t.Cmd)
	}

	return fmt.Sprintf("cmd 0x%02x addr 0x%06x x%d tx %d rx %d",
		t.Cmd, t.Addr, t.Lanes, len(t.Tx), len(t.Rx))
}
