package sram

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/spi"
	"github.com/sarchlab/sramcheck/storage"
)

type stuckBit struct {
	mask  byte
	value byte
}

// Chip is the device model of the pseudo-SRAM.
type Chip struct {
	lock sync.Mutex

	name     string
	Storage  *storage.Storage
	PageSize uint32

	MFID    byte
	KGD     byte
	Density byte
	EID     uint64

	ResetEnabled bool
	ResetCount   int
	Served       uint64

	stuck map[uint32]stuckBit
}

// Name returns the name of the chip.
func (c *Chip) Name() string {
	return c.name
}

// StickBit forces one bit at addr to read as value from now on.
func (c *Chip) StickBit(addr uint32, bit uint8, value bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	s := c.stuck[addr]
	m := byte(1) << (bit & 7)
	s.mask |= m

	if value {
		s.value |= m
	} else {
		s.value &^= m
	}

	c.stuck[addr] = s
}

// Serve executes one transaction.
func (c *Chip) Serve(t *spi.Transaction) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.Served++

	if t.Cmd != CmdReset {
		defer func() { c.ResetEnabled = t.Cmd == CmdResetEnable }()
	}

	switch t.Cmd {
	case CmdResetEnable:
		return nil
	case CmdReset:
		if c.ResetEnabled {
			c.ResetCount++
		}

		c.ResetEnabled = false

		return nil
	case CmdReadID:
		return c.readID(t)
	case CmdRead:
		return c.read(t, spi.Single, 0)
	case CmdFastRead:
		return c.read(t, spi.Single, FastReadWaitCycles)
	case CmdQuadRead:
		return c.read(t, spi.Quad, QuadReadWaitCycles)
	case CmdWrite:
		return c.write(t, spi.Single)
	case CmdQuadWrite:
		return c.write(t, spi.Quad)
	default:
		return errors.Wrapf(ErrUnknownCommand, "0x%02x", t.Cmd)
	}
}

func (c *Chip) readID(t *spi.Transaction) error {
	if err := c.checkFrame(t, spi.Single, 0); err != nil {
		return err
	}

	id := [idLength]byte{
		c.MFID,
		c.KGD,
		c.Density<<5 | byte(c.EID>>40)&0x1f,
		byte(c.EID >> 32),
		byte(c.EID >> 24),
		byte(c.EID >> 16),
		byte(c.EID >> 8),
		byte(c.EID),
	}

	for i := range t.Rx {
		t.Rx[i] = id[i%idLength]
	}

	return nil
}

func (c *Chip) checkFrame(t *spi.Transaction, lanes, wait int) error {
	if !t.HasAddr {
		return errors.Wrapf(ErrMissingAddress, "0x%02x", t.Cmd)
	}

	if t.Lanes != lanes {
		return errors.Wrapf(ErrLaneMismatch,
			"0x%02x needs %d lanes, got %d", t.Cmd, lanes, t.Lanes)
	}

	if t.DummyCycles != wait {
		return errors.Errorf("0x%02x needs %d wait cycles, got %d",
			t.Cmd, wait, t.DummyCycles)
	}

	return nil
}

// segments walks the burst starting at addr, wrapping inside the page, and
// calls f once for every contiguous piece.
func (c *Chip) segments(addr uint32, n int, f func(devAddr uint32, off, len int) error) error {
	pageBase := addr - addr%c.PageSize
	inPage := addr - pageBase
	off := 0

	for off < n {
		l := min(n-off, int(c.PageSize-inPage))
		if err := f(pageBase+inPage, off, l); err != nil {
			return err
		}

		off += l
		inPage = 0
	}

	return nil
}

func (c *Chip) read(t *spi.Transaction, lanes, wait int) error {
	if err := c.checkFrame(t, lanes, wait); err != nil {
		return err
	}

	return c.segments(t.Addr, len(t.Rx), func(devAddr uint32, off, l int) error {
		buf := t.Rx[off : off+l]
		if err := c.Storage.ReadInto(uint64(devAddr), buf); err != nil {
			return err
		}

		c.applyStuckBits(devAddr, buf)

		return nil
	})
}

func (c *Chip) write(t *spi.Transaction, lanes int) error {
	if err := c.checkFrame(t, lanes, 0); err != nil {
		return err
	}

	return c.segments(t.Addr, len(t.Tx), func(devAddr uint32, off, l int) error {
		return c.Storage.Write(uint64(devAddr), t.Tx[off:off+l])
	})
}

func (c *Chip) applyStuckBits(base uint32, buf []byte) {
	if len(c.stuck) == 0 {
		return
	}

	for i := range buf {
		s, ok := c.stuck[base+uint32(i)]
		if ok {
			buf[i] = buf[i]&^s.mask | s.value
		}
	}
}
