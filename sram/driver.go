package sram

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/exerciser"
	"github.com/sarchlab/sramcheck/spi"
)

// Driver is the host-side driver of the pseudo-SRAM. It splits every access
// at page boundaries because the chip wraps bursts inside a page.
type Driver struct {
	bus      spi.Bus
	pageSize uint32

	// Transactions counts the transactions issued by the driver.
	Transactions uint64

	// Splits counts the accesses that had to be split at a page boundary.
	Splits uint64
}

var _ exerciser.Device = (*Driver)(nil)

// NewDriver creates a driver that talks to the chip over bus.
func NewDriver(bus spi.Bus, pageSize uint32) *Driver {
	if pageSize == 0 {
		pageSize = PageSize
	}

	return &Driver{
		bus:      bus,
		pageSize: pageSize,
	}
}

func (d *Driver) transfer(t *spi.Transaction) error {
	d.Transactions++
	return d.bus.Transfer(t)
}

// Init resets the chip.
func (d *Driver) Init() error {
	if err := d.transfer(spi.NewTransaction(CmdResetEnable)); err != nil {
		return errors.Wrap(err, "reset enable")
	}

	if err := d.transfer(spi.NewTransaction(CmdReset)); err != nil {
		return errors.Wrap(err, "reset")
	}

	return nil
}

// ReadIdentity reads and checks the chip ID. A chip that does not report
// the AP Memory manufacturer ID and a passing KGD code is rejected with an
// *IdentityError.
func (d *Driver) ReadIdentity() (exerciser.Identity, error) {
	t := spi.NewTransaction(CmdReadID).
		WithAddr(0).
		WithRx(make([]byte, idLength))

	if err := d.transfer(t); err != nil {
		return exerciser.Identity{}, errors.Wrap(err, "read ID")
	}

	if len(t.Rx) < 3 {
		return exerciser.Identity{}, ErrShortID
	}

	id := exerciser.Identity{
		ManufacturerID: t.Rx[0],
		KGD:            t.Rx[1],
		Density:        t.Rx[2] >> 5,
		ExtendedID:     t.Rx[2] & 0x1f,
	}

	if id.ManufacturerID != ManufacturerID || id.KGD != KGDPass {
		return id, &IdentityError{
			ExpectedMFID: ManufacturerID,
			ExpectedKGD:  KGDPass,
			MFID:         id.ManufacturerID,
			KGD:          id.KGD,
		}
	}

	return id, nil
}

// Write writes buf on the single-lane path.
func (d *Driver) Write(addr uint32, buf []byte) error {
	return d.split(addr, len(buf), func(a uint32, off, n int) *spi.Transaction {
		return spi.NewTransaction(CmdWrite).
			WithAddr(a).
			WithTx(buf[off : off+n])
	})
}

// ReadSlow reads into buf on the single-lane path.
func (d *Driver) ReadSlow(addr uint32, buf []byte) error {
	return d.split(addr, len(buf), func(a uint32, off, n int) *spi.Transaction {
		return spi.NewTransaction(CmdRead).
			WithAddr(a).
			WithRx(buf[off : off+n])
	})
}

// WriteFast writes buf on the quad-lane path.
func (d *Driver) WriteFast(addr uint32, buf []byte) error {
	return d.split(addr, len(buf), func(a uint32, off, n int) *spi.Transaction {
		return spi.NewTransaction(CmdQuadWrite).
			WithAddr(a).
			WithLanes(spi.Quad).
			WithTx(buf[off : off+n])
	})
}

// ReadFast reads into buf on the quad-lane path.
func (d *Driver) ReadFast(addr uint32, buf []byte) error {
	return d.split(addr, len(buf), func(a uint32, off, n int) *spi.Transaction {
		return spi.NewTransaction(CmdQuadRead).
			WithAddr(a).
			WithLanes(spi.Quad).
			WithDummy(QuadReadWaitCycles).
			WithRx(buf[off : off+n])
	})
}

// split issues one transaction per page touched by [addr, addr+n).
func (d *Driver) split(
	addr uint32,
	n int,
	build func(addr uint32, off, n int) *spi.Transaction,
) error {
	off := 0
	pieces := 0

	for off < n {
		a := addr + uint32(off)
		l := min(n-off, int(d.pageSize-a%d.pageSize))

		if err := d.transfer(build(a, off, l)); err != nil {
			return err
		}

		off += l
		pieces++
	}

	if pieces > 1 {
		d.Splits++
	}

	return nil
}
