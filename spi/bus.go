package spi

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/timing"
)

// A Bus carries transactions from the host to a device.
type Bus interface {
	Transfer(t *Transaction) error
}

// A Target is the device end of a bus.
type Target interface {
	Serve(t *Transaction) error
}

// Stats counts the traffic that went through a bus.
type Stats struct {
	Transfers   uint64
	TxBytes     uint64
	RxBytes     uint64
	Cycles      uint64
	ByCommand   map[byte]uint64
	FailedCount uint64
}

// SimBus is a simulated bus that connects the host to one Target.
type SimBus struct {
	*HookableBase

	name   string
	target Target
	clock  *timing.Clock
	freq   timing.Freq

	// csHighCycles is charged after every transaction for the chip-select
	// deselect time.
	csHighCycles uint64

	lock  sync.Mutex
	seq   uint64
	stats Stats
}

// Name returns the name of the bus.
func (b *SimBus) Name() string {
	return b.name
}

// Freq returns the bus clock frequency.
func (b *SimBus) Freq() timing.Freq {
	return b.freq
}

// Now returns the current time on the bus clock.
func (b *SimBus) Now() timing.VTimeInSec {
	return b.clock.Now()
}

// Stats returns a snapshot of the traffic counters.
func (b *SimBus) Stats() Stats {
	b.lock.Lock()
	defer b.lock.Unlock()

	s := b.stats
	s.ByCommand = make(map[byte]uint64, len(b.stats.ByCommand))

	for k, v := range b.stats.ByCommand {
		s.ByCommand[k] = v
	}

	return s
}

// Transfer runs one transaction against the target.
func (b *SimBus) Transfer(t *Transaction) error {
	if t.Lanes != Single && t.Lanes != Dual && t.Lanes != Quad {
		return errors.Errorf("%s: unsupported lane count %d", b.name, t.Lanes)
	}

	b.lock.Lock()
	b.seq++
	t.Seq = b.seq
	b.lock.Unlock()

	b.InvokeHook(HookCtx{
		Domain: b,
		Pos:    HookPosBeforeTransfer,
		Item:   t,
	})

	err := b.target.Serve(t)

	cycles := t.Cycles() + b.csHighCycles
	b.clock.Advance(b.freq.NCycles(cycles))
	b.count(t, cycles, err)

	if err != nil {
		return errors.Wrapf(err, "%s: %s", b.name, t)
	}

	b.InvokeHook(HookCtx{
		Domain: b,
		Pos:    HookPosAfterTransfer,
		Item:   t,
	})

	return nil
}

func (b *SimBus) count(t *Transaction, cycles uint64, err error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.stats.Transfers++
	b.stats.TxBytes += uint64(len(t.Tx))
	b.stats.RxBytes += uint64(len(t.Rx))
	b.stats.Cycles += cycles
	b.stats.ByCommand[t.Cmd]++

	if err != nil {
		b.stats.FailedCount++
	}
}
