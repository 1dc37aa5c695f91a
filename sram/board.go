package sram

import (
	"github.com/sarchlab/sramcheck/spi"
	"github.com/sarchlab/sramcheck/timing"
)

// StopwatchOverhead is the fixed cost of starting and stopping the
// board's timer.
const StopwatchOverhead timing.VTimeInSec = 1e-6

// A Board wires a chip to a host through a simulated bus that shares one
// virtual clock with the host's stopwatch.
type Board struct {
	Clock     *timing.Clock
	Chip      *Chip
	Bus       *spi.SimBus
	Driver    *Driver
	Stopwatch *timing.VirtualStopwatch
}

// NewBoard connects chip to a new bus running at freq.
func NewBoard(chip *Chip, freq timing.Freq) *Board {
	clock := timing.NewClock()

	bus := spi.MakeBuilder().
		WithFreq(freq).
		WithClock(clock).
		WithTarget(chip).
		Build(chip.Name() + ".Bus")

	return &Board{
		Clock:     clock,
		Chip:      chip,
		Bus:       bus,
		Driver:    NewDriver(bus, chip.PageSize),
		Stopwatch: timing.NewVirtualStopwatch(clock, StopwatchOverhead),
	}
}
