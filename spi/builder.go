package spi

import (
	"log"

	"github.com/sarchlab/sramcheck/timing"
)

// Builder can build SimBus instances.
type Builder struct {
	freq         timing.Freq
	clock        *timing.Clock
	target       Target
	csHighCycles uint64
}

// MakeBuilder returns a new Builder
func MakeBuilder() Builder {
	return Builder{
		freq:         60 * timing.MHz,
		csHighCycles: 2,
	}
}

// WithFreq sets the bus clock frequency.
func (b Builder) WithFreq(freq timing.Freq) Builder {
	b.freq = freq
	return b
}

// WithClock sets the clock that transfers are charged to.
func (b Builder) WithClock(clock *timing.Clock) Builder {
	b.clock = clock
	return b
}

// WithTarget sets the device at the other end of the bus.
func (b Builder) WithTarget(target Target) Builder {
	b.target = target
	return b
}

// WithCSHighCycles sets the number of cycles charged for chip-select
// deselect between transactions.
func (b Builder) WithCSHighCycles(cycles uint64) Builder {
	b.csHighCycles = cycles
	return b
}

// Build creates a new SimBus.
func (b Builder) Build(name string) *SimBus {
	if b.target == nil {
		log.Panic("spi bus needs a target")
	}

	if b.freq <= 0 {
		log.Panic("spi bus frequency must be positive")
	}

	clock := b.clock
	if clock == nil {
		clock = timing.NewClock()
	}

	return &SimBus{
		HookableBase: NewHookableBase(),
		name:         name,
		target:       b.target,
		clock:        clock,
		freq:         b.freq,
		csHighCycles: b.csHighCycles,
		stats: Stats{
			ByCommand: make(map[byte]uint64),
		},
	}
}
