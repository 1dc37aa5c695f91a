package timing

import (
	"log"
	"sync"
)

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	Now() VTimeInSec
}

// A Clock keeps the virtual time of a simulated board. Time only moves
// forward when a simulated component charges a duration to it.
type Clock struct {
	lock sync.RWMutex
	now  VTimeInSec
}

// NewClock creates a clock at time 0.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current virtual time.
func (c *Clock) Now() VTimeInSec {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d VTimeInSec) {
	if d < 0 {
		log.Panic("cannot advance the clock backwards")
	}

	c.lock.Lock()
	c.now += d
	c.lock.Unlock()
}
