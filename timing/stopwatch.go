package timing

import "time"

// A Stopwatch measures the time between Start and Stop in microseconds.
type Stopwatch interface {
	Start()
	Stop() uint64
}

// VirtualStopwatch measures virtual time on a Clock. It models a hardware
// timer that always costs a fixed overhead to start and stop, so that the
// caller has something to calibrate away.
type VirtualStopwatch struct {
	clock    *Clock
	overhead VTimeInSec
	start    VTimeInSec
	running  bool
}

// NewVirtualStopwatch creates a stopwatch over the given clock. Every
// Start/Stop pair adds overhead to the measured interval.
func NewVirtualStopwatch(clock *Clock, overhead VTimeInSec) *VirtualStopwatch {
	return &VirtualStopwatch{
		clock:    clock,
		overhead: overhead,
	}
}

// Start records the start time.
func (s *VirtualStopwatch) Start() {
	s.start = s.clock.Now()
	s.running = true
}

// Stop returns the microseconds since Start. Stop without Start returns 0.
func (s *VirtualStopwatch) Stop() uint64 {
	if !s.running {
		return 0
	}

	s.running = false
	s.clock.Advance(s.overhead)

	return (s.clock.Now() - s.start).Microseconds()
}

// WallStopwatch measures real elapsed time.
type WallStopwatch struct {
	start time.Time
}

// NewWallStopwatch creates a stopwatch backed by the system clock.
func NewWallStopwatch() *WallStopwatch {
	return &WallStopwatch{}
}

// Start records the start time.
func (s *WallStopwatch) Start() {
	s.start = time.Now()
}

// Stop returns the microseconds since Start.
func (s *WallStopwatch) Stop() uint64 {
	if s.start.IsZero() {
		return 0
	}

	elapsed := time.Since(s.start)
	s.start = time.Time{}

	return uint64(elapsed.Microseconds())
}
