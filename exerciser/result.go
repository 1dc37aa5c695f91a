package exerciser

import "fmt"

// AccessMode selects one of the two paths to the device.
type AccessMode int

// Access modes.
const (
	Slow AccessMode = iota
	Fast
)

func (m AccessMode) String() string {
	if m == Fast {
		return "fast"
	}

	return "slow"
}

// Operation is what a pass does to the device.
type Operation int

// Operations.
const (
	OpWrite Operation = iota
	OpRead
)

func (o Operation) String() string {
	if o == OpRead {
		return "read"
	}

	return "write"
}

// PassResult is what one pass observed.
type PassResult struct {
	Number    int
	Name      string
	Op        Operation
	Mode      AccessMode
	Chunks    int
	Bytes     int
	ElapsedUS uint64

	// Mismatches found by this pass only.
	Mismatches int

	// Errors returned by the device during the pass. The first one is kept
	// in Err.
	Errors int
	Err    error
}

// Mismatch is one byte that did not read back as written.
type Mismatch struct {
	Pass     int
	Chunk    int
	Offset   int
	Addr     uint32
	Expected byte
	Actual   byte
}

func (m Mismatch) String() string {
	return fmt.Sprintf("addr 0x%x: expected 0x%02x but got 0x%02x",
		m.Addr, m.Expected, m.Actual)
}

// Result summarizes a run.
type Result struct {
	RunID    string
	Config   Config
	Identity Identity

	// OverheadUS is the stopwatch cost subtracted from every sample.
	OverheadUS uint64

	// FillUS is the time to fill the pattern buffer in host memory, a
	// baseline to compare the device passes against.
	FillUS uint64

	Passes []PassResult

	Mismatches int
	Passed     bool
}

// MismatchPercent relates the total mismatches to the bytes covered by the
// page-boundary passes.
func (r *Result) MismatchPercent() float64 {
	total := r.Config.TotalBytes()
	if total == 0 {
		return 0
	}

	return float64(r.Mismatches) / float64(total) * 100
}

// Pass returns the result of pass n, counting from 1.
func (r *Result) Pass(n int) (PassResult, bool) {
	for _, p := range r.Passes {
		if p.Number == n {
			return p, true
		}
	}

	return PassResult{}, false
}
