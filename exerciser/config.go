package exerciser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/xid"

	logxi "github.com/mgutz/logxi/v1"
)

// Defaults of a run.
const (
	DefaultSize  = 640
	DefaultCount = 480
	DefaultValue = 0x00
	DefaultAddr  = 0x000
)

// ErrInvalidConfig is the cause of every configuration error.
var ErrInvalidConfig = errors.New("invalid exerciser config")

// Config determines the buffers and the addresses a run touches.
type Config struct {
	// Size is the length of the pattern and capture buffers.
	Size int

	// Count is the number of Size-byte chunks written and verified by the
	// page-boundary passes.
	Count int

	// Value fills the pattern of the first pass. The second pattern is its
	// bitwise complement.
	Value byte

	// Addr is the first device address used.
	Addr uint32
}

// DefaultConfig returns the configuration of the reference test: 480 chunks
// of 640 bytes starting at address 0, first filled with 0x00.
func DefaultConfig() Config {
	return Config{
		Size:  DefaultSize,
		Count: DefaultCount,
		Value: DefaultValue,
		Addr:  DefaultAddr,
	}
}

// TotalBytes returns the number of bytes covered by the page-boundary passes.
func (c Config) TotalBytes() int {
	return c.Size * c.Count
}

// Validate checks that the buffers are non-empty and that the chunk span
// fits in a 32-bit address space.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "size %d must be positive", c.Size)
	}

	if c.Count <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "count %d must be positive", c.Count)
	}

	end := uint64(c.Addr) + uint64(c.Size)*uint64(c.Count)
	if end > 1<<32 {
		return errors.Wrapf(ErrInvalidConfig,
			"span 0x%x + %d x %d exceeds the address space",
			c.Addr, c.Count, c.Size)
	}

	return nil
}

// Progress is reported when a pass starts and after every chunk of the
// page-boundary passes.
type Progress struct {
	RunID      string
	Pass       int
	Name       string
	Chunk      int
	Chunks     int
	Mismatches int
}

// ProgressFunc receives progress updates. It is called on the goroutine
// that runs the exerciser and should return quickly.
type ProgressFunc func(Progress)

// MismatchFunc receives every mismatch as it is found.
type MismatchFunc func(Mismatch)

type options struct {
	logger     Logger
	recorders  []Recorder
	progress   ProgressFunc
	onMismatch MismatchFunc
	runID      string
}

func defaultOptions() options {
	return options{
		logger: logxi.NewLogger(io.Discard, "exerciser"),
		runID:  xid.New().String(),
	}
}

// Option configures an Exerciser.
type Option func(*options)

// WithLogger sets where progress and results are written.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder adds a recorder that receives every pass and mismatch. It can
// be given more than once.
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		o.recorders = append(o.recorders, recorder)
	}
}

// WithProgress sets a progress callback.
func WithProgress(f ProgressFunc) Option {
	return func(o *options) {
		o.progress = f
	}
}

// WithMismatchHandler sets a callback that sees every mismatch.
func WithMismatchHandler(f MismatchFunc) Option {
	return func(o *options) {
		o.onMismatch = f
	}
}

// WithRunID overrides the generated run ID.
func WithRunID(id string) Option {
	return func(o *options) {
		o.runID = id
	}
}
