package exerciser

import (
	"github.com/pkg/errors"
)

// An Exerciser runs the write/read/verify sequence against one device.
type Exerciser struct {
	device    Device
	stopwatch Stopwatch
	config    Config
	options

	overhead   uint64
	mismatches int
	pattern    []byte
	capture    []byte
	result     *Result
}

// New creates an Exerciser. The device and the stopwatch are used
// exclusively by the exerciser while it runs.
func New(
	device Device,
	stopwatch Stopwatch,
	config Config,
	opts ...Option,
) *Exerciser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Exerciser{
		device:    device,
		stopwatch: stopwatch,
		config:    config,
		options:   o,
	}
}

// RunID returns the ID that tags the records of this exerciser.
func (e *Exerciser) RunID() string {
	return e.runID
}

// Run executes all nine passes and returns the verdict. The error is
// non-nil only when the configuration is invalid or the device cannot be
// identified; in both cases no pass has run.
func (e *Exerciser) Run() (*Result, error) {
	cfg := e.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e.logger.Info("QSPI SRAM test",
		"addr", cfg.Addr, "size", cfg.Size, "count", cfg.Count)

	if err := e.device.Init(); err != nil {
		_ = e.logger.Warn("device init reported an error", "err", err)
	}

	id, err := e.device.ReadIdentity()
	if err != nil {
		_ = e.logger.Error("failed to read expected SRAM ID", "err", err)
		return nil, errors.Wrap(err, "identifying device")
	}

	e.logger.Info("RAM ID",
		"MFID", id.ManufacturerID, "KGD", id.KGD,
		"density", id.Density, "EID", id.ExtendedID)

	e.stopwatch.Start()
	e.overhead = e.stopwatch.Stop()

	e.mismatches = 0
	e.pattern = make([]byte, cfg.Size)
	e.capture = make([]byte, cfg.Size)
	e.result = &Result{
		RunID:      e.runID,
		Config:     cfg,
		Identity:   id,
		OverheadUS: e.overhead,
	}

	e.stopwatch.Start()
	Fill(e.pattern, cfg.Value)
	e.result.FillUS = e.elapsed()
	e.logger.Info("(Benchmark) wrote internal SRAM",
		"bytes", cfg.Size, "us", e.result.FillUS)

	e.runSingleChunkPasses()
	e.runPageBoundaryPasses()

	return e.finish(), nil
}

func (e *Exerciser) runSingleChunkPasses() {
	cfg := e.config

	e.write(1, "Standard SPI write", Slow)
	e.read(2, "Validate w/ standard SPI", Slow)
	e.read(3, "Validate w/ QSPI", Fast)

	Fill(e.pattern, Complement(cfg.Value))

	e.write(4, "QSPI write", Fast)
	e.read(5, "Validate w/ standard SPI", Slow)
	e.read(6, "Validate w/ QSPI", Fast)
}

func (e *Exerciser) runPageBoundaryPasses() {
	Ramp(e.pattern)

	e.writeChunks(7, "QSPI writing across page boundaries", Fast)
	e.readChunks(8, "Validating with standard SPI", Slow)
	e.readChunks(9, "Validating with QSPI", Fast)
}

func (e *Exerciser) finish() *Result {
	r := e.result
	r.Mismatches = e.mismatches
	r.Passed = e.mismatches == 0

	if r.Passed {
		e.logger.Info("Success!")
	} else {
		_ = e.logger.Error("Failed",
			"mismatches", r.Mismatches,
			"percent", r.MismatchPercent())
	}

	for _, rec := range e.recorders {
		rec.RecordResult(r)
	}

	return r
}

// elapsed stops the stopwatch and removes the calibrated overhead.
func (e *Exerciser) elapsed() uint64 {
	raw := e.stopwatch.Stop()
	if raw < e.overhead {
		return 0
	}

	return raw - e.overhead
}

func (e *Exerciser) writeFunc(mode AccessMode) func(uint32, []byte) error {
	if mode == Fast {
		return e.device.WriteFast
	}

	return e.device.Write
}

func (e *Exerciser) readFunc(mode AccessMode) func(uint32, []byte) error {
	if mode == Fast {
		return e.device.ReadFast
	}

	return e.device.ReadSlow
}

func (e *Exerciser) write(n int, name string, mode AccessMode) {
	p := e.startPass(n, name, OpWrite, mode, 1)

	e.stopwatch.Start()
	err := e.writeFunc(mode)(e.config.Addr, e.pattern)
	p.ElapsedUS = e.elapsed()
	p.addErr(err)

	e.endPass(p)
}

func (e *Exerciser) read(n int, name string, mode AccessMode) {
	p := e.startPass(n, name, OpRead, mode, 1)
	checkpoint := e.mismatches

	clear(e.capture)

	e.stopwatch.Start()
	err := e.readFunc(mode)(e.config.Addr, e.capture)
	p.ElapsedUS = e.elapsed()
	p.addErr(err)

	e.compare(p, 0, e.config.Addr)
	p.Mismatches = e.mismatches - checkpoint

	e.endPass(p)
}

func (e *Exerciser) writeChunks(n int, name string, mode AccessMode) {
	p := e.startPass(n, name, OpWrite, mode, e.config.Count)
	write := e.writeFunc(mode)
	addr := e.config.Addr

	e.stopwatch.Start()

	for i := 0; i < e.config.Count; i++ {
		p.addErr(write(addr, e.pattern))
		addr += uint32(e.config.Size)

		e.reportProgress(p, i+1)
	}

	p.ElapsedUS = e.elapsed()

	e.endPass(p)
}

func (e *Exerciser) readChunks(n int, name string, mode AccessMode) {
	p := e.startPass(n, name, OpRead, mode, e.config.Count)
	read := e.readFunc(mode)
	addr := e.config.Addr
	checkpoint := e.mismatches

	for i := 0; i < e.config.Count; i++ {
		clear(e.capture)

		e.stopwatch.Start()
		err := read(addr, e.capture)
		p.ElapsedUS += e.elapsed()
		p.addErr(err)

		e.compare(p, i, addr)
		addr += uint32(e.config.Size)

		e.reportProgress(p, i+1)
	}

	p.Mismatches = e.mismatches - checkpoint

	e.endPass(p)
}

// compare checks the capture buffer against the pattern and adds every
// differing byte to the run total.
func (e *Exerciser) compare(p *PassResult, chunk int, base uint32) {
	e.mismatches += Compare(e.pattern, e.capture,
		func(offset int, want, got byte) {
			m := Mismatch{
				Pass:     p.Number,
				Chunk:    chunk,
				Offset:   offset,
				Addr:     base + uint32(offset),
				Expected: want,
				Actual:   got,
			}

			_ = e.logger.Warn("Value mismatch",
				"pass", m.Pass, "addr", m.Addr,
				"expected", m.Expected, "actual", m.Actual)

			if e.onMismatch != nil {
				e.onMismatch(m)
			}

			for _, rec := range e.recorders {
				rec.RecordMismatch(e.runID, m)
			}
		})
}

func (e *Exerciser) startPass(
	n int,
	name string,
	op Operation,
	mode AccessMode,
	chunks int,
) *PassResult {
	e.logger.Info("Test", "pass", n, "name", name)

	p := &PassResult{
		Number: n,
		Name:   name,
		Op:     op,
		Mode:   mode,
		Chunks: chunks,
		Bytes:  chunks * e.config.Size,
	}

	e.reportProgress(p, 0)

	return p
}

func (e *Exerciser) endPass(p *PassResult) {
	switch {
	case p.Err != nil:
		_ = e.logger.Warn("Done with device errors",
			"pass", p.Number, "errors", p.Errors, "first", p.Err)
	case p.Op == OpRead && p.Mismatches > 0:
		_ = e.logger.Warn("Failed",
			"pass", p.Number, "mismatches", p.Mismatches)
	default:
		e.logger.Info("Done",
			"pass", p.Number, "bytes", p.Bytes, "us", p.ElapsedUS)
	}

	if p.Chunks == 1 {
		e.reportProgress(p, 1)
	}

	e.result.Passes = append(e.result.Passes, *p)

	for _, rec := range e.recorders {
		rec.RecordPass(e.runID, *p)
	}
}

func (e *Exerciser) reportProgress(p *PassResult, chunk int) {
	if e.progress == nil {
		return
	}

	e.progress(Progress{
		RunID:      e.runID,
		Pass:       p.Number,
		Name:       p.Name,
		Chunk:      chunk,
		Chunks:     p.Chunks,
		Mismatches: e.mismatches,
	})
}

func (p *PassResult) addErr(err error) {
	if err == nil {
		return
	}

	p.Errors++
	if p.Err == nil {
		p.Err = err
	}
}
