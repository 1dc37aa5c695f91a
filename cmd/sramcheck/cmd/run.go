package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/datarecording"
	"github.com/sarchlab/sramcheck/exerciser"
	"github.com/sarchlab/sramcheck/monitoring"
	"github.com/sarchlab/sramcheck/spi"
	"github.com/sarchlab/sramcheck/sram"
	"github.com/sarchlab/sramcheck/timing"
	"github.com/sarchlab/sramcheck/tracing"
	"github.com/spf13/cobra"

	logxi "github.com/mgutz/logxi/v1"
)

type runOptions struct {
	size  int
	count int
	value uint8
	addr  uint32
	freq  string

	badDie     bool
	flipAddr   uint32
	flipBit    int
	flipFast   bool
	flipSkip   int
	stuckAddr  uint32
	stuckBit   int
	stuckValue bool

	wallClock  bool
	record     bool
	recordFile string
	trace      bool
	traceFile  string
	monitor    bool
	port       int
	open       bool
	verbose    bool
}

func newRunCmd() *cobra.Command {
	o := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the nine write/read/verify passes.",
		Long: `Run writes a constant pattern, its complement and a ramp to the ` +
			`chip over the single-lane and quad-lane paths, reads every ` +
			`pattern back and counts the bytes that differ. The command ` +
			`fails if any byte differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}

	def := exerciser.DefaultConfig()
	f := cmd.Flags()
	f.IntVar(&o.size, "size", def.Size, "bytes per chunk")
	f.IntVar(&o.count, "count", def.Count, "chunks written across page boundaries")
	f.Uint8Var(&o.value, "value", def.Value, "constant pattern byte")
	f.Uint32Var(&o.addr, "addr", def.Addr, "start address")
	f.StringVar(&o.freq, "freq", "60MHz", "bus clock")

	f.BoolVar(&o.badDie, "bad-die", false, "make the chip report a failing KGD code")
	f.Uint32Var(&o.flipAddr, "flip-addr", 0, "address of the byte to corrupt on read")
	f.IntVar(&o.flipBit, "flip-bit", -1, "bit to flip at --flip-addr, -1 to disable")
	f.BoolVar(&o.flipFast, "flip-fast", false, "corrupt a quad read instead of a single-lane read")
	f.IntVar(&o.flipSkip, "flip-skip", 0, "matching reads to let through before the flip")
	f.Uint32Var(&o.stuckAddr, "stuck-addr", 0, "address of a stuck bit")
	f.IntVar(&o.stuckBit, "stuck-bit", -1, "bit stuck at --stuck-addr, -1 to disable")
	f.BoolVar(&o.stuckValue, "stuck-value", false, "level of the stuck bit")

	f.BoolVar(&o.wallClock, "wall-clock", false, "time passes with the host clock")
	f.BoolVar(&o.record, "record", false, "record the results in SQLite")
	f.StringVar(&o.recordFile, "record-file", "", "SQLite file name without extension")
	f.BoolVar(&o.trace, "trace", false, "trace bus transfers to JSON")
	f.StringVar(&o.traceFile, "trace-file", "", "trace file name")
	f.BoolVar(&o.monitor, "monitor", false, "serve progress and results over HTTP")
	f.IntVar(&o.port, "port", 0, "monitor port, 0 picks a free one")
	f.BoolVar(&o.open, "open", false, "open the monitor in a browser")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log every step")

	return cmd
}

type runSetup struct {
	board   *sram.Board
	flip    *spi.BitFlipHook
	reads   *tracing.AverageTimeTracer
	writes  *tracing.AverageTimeTracer
	monitor *monitoring.Monitor
	dbFile  string
	opts    []exerciser.Option
}

func run(ctx context.Context, out io.Writer, o *runOptions) error {
	logger := logxi.New("sramcheck")
	if o.verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	s, err := setup(o, logger)
	if err != nil {
		return err
	}

	var stopwatch exerciser.Stopwatch = s.board.Stopwatch
	if o.wallClock {
		stopwatch = timing.NewWallStopwatch()
	}

	cfg := exerciser.Config{
		Size:  o.size,
		Count: o.count,
		Value: o.value,
		Addr:  o.addr,
	}

	res, err := exerciser.New(s.board.Driver, stopwatch, cfg, s.opts...).Run()
	if err != nil {
		return err
	}

	if err := printSummary(out, res, s); err != nil {
		return err
	}

	if s.monitor != nil {
		waitForInterrupt(ctx, out)
	}

	if !res.Passed {
		return errors.Errorf("%d mismatches", res.Mismatches)
	}

	return nil
}

func setup(o *runOptions, logger logxi.Logger) (*runSetup, error) {
	freq, err := timing.ParseFreq(o.freq)
	if err != nil {
		return nil, err
	}

	b := sram.MakeBuilder()
	if o.badDie {
		b = b.WithIdentity(sram.ManufacturerID, sram.KGDFail, sram.Density64Mb, 0)
	}

	chip := b.Build("PSRAM")
	if o.stuckBit >= 0 {
		chip.StickBit(o.stuckAddr, uint8(o.stuckBit), o.stuckValue)
	}

	s := &runSetup{
		board:  sram.NewBoard(chip, freq),
		reads:  tracing.NewAverageTimeTracer(tracing.KindIs(tracing.KindRead)),
		writes: tracing.NewAverageTimeTracer(tracing.KindIs(tracing.KindWrite)),
		opts:   []exerciser.Option{exerciser.WithLogger(logger)},
	}

	if o.flipBit >= 0 {
		s.flip = &spi.BitFlipHook{
			Cmd:  sram.CmdRead,
			Addr: o.flipAddr,
			Bit:  uint8(o.flipBit),
			Skip: o.flipSkip,
		}
		if o.flipFast {
			s.flip.Cmd = sram.CmdQuadRead
		}

		s.board.Bus.AcceptHook(s.flip)
	}

	tracers := []tracing.Tracer{s.reads, s.writes}

	if o.trace {
		jt, err := tracing.NewJSONTracer(o.traceFile, nil)
		if err != nil {
			return nil, err
		}

		tracers = append(tracers, jt)
	}

	s.board.Bus.AcceptHook(tracing.NewBusTracer(
		s.board.Bus, s.board.Bus.Name(), sram.CommandNames, tracers...))

	if o.record {
		rec, err := datarecording.New(o.recordFile)
		if err != nil {
			return nil, err
		}

		pr, err := datarecording.NewPassRecorder(rec, logger)
		if err != nil {
			return nil, err
		}

		s.dbFile = rec.Filename()

		s.opts = append(s.opts, exerciser.WithRecorder(pr))
	}

	if o.monitor {
		if err := s.startMonitor(o); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *runSetup) startMonitor(o *runOptions) error {
	m := monitoring.NewMonitor().WithPortNumber(o.port)
	m.RegisterTimeTeller(s.board.Clock)
	m.RegisterDevice(s.board.Chip.Name(), s.board.Chip)
	m.RegisterDevice(s.board.Bus.Name(), s.board.Bus)
	m.RegisterDevice("Driver", s.board.Driver)

	url, err := m.StartServer()
	if err != nil {
		return err
	}

	if o.open {
		if err := monitoring.OpenInBrowser(url); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open %s: %v\n", url, err)
		}
	}

	s.monitor = m
	s.opts = append(s.opts,
		exerciser.WithRecorder(m),
		exerciser.WithProgress(m.UpdateProgress))

	return nil
}

func waitForInterrupt(ctx context.Context, out io.Writer) {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintln(out, "Monitor is still serving. Press Ctrl+C to exit.")
	<-ctx.Done()
}

func printSummary(out io.Writer, res *exerciser.Result, s *runSetup) error {
	fmt.Fprintf(out, "RAM ID: %s\n", res.Identity)
	fmt.Fprintf(out, "Stopwatch overhead: %d us, pattern fill: %d us\n\n",
		res.OverheadUS, res.FillUS)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PASS\tNAME\tMODE\tBYTES\tTIME(us)\tMB/s\tMISMATCHES\tERRORS")

	for _, p := range res.Passes {
		rate := "-"
		if p.ElapsedUS > 0 {
			rate = fmt.Sprintf("%.2f", float64(p.Bytes)/float64(p.ElapsedUS))
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			p.Number, p.Name, p.Mode, p.Bytes, p.ElapsedUS, rate,
			p.Mismatches, p.Errors)
	}

	if err := w.Flush(); err != nil {
		return err
	}

	stats := s.board.Bus.Stats()
	fmt.Fprintf(out, "\nBus: %d transfers, %d bytes out, %d bytes in, "+
		"%d page splits, virtual time %.6f s\n",
		stats.Transfers, stats.TxBytes, stats.RxBytes,
		s.board.Driver.Splits, float64(s.board.Clock.Now()))
	fmt.Fprintf(out, "Average read transfer %.3f us over %d, "+
		"write transfer %.3f us over %d\n",
		float64(s.reads.AverageTime())*1e6, s.reads.TotalCount(),
		float64(s.writes.AverageTime())*1e6, s.writes.TotalCount())

	if s.dbFile != "" {
		fmt.Fprintf(out, "Results recorded in %s\n", s.dbFile)
	}

	if s.flip != nil {
		fmt.Fprintf(out, "Injected %d bit flip(s)\n", s.flip.Flipped())
	}

	if res.Passed {
		fmt.Fprintln(out, "\nSuccess!")
	} else {
		fmt.Fprintf(out, "\nFailed: %d mismatches (%.6f%%)\n",
			res.Mismatches, res.MismatchPercent())
	}

	return nil
}
