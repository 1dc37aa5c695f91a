package datarecording

import (
	"github.com/sarchlab/sramcheck/exerciser"

	logxi "github.com/mgutz/logxi/v1"
)

// Table names used by PassRecorder.
const (
	PassTable     = "pass"
	MismatchTable = "mismatch"
	RunTable      = "run"
)

// PassRow is one pass of one run.
type PassRow struct {
	RunID      string
	Pass       int
	Name       string
	Op         string
	Mode       string
	Chunks     int
	Bytes      int
	ElapsedUS  int64
	Mismatches int
	Errors     int
	FirstError string
}

// MismatchRow is one byte that did not read back as written.
type MismatchRow struct {
	RunID      string
	Pass       int
	Chunk      int
	ByteOffset int
	Addr       int64
	Expected   int
	Actual     int
}

// RunRow summarizes a run.
type RunRow struct {
	RunID          string
	Size           int
	Count          int
	Value          int
	Addr           int64
	ManufacturerID int
	KGD            int
	Density        int
	ExtendedID     int
	OverheadUS     int64
	FillUS         int64
	Mismatches     int
	Percent        float64
	Passed         bool
}

// PassRecorder stores exerciser observations through a DataRecorder.
type PassRecorder struct {
	recorder DataRecorder
	log      logxi.Logger
}

var _ exerciser.Recorder = (*PassRecorder)(nil)

// NewPassRecorder creates the tables and returns a recorder that writes to
// them.
func NewPassRecorder(r DataRecorder, log logxi.Logger) (*PassRecorder, error) {
	for name, sample := range map[string]any{
		PassTable:     PassRow{},
		MismatchTable: MismatchRow{},
		RunTable:      RunRow{},
	} {
		if err := r.CreateTable(name, sample); err != nil {
			return nil, err
		}
	}

	return &PassRecorder{recorder: r, log: log}, nil
}

// RecordPass stores a pass.
func (r *PassRecorder) RecordPass(runID string, p exerciser.PassResult) {
	row := PassRow{
		RunID:      runID,
		Pass:       p.Number,
		Name:       p.Name,
		Op:         p.Op.String(),
		Mode:       p.Mode.String(),
		Chunks:     p.Chunks,
		Bytes:      p.Bytes,
		ElapsedUS:  int64(p.ElapsedUS),
		Mismatches: p.Mismatches,
		Errors:     p.Errors,
	}

	if p.Err != nil {
		row.FirstError = p.Err.Error()
	}

	r.insert(PassTable, row)
}

// RecordMismatch stores a mismatch.
func (r *PassRecorder) RecordMismatch(runID string, m exerciser.Mismatch) {
	r.insert(MismatchTable, MismatchRow{
		RunID:      runID,
		Pass:       m.Pass,
		Chunk:      m.Chunk,
		ByteOffset: m.Offset,
		Addr:       int64(m.Addr),
		Expected:   int(m.Expected),
		Actual:     int(m.Actual),
	})
}

// RecordResult stores the summary of a run and flushes.
func (r *PassRecorder) RecordResult(res *exerciser.Result) {
	r.insert(RunTable, RunRow{
		RunID:          res.RunID,
		Size:           res.Config.Size,
		Count:          res.Config.Count,
		Value:          int(res.Config.Value),
		Addr:           int64(res.Config.Addr),
		ManufacturerID: int(res.Identity.ManufacturerID),
		KGD:            int(res.Identity.KGD),
		Density:        int(res.Identity.Density),
		ExtendedID:     int(res.Identity.ExtendedID),
		OverheadUS:     int64(res.OverheadUS),
		FillUS:         int64(res.FillUS),
		Mismatches:     res.Mismatches,
		Percent:        res.MismatchPercent(),
		Passed:         res.Passed,
	})

	if err := r.recorder.Flush(); err != nil {
		_ = r.log.Error("flushing records", "err", err)
	}
}

// Recording must not change the outcome of a run, so failures are only
// logged.
func (r *PassRecorder) insert(tableName string, row any) {
	if err := r.recorder.InsertData(tableName, row); err != nil {
		_ = r.log.Error("recording", "table", tableName, "err", err)
	}
}
