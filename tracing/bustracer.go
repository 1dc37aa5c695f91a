package tracing

import (
	"fmt"
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/sramcheck/spi"
	"github.com/sarchlab/sramcheck/timing"
)

// Task kinds produced by BusTracer.
const (
	KindRead    = "read"
	KindWrite   = "write"
	KindControl = "control"
)

// BusTracer is an spi hook that reports every transfer as a task.
type BusTracer struct {
	timeTeller timing.TimeTeller
	where      string
	prefix     string
	names      map[byte]string
	tracers    []Tracer

	lock     sync.Mutex
	inflight map[uint64]Task
}

// NewBusTracer creates a tracer for a bus. names gives readable names to
// command bytes; unnamed commands are printed in hex.
func NewBusTracer(
	timeTeller timing.TimeTeller,
	where string,
	names map[byte]string,
	tracers ...Tracer,
) *BusTracer {
	return &BusTracer{
		timeTeller: timeTeller,
		where:      where,
		prefix:     xid.New().String(),
		names:      names,
		tracers:    tracers,
		inflight:   make(map[uint64]Task),
	}
}

// Func implements spi.Hook.
func (t *BusTracer) Func(ctx spi.HookCtx) {
	tx, ok := ctx.Item.(*spi.Transaction)
	if !ok {
		return
	}

	switch ctx.Pos {
	case spi.HookPosBeforeTransfer:
		t.start(tx)
	case spi.HookPosAfterTransfer:
		t.end(tx)
	}
}

func (t *BusTracer) start(tx *spi.Transaction) {
	task := Task{
		ID:        fmt.Sprintf("%s.%d", t.prefix, tx.Seq),
		Kind:      kindOf(tx),
		What:      t.nameOf(tx.Cmd),
		Where:     t.where,
		StartTime: t.timeTeller.Now(),
		Bytes:     len(tx.Tx) + len(tx.Rx),
		Detail:    tx,
	}

	t.lock.Lock()
	t.inflight[tx.Seq] = task
	t.lock.Unlock()

	for _, tracer := range t.tracers {
		tracer.StartTask(task)
	}
}

func (t *BusTracer) end(tx *spi.Transaction) {
	t.lock.Lock()
	task, ok := t.inflight[tx.Seq]
	delete(t.inflight, tx.Seq)
	t.lock.Unlock()

	if !ok {
		return
	}

	task.EndTime = t.timeTeller.Now()

	for _, tracer := range t.tracers {
		tracer.EndTask(task)
	}
}

// InflightCount returns the number of transfers that started but have not
// completed.
func (t *BusTracer) InflightCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return len(t.inflight)
}

func (t *BusTracer) nameOf(cmd byte) string {
	if name, ok := t.names[cmd]; ok {
		return name
	}

	return fmt.Sprintf("0x%02x", cmd)
}

func kindOf(tx *spi.Transaction) string {
	switch {
	case len(tx.Tx) > 0:
		return KindWrite
	case len(tx.Rx) > 0:
		return KindRead
	default:
		return KindControl
	}
}
