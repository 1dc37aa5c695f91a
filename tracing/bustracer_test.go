package tracing

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/spi"
	"github.com/sarchlab/sramcheck/timing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type echoTarget struct {
	fail bool
}

func (t *echoTarget) Serve(tx *spi.Transaction) error {
	if t.fail {
		return errors.New("no response")
	}

	for i := range tx.Rx {
		tx.Rx[i] = byte(i)
	}

	return nil
}

type taskRecorder struct {
	started []Task
	ended   []Task
}

func (r *taskRecorder) StartTask(t Task) { r.started = append(r.started, t) }
func (r *taskRecorder) EndTask(t Task)   { r.ended = append(r.ended, t) }

var _ = Describe("BusTracer", func() {
	var (
		target   *echoTarget
		bus      *spi.SimBus
		recorder *taskRecorder
		tracer   *BusTracer
	)

	BeforeEach(func() {
		target = &echoTarget{}
		bus = spi.MakeBuilder().
			WithTarget(target).
			WithFreq(1 * timing.MHz).
			WithCSHighCycles(0).
			Build("Bus")
		recorder = &taskRecorder{}
		tracer = NewBusTracer(bus, bus.Name(),
			map[byte]string{0x03: "Read"}, recorder)
		bus.AcceptHook(tracer)
	})

	It("should turn a transfer into a task", func() {
		tx := spi.NewTransaction(0x03).WithAddr(0).WithRx(make([]byte, 4))

		Expect(bus.Transfer(tx)).To(Succeed())

		Expect(recorder.started).To(HaveLen(1))
		Expect(recorder.ended).To(HaveLen(1))

		task := recorder.ended[0]
		Expect(task.ID).To(Equal(recorder.started[0].ID))
		Expect(task.Kind).To(Equal(KindRead))
		Expect(task.What).To(Equal("Read"))
		Expect(task.Where).To(Equal("Bus"))
		Expect(task.Bytes).To(Equal(4))
		Expect(task.StartTime).To(Equal(timing.VTimeInSec(0)))
		Expect(float64(task.EndTime)).To(BeNumerically("~", 64e-6, 1e-12))
		Expect(tracer.InflightCount()).To(Equal(0))
	})

	It("should classify writes and control transfers", func() {
		Expect(bus.Transfer(
			spi.NewTransaction(0x02).WithAddr(0).WithTx([]byte{1}),
		)).To(Succeed())
		Expect(bus.Transfer(spi.NewTransaction(0x66))).To(Succeed())

		Expect(recorder.ended[0].Kind).To(Equal(KindWrite))
		Expect(recorder.ended[0].What).To(Equal("0x02"))
		Expect(recorder.ended[1].Kind).To(Equal(KindControl))
		Expect(recorder.ended[0].ID).NotTo(Equal(recorder.ended[1].ID))
	})

	It("should leave failed transfers in flight", func() {
		target.fail = true

		Expect(bus.Transfer(spi.NewTransaction(0x66))).NotTo(Succeed())

		Expect(recorder.started).To(HaveLen(1))
		Expect(recorder.ended).To(BeEmpty())
		Expect(tracer.InflightCount()).To(Equal(1))
	})

	It("should ignore hooks that carry no transaction", func() {
		tracer.Func(spi.HookCtx{Pos: spi.HookPosBeforeTransfer, Item: 1})

		Expect(recorder.started).To(BeEmpty())
	})
})

var _ = Describe("AverageTimeTracer", func() {
	It("should average the selected tasks", func() {
		t := NewAverageTimeTracer(KindIs(KindRead))

		t.StartTask(Task{ID: "1", Kind: KindRead, StartTime: 0, Bytes: 8})
		t.EndTask(Task{ID: "1", EndTime: 2})
		t.StartTask(Task{ID: "2", Kind: KindRead, StartTime: 2, Bytes: 8})
		t.EndTask(Task{ID: "2", EndTime: 6})
		t.StartTask(Task{ID: "3", Kind: KindWrite, StartTime: 6})
		t.EndTask(Task{ID: "3", EndTime: 100})

		Expect(t.TotalCount()).To(Equal(uint64(2)))
		Expect(t.TotalBytes()).To(Equal(uint64(16)))
		Expect(t.AverageTime()).To(Equal(timing.VTimeInSec(3)))
	})
})

var _ = Describe("JSONTracer", func() {
	It("should write completed tasks as a JSON array", func() {
		buf := new(bytes.Buffer)
		t, err := NewJSONTracerWithWriter(buf, nil)
		Expect(err).NotTo(HaveOccurred())

		t.StartTask(Task{ID: "a", Kind: KindRead, StartTime: 1})
		t.StartTask(Task{ID: "b", Kind: KindWrite, StartTime: 2})
		t.EndTask(Task{ID: "a", EndTime: 3})
		t.EndTask(Task{ID: "b", EndTime: 4})
		t.EndTask(Task{ID: "unknown", EndTime: 5})
		Expect(t.Finish()).To(Succeed())
		Expect(t.Finish()).To(Succeed())

		var tasks []Task
		Expect(json.Unmarshal(buf.Bytes(), &tasks)).To(Succeed())
		Expect(tasks).To(HaveLen(2))
		Expect(tasks[0].ID).To(Equal("a"))
		Expect(tasks[0].EndTime).To(Equal(timing.VTimeInSec(3)))
		Expect(tasks[1].Kind).To(Equal(KindWrite))
	})

	It("should write an empty array when nothing completes", func() {
		buf := new(bytes.Buffer)
		t, _ := NewJSONTracerWithWriter(buf, KindIs(KindRead))

		t.StartTask(Task{ID: "a", Kind: KindWrite})
		t.EndTask(Task{ID: "a"})
		Expect(t.Finish()).To(Succeed())

		var tasks []Task
		Expect(json.Unmarshal(buf.Bytes(), &tasks)).To(Succeed())
		Expect(tasks).To(BeEmpty())
	})
})
