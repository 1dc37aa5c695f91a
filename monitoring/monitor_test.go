package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sarchlab/sramcheck/exerciser"
	"github.com/sarchlab/sramcheck/timing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleDevice struct {
	Name    string
	Served  uint64
	Counter struct {
		Reads  int
		Writes int
	}
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
		h http.Handler
	)

	BeforeEach(func() {
		m = NewMonitor()
		h = m.Handler()
	})

	It("should ignore reserved port numbers", func() {
		Expect(m.WithPortNumber(80).portNumber).To(Equal(0))
		Expect(m.WithPortNumber(8080).portNumber).To(Equal(8080))
	})

	It("should report the virtual time", func() {
		clock := timing.NewClock()
		clock.Advance(1.5)
		m.RegisterTimeTeller(clock)

		w := get(h, "/api/now")

		var rsp struct{ Now float64 }
		Expect(json.Unmarshal(w.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.Now).To(Equal(1.5))
	})

	It("should create and complete progress bars", func() {
		bar := m.CreateProgressBar("bar", 10)
		bar.IncrementFinished(3)
		bar.IncrementFinished(20)

		var bars []ProgressBar
		Expect(json.Unmarshal(get(h, "/api/progress").Body.Bytes(), &bars)).
			To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Finished).To(Equal(uint64(10)))

		m.CompleteProgressBar(bar)

		Expect(m.progressBars).To(BeEmpty())
	})

	It("should keep one bar for the running pass", func() {
		m.UpdateProgress(exerciser.Progress{Pass: 7, Name: "write ramp", Chunks: 4})
		m.UpdateProgress(exerciser.Progress{
			Pass: 7, Chunk: 2, Chunks: 4, Mismatches: 1,
		})

		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0].Name).To(Equal("Pass 7: write ramp"))
		Expect(m.progressBars[0].Pass).To(Equal(7))
		Expect(m.progressBars[0].Finished).To(Equal(uint64(2)))
		Expect(m.progressBars[0].Mismatches).To(Equal(1))

		m.UpdateProgress(exerciser.Progress{Pass: 8, Name: "read slow", Chunks: 4})

		Expect(m.progressBars).To(HaveLen(1))
		Expect(m.progressBars[0].Name).To(Equal("Pass 8: read slow"))

		m.RecordResult(&exerciser.Result{})

		Expect(m.progressBars).To(BeEmpty())
	})

	It("should report pass results and the verdict", func() {
		m.RecordPass("run", exerciser.PassResult{
			Number: 1, Name: "write", Op: exerciser.OpWrite,
			Mode: exerciser.Slow, Chunks: 1, Bytes: 640, ElapsedUS: 12,
		})
		m.RecordPass("run", exerciser.PassResult{
			Number: 2, Name: "read slow", Op: exerciser.OpRead,
			Mode: exerciser.Slow, Mismatches: 2, Errors: 1,
			Err: errors.New("bus error"),
		})

		var rsp resultRsp
		Expect(json.Unmarshal(get(h, "/api/result").Body.Bytes(), &rsp)).
			To(Succeed())
		Expect(rsp.Done).To(BeFalse())
		Expect(rsp.Passes).To(HaveLen(2))
		Expect(rsp.Passes[1].Mode).To(Equal("slow"))
		Expect(rsp.Passes[1].Op).To(Equal("read"))
		Expect(rsp.Passes[1].Err).To(Equal("bus error"))
		Expect(rsp.Mismatches).To(Equal(2))

		m.RecordResult(&exerciser.Result{
			RunID:      "run",
			Config:     exerciser.Config{Size: 10, Count: 10},
			Mismatches: 2,
		})

		Expect(json.Unmarshal(get(h, "/api/result").Body.Bytes(), &rsp)).
			To(Succeed())
		Expect(rsp.Done).To(BeTrue())
		Expect(rsp.Passed).To(BeFalse())
		Expect(rsp.Percent).To(Equal(2.0))
	})

	It("should list and serialize devices", func() {
		d := &sampleDevice{Name: "PSRAM", Served: 3}
		m.RegisterDevice("PSRAM", d)
		m.RegisterDevice("Bus", &sampleDevice{Name: "Bus"})

		var names []string
		Expect(json.Unmarshal(get(h, "/api/devices").Body.Bytes(), &names)).
			To(Succeed())
		Expect(names).To(Equal([]string{"Bus", "PSRAM"}))

		w := get(h, "/api/device/PSRAM")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Served"))
	})

	It("should return 404 for unknown devices", func() {
		w := get(h, "/api/device/Nope")

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should reject malformed field requests", func() {
		w := get(h, "/api/field/"+url.PathEscape("{"))

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should serve the page", func() {
		w := get(h, "/")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})

	It("should report resources", func() {
		var rsp resourceRsp
		Expect(json.Unmarshal(get(h, "/api/resource").Body.Bytes(), &rsp)).
			To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve over a real listener", func() {
		u, err := m.StartServer()
		Expect(err).NotTo(HaveOccurred())
		defer func() { Expect(m.StopServer()).To(Succeed()) }()

		rsp, err := http.Get(u + "/api/result")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()

		body, err := io.ReadAll(rsp.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`"done":false`))
	})
})
