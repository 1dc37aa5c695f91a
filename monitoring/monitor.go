// Package monitoring serves the state of a running exerciser over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sarchlab/sramcheck/exerciser"
	"github.com/sarchlab/sramcheck/monitoring/web"
	"github.com/sarchlab/sramcheck/timing"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor turns a run into a web server that shows its progress, its pass
// results and the state of the simulated hardware.
type Monitor struct {
	portNumber int
	timeTeller timing.TimeTeller
	server     *http.Server

	devicesLock sync.Mutex
	devices     map[string]interface{}

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
	currentBar       *ProgressBar
	currentPass      int

	resultLock sync.Mutex
	result     resultRsp
}

var _ exerciser.Recorder = (*Monitor)(nil)

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		devices: make(map[string]interface{}),
		result:  resultRsp{Passes: []passRsp{}},
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterTimeTeller sets the clock reported by /api/now.
func (m *Monitor) RegisterTimeTeller(t timing.TimeTeller) {
	m.timeTeller = t
}

// RegisterDevice makes an object inspectable under a name.
func (m *Monitor) RegisterDevice(name string, d interface{}) {
	m.devicesLock.Lock()
	defer m.devicesLock.Unlock()

	m.devices[name] = d
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.removeBar(pb)
}

func (m *Monitor) removeBar(pb *ProgressBar) {
	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// UpdateProgress follows the exerciser. Each pass gets a bar that counts its
// chunks; the bar of the previous pass is completed when a new pass starts.
// It can be given to exerciser.WithProgress.
func (m *Monitor) UpdateProgress(p exerciser.Progress) {
	m.progressBarsLock.Lock()

	if p.Pass != m.currentPass || m.currentBar == nil {
		if m.currentBar != nil {
			m.removeBar(m.currentBar)
		}

		m.currentPass = p.Pass
		m.currentBar = &ProgressBar{
			ID:        xid.New().String(),
			Name:      fmt.Sprintf("Pass %d: %s", p.Pass, p.Name),
			Pass:      p.Pass,
			StartTime: time.Now(),
			Total:     uint64(p.Chunks),
		}
		m.progressBars = append(m.progressBars, m.currentBar)
	}

	bar := m.currentBar
	m.progressBarsLock.Unlock()

	bar.Update(uint64(p.Chunk), p.Mismatches)
}

// RecordPass implements exerciser.Recorder.
func (m *Monitor) RecordPass(runID string, p exerciser.PassResult) {
	m.resultLock.Lock()
	defer m.resultLock.Unlock()

	m.result.RunID = runID
	m.result.Passes = append(m.result.Passes, toPassRsp(p))
	m.result.Mismatches += p.Mismatches
}

// RecordMismatch implements exerciser.Recorder. Mismatches are counted
// through the passes.
func (m *Monitor) RecordMismatch(string, exerciser.Mismatch) {}

// RecordResult implements exerciser.Recorder.
func (m *Monitor) RecordResult(r *exerciser.Result) {
	m.progressBarsLock.Lock()
	if m.currentBar != nil {
		m.removeBar(m.currentBar)
		m.currentBar = nil
	}
	m.progressBarsLock.Unlock()

	m.resultLock.Lock()
	defer m.resultLock.Unlock()

	m.result.RunID = r.RunID
	m.result.Identity = r.Identity.String()
	m.result.Mismatches = r.Mismatches
	m.result.Percent = r.MismatchPercent()
	m.result.Passed = r.Passed
	m.result.Done = true
}

// Handler returns the router that serves the monitor.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	fServer := http.FileServer(web.GetAssets())
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/result", m.reportResult)
	r.HandleFunc("/api/devices", m.listDevices)
	r.HandleFunc("/api/device/{name}", m.listDeviceDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() (string, error) {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", errors.Wrap(err, "starting monitor")
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring sramcheck with %s\n", url)

	m.server = &http.Server{
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			dieOnErr(err)
		}
	}()

	return url, nil
}

// StopServer closes the web server if it has been started.
func (m *Monitor) StopServer() error {
	if m.server == nil {
		return nil
	}

	return m.server.Close()
}

// OpenInBrowser opens url in the default browser.
func OpenInBrowser(url string) error {
	return browser.OpenURL(url)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	var now timing.VTimeInSec
	if m.timeTeller != nil {
		now = m.timeTeller.Now()
	}

	fmt.Fprintf(w, "{\"now\":%.10f}", now)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bytes, err := json.Marshal(m.progressBars)
	m.progressBarsLock.Unlock()
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type passRsp struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	Op         string `json:"op"`
	Mode       string `json:"mode"`
	Chunks     int    `json:"chunks"`
	Bytes      int    `json:"bytes"`
	ElapsedUS  uint64 `json:"elapsed_us"`
	Mismatches int    `json:"mismatches"`
	Errors     int    `json:"errors"`
	Err        string `json:"err,omitempty"`
}

func toPassRsp(p exerciser.PassResult) passRsp {
	rsp := passRsp{
		Number:     p.Number,
		Name:       p.Name,
		Op:         p.Op.String(),
		Mode:       p.Mode.String(),
		Chunks:     p.Chunks,
		Bytes:      p.Bytes,
		ElapsedUS:  p.ElapsedUS,
		Mismatches: p.Mismatches,
		Errors:     p.Errors,
	}

	if p.Err != nil {
		rsp.Err = p.Err.Error()
	}

	return rsp
}

type resultRsp struct {
	RunID      string    `json:"run_id"`
	Identity   string    `json:"identity,omitempty"`
	Passes     []passRsp `json:"passes"`
	Mismatches int       `json:"mismatches"`
	Percent    float64   `json:"percent"`
	Passed     bool      `json:"passed"`
	Done       bool      `json:"done"`
}

func (m *Monitor) reportResult(w http.ResponseWriter, _ *http.Request) {
	m.resultLock.Lock()
	bytes, err := json.Marshal(m.result)
	m.resultLock.Unlock()
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listDevices(w http.ResponseWriter, _ *http.Request) {
	m.devicesLock.Lock()
	names := make([]string, 0, len(m.devices))
	for name := range m.devices {
		names = append(names, name)
	}
	m.devicesLock.Unlock()

	sort.Strings(names)

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) listDeviceDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	device := m.findDeviceOr404(w, name)
	if device == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(device)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	DeviceName string `json:"device_name,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	device := m.findDeviceOr404(w, req.DeviceName)
	if device == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(device)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(strings.Split(req.FieldName, "."))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	err = serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) findDeviceOr404(
	w http.ResponseWriter,
	name string,
) interface{} {
	m.devicesLock.Lock()
	device, ok := m.devices[name]
	m.devicesLock.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Device not found"))
		dieOnErr(err)

		return nil
	}

	return device
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
