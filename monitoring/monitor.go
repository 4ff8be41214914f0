// Package monitoring turns a running simulation into a web server that
// reports progress, model state, and metrics, and lets the user pause and
// continue the run.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/sarchlab/groundtemp/datatransfer"
	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/monitoring/web"
	"github.com/sarchlab/groundtemp/sim"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

var progressBarIDs = sim.NewUniqueIDGenerator()

// Monitor can turn a simulation into a server and allows external monitoring
// and controlling of the simulation.
type Monitor struct {
	engine     sim.Engine
	models     *modelStates
	exchange   *datatransfer.Exchange
	metrics    *Metrics
	portNumber int

	server   *http.Server
	listener net.Listener

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		metrics: NewMetrics(),
		models:  newModelStates(),
	}
}

// WithPortNumber sets the port number of the monitor. Port numbers below 1000
// are replaced by a random port.
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

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
	e.AcceptHook(m.metrics)
}

// RegisterRegistry registers the ground temperature models to report.
// Models registered later are picked up as they are appended. The monitor
// keeps its own copy of each model's state, so it must be registered before
// the models start resolving on another goroutine.
func (m *Monitor) RegisterRegistry(r *groundtemp.Registry) {
	for i, model := range r.Models() {
		m.watchModel(model, groundtemp.Handle(i))
	}

	r.AcceptHook(sim.AtPos(groundtemp.HookPosModelRegistered,
		func(ctx sim.HookCtx) {
			m.watchModel(ctx.Item.(groundtemp.Model),
				ctx.Detail.(groundtemp.Handle))
		}))
}

func (m *Monitor) watchModel(model groundtemp.Model, h groundtemp.Handle) {
	m.models.add(model, h)
	model.AcceptHook(m.metrics)
	model.AcceptHook(m.models)
}

// RegisterExchange registers the plugin data exchange to list.
func (m *Monitor) RegisterExchange(x *datatransfer.Exchange) {
	m.exchange = x
}

// Metrics returns the metrics hook, for attaching to other hookables.
func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        progressBarIDs.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar from the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the HTTP routes of the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/list_models", m.listModels)
	r.HandleFunc("/api/model/{name}", m.modelDetails)
	r.HandleFunc("/api/exchange", m.listExchange)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.Handle("/metrics", m.metrics.Handler())
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background.
func (m *Monitor) StartServer() error {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return err
	}

	m.listener = listener
	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.URL())

	go func() {
		err := m.server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return nil
}

// URL returns the address of the dashboard, or "" before StartServer.
func (m *Monitor) URL() string {
	if m.listener == nil {
		return ""
	}

	return fmt.Sprintf("http://localhost:%d",
		m.listener.Addr().(*net.TCPAddr).Port)
}

// OpenDashboard opens the dashboard in the default browser.
func (m *Monitor) OpenDashboard() error {
	return browser.OpenURL(m.URL())
}

// StopServer shuts the server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%.10f}", float64(now))
}

func (m *Monitor) listModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.models.list())
}

func (m *Monitor) modelDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	state, ok := m.models.find(name)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Model not found"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) listExchange(w http.ResponseWriter, r *http.Request) {
	if m.exchange == nil {
		http.NotFound(w, r)
		return
	}

	out, err := m.exchange.ListAllDataCSV()
	if errors.Is(err, datatransfer.ErrNotReady) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	dieOnErr(err)

	w.Header().Set("Content-Type", "text/csv")
	_, err = w.Write([]byte(out))
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	bars := append([]*ProgressBar{}, m.progressBars...)
	m.progressBarsLock.Unlock()

	now := time.Now()
	rsp := make([]progressRsp, 0, len(bars))
	for _, b := range bars {
		rsp = append(rsp, b.snapshot(now))
	}

	writeJSON(w, rsp)
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

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
