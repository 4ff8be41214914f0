package simulation

import (
	"io"
	"log/slog"
	"os"

	"github.com/rs/xid"
	"github.com/sarchlab/groundtemp/datarecording"
	"github.com/sarchlab/groundtemp/datatransfer"
	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/monitoring"
	"github.com/sarchlab/groundtemp/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	recordingOn    bool
	outputFileName string
	errWriter      io.Writer
	auditWriter    io.Writer
	exitFunc       func(code int)
	logger         *slog.Logger
	eventTrace     io.Writer
}

// MakeBuilder creates a new builder. By default the simulation records to a
// uniquely named SQLite file, serves a monitor on a random port, and writes
// diagnostics to stderr.
func MakeBuilder() Builder {
	return Builder{
		monitorOn:   true,
		recordingOn: true,
		errWriter:   os.Stderr,
		auditWriter: io.Discard,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithoutRecording sets the simulation to not write a database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the name of the database, without the extension.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithErrWriter sets where diagnostics go.
func (b Builder) WithErrWriter(w io.Writer) Builder {
	b.errWriter = w
	return b
}

// WithAuditWriter sets where the initialization audit goes.
func (b Builder) WithAuditWriter(w io.Writer) Builder {
	b.auditWriter = w
	return b
}

// WithExitFunc replaces the function a fatal diagnostic exits through.
func (b Builder) WithExitFunc(f func(code int)) Builder {
	b.exitFunc = f
	return b
}

// WithLogger sets the logger for lifecycle messages.
func (b Builder) WithLogger(l *slog.Logger) Builder {
	b.logger = l
	return b
}

// WithEventTrace writes one line per engine event to w.
func (b Builder) WithEventTrace(w io.Writer) Builder {
	b.eventTrace = w
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:       xid.New().String(),
		engine:   sim.NewSerialEngine(),
		registry: groundtemp.NewRegistry(),
		exchange: datatransfer.NewExchange(),
		log:      b.logger,
		results:  make(map[string]groundtemp.Result),
	}

	if s.log == nil {
		s.log = slog.Default()
	}

	s.log = s.log.With("simulation", s.id)

	loggerBuilder := diag.MakeLoggerBuilder().
		WithErrWriter(b.errWriter).
		WithAuditWriter(b.auditWriter)
	if b.exitFunc != nil {
		loggerBuilder = loggerBuilder.WithExitFunc(b.exitFunc)
	}

	s.diagnostics = loggerBuilder.Build()

	if b.eventTrace != nil {
		s.engine.AcceptHook(sim.NewEventLogger(b.eventTrace))
	}

	if b.recordingOn {
		b.buildRecording(s)
	}

	if b.monitorOn {
		b.buildMonitor(s)
	}

	return s
}

func (b Builder) buildRecording(s *Simulation) {
	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "groundtemp_" + s.id
	}

	s.dataRecorder = datarecording.New(outputPath)
	s.dataRecorder.CreateTable(datarecording.ModelTable,
		datarecording.ModelEntry{})

	s.runInfo = datarecording.NewRunInfoRecorder(s.dataRecorder)
	s.runInfo.Set("Simulation ID", s.id)
	s.runInfo.Start()

	s.diagnostics.AcceptHook(datarecording.NewDiagnosticHook(s.dataRecorder))

	temperatureHook := datarecording.NewTemperatureHook(
		s.dataRecorder, s.engine)
	s.registry.AcceptHook(sim.AtPos(groundtemp.HookPosModelRegistered,
		func(ctx sim.HookCtx) {
			ctx.Item.(groundtemp.Model).AcceptHook(temperatureHook)
		}))

	s.engine.RegisterSimulationEndHandler(flushOnEnd{s.dataRecorder})
}

func (b Builder) buildMonitor(s *Simulation) {
	s.monitor = monitoring.NewMonitor()
	if b.monitorPort > 0 {
		s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterRegistry(s.registry)
	s.monitor.RegisterExchange(s.exchange)
	s.diagnostics.AcceptHook(s.monitor.Metrics())

	if err := s.monitor.StartServer(); err != nil {
		panic(err)
	}
}

type flushOnEnd struct {
	recorder datarecording.DataRecorder
}

func (h flushOnEnd) Handle(_ sim.VTimeInSec) {
	h.recorder.Flush()
}
