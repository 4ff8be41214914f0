// Package simulation hosts a ground temperature run. It reads the input,
// builds the models, publishes them to plugins, and steps through simulated
// time.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sarchlab/groundtemp/datarecording"
	"github.com/sarchlab/groundtemp/datatransfer"
	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/input"
	"github.com/sarchlab/groundtemp/monitoring"
	"github.com/sarchlab/groundtemp/sim"
)

// EnvironmentKey is the key ground temperature variables are published under.
const EnvironmentKey = "Environment"

var (
	// ErrInputProcessed is returned when processing input a second time.
	ErrInputProcessed = errors.New("input already processed")

	// ErrInputNotProcessed is returned when running before input processing.
	ErrInputNotProcessed = errors.New("input not processed")

	// ErrInputErrors is returned when one or more models failed to build.
	ErrInputErrors = errors.New("errors found getting ground temperature input")

	// ErrInputAborted is returned when input processing stopped before the
	// models were built. A simulation in this state cannot run.
	ErrInputAborted = errors.New("input processing aborted")
)

// A Plugin runs user logic against the data exchange.
type Plugin interface {
	// Name identifies the plugin in logs and errors.
	Name() string

	// Setup declares globals and trends and requests variables. It runs
	// before the exchange is ready.
	Setup(x *datatransfer.Exchange) error

	// EndOfTimestep runs after the host has updated the exchange.
	EndOfTimestep(x *datatransfer.Exchange) error
}

// A Simulation provides the services a ground temperature run needs.
type Simulation struct {
	id  string
	log *slog.Logger

	engine      *sim.SerialEngine
	diagnostics *diag.Logger
	registry    *groundtemp.Registry
	exchange    *datatransfer.Exchange

	dataRecorder datarecording.DataRecorder
	runInfo      *datarecording.RunInfoRecorder
	monitor      *monitoring.Monitor

	plugins         []Plugin
	inputProcessed  bool
	inputAborted    error
	terminated      bool
	results         map[string]groundtemp.Result
	variableHandles []int
	calendar        calendar
	progress        *monitoring.ProgressBar
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDiagnostics returns the diagnostics logger.
func (s *Simulation) GetDiagnostics() *diag.Logger {
	return s.diagnostics
}

// GetRegistry returns the registry of ground temperature models.
func (s *Simulation) GetRegistry() *groundtemp.Registry {
	return s.registry
}

// GetExchange returns the plugin data exchange.
func (s *Simulation) GetExchange() *datatransfer.Exchange {
	return s.exchange
}

// GetDataRecorder returns the data recorder, or nil if recording is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor, or nil if monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterPlugin adds a plugin. Plugins must be registered before input
// processing.
func (s *Simulation) RegisterPlugin(p Plugin) {
	if s.inputProcessed {
		panic("plugin " + p.Name() + " registered after input processing")
	}

	s.plugins = append(s.plugins, p)
}

// ProcessInput builds every ground temperature model from the input,
// finalizes the registry, and opens the data exchange. Models that build
// successfully stay registered even when others fail, in which case
// ErrInputErrors is returned.
func (s *Simulation) ProcessInput(reader input.Reader) error {
	if s.inputProcessed {
		return ErrInputProcessed
	}

	s.inputProcessed = true

	for _, p := range s.plugins {
		if err := p.Setup(s.exchange); err != nil {
			return s.abortInput(
				fmt.Errorf("setting up plugin %s: %w", p.Name(), err))
		}
	}

	factory := groundtemp.NewFactory(reader, s.diagnostics, s.registry)

	var failed []string
	for _, name := range groundtemp.ObjectNames() {
		result, err := factory.Build(name)
		if err != nil {
			return s.abortInput(err)
		}

		s.results[strings.ToUpper(name)] = result

		if !result.OK() {
			failed = append(failed, name)
			continue
		}

		s.recordModel(result)
	}

	s.registry.Finalize()
	s.publishModels()
	s.exchange.MarkReady()
	s.checkRequestedVariables()

	s.log.Info("input processed",
		"models", s.registry.Len(),
		"failed", len(failed),
		"summary", s.diagnostics.Summary())

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", ErrInputErrors, strings.Join(failed, ", "))
	}

	return nil
}

func (s *Simulation) abortInput(cause error) error {
	s.registry.Finalize()
	s.inputAborted = fmt.Errorf("%w: %w", ErrInputAborted, cause)
	s.log.Error("input processing aborted", "err", cause)

	return s.inputAborted
}

func (s *Simulation) recordModel(result groundtemp.Result) {
	if s.dataRecorder == nil {
		return
	}

	m := result.Model
	s.dataRecorder.InsertData(datarecording.ModelTable,
		datarecording.MakeModelEntry(
			int(result.Handle),
			m.Name(),
			m.VariableName(),
			result.UserInput,
			m.MonthlyTemperatures(),
		))
}

func (s *Simulation) publishModels() {
	models := s.registry.Models()
	s.variableHandles = make([]int, len(models))

	for i, m := range models {
		s.variableHandles[i] = s.exchange.DeclareVariable(
			m.VariableName(), EnvironmentKey)
	}
}

func (s *Simulation) checkRequestedVariables() {
	for _, req := range s.exchange.RequestedVariables() {
		h, _ := s.exchange.VariableHandle(req.Type, req.Key)
		if h == datatransfer.NotFound {
			s.diagnostics.Advisory(fmt.Sprintf(
				"Requested variable not available: %s, %s", req.Type, req.Key))
		}
	}
}

// UserInputPresent tells if the input held exactly one object of the named
// variant. It is false before input processing.
func (s *Simulation) UserInputPresent(objectName string) bool {
	return s.results[strings.ToUpper(objectName)].UserInput
}

// Model returns the registered model of the named variant.
func (s *Simulation) Model(objectName string) (groundtemp.Model, bool) {
	m, _, ok := s.registry.Find(objectName)
	return m, ok
}

// Run steps through the configured period. Every timestep resolves each
// model to the calendar month and publishes the temperatures.
func (s *Simulation) Run(cfg RunConfig) error {
	if !s.inputProcessed {
		return ErrInputNotProcessed
	}

	if s.inputAborted != nil {
		return s.inputAborted
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	s.calendar = calendar{
		startDayOfYear:   cfg.StartDayOfYear,
		timestepsPerHour: cfg.TimestepsPerHour,
	}
	total := cfg.Timesteps()

	if s.monitor != nil {
		s.progress = s.monitor.CreateProgressBar("Timesteps", uint64(total))
		defer s.monitor.CompleteProgressBar(s.progress)
	}

	s.log.Info("run started",
		"days", cfg.Days,
		"timesteps_per_hour", cfg.TimestepsPerHour)
	start := time.Now()

	s.engine.Schedule(newStepEvent(
		s.calendar.timestep(), &stepper{s: s, total: total}, 0))

	err := s.engine.Run()
	s.engine.Finished()

	if err != nil {
		s.log.Error("run failed", "err", err)
		return err
	}

	s.log.Info("run finished",
		"timesteps", total,
		"elapsed", time.Since(start))

	return nil
}

func (s *Simulation) step(step int) error {
	clock := s.calendar.clockAt(step)
	s.exchange.SetClock(clock)

	for i, m := range s.registry.Models() {
		m.ResolveMonth(clock.Month)

		t, err := m.Temperature()
		if err != nil {
			return err
		}

		s.exchange.UpdateVariable(s.variableHandles[i], t)
	}

	for _, p := range s.plugins {
		if err := p.EndOfTimestep(s.exchange); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
	}

	s.exchange.UpdateTrends()

	if s.progress != nil {
		s.progress.IncrementFinished(1)
	}

	return nil
}

// Terminate writes the remaining records and stops the monitor. Calls after
// the first do nothing.
func (s *Simulation) Terminate() {
	if s.terminated {
		return
	}

	s.terminated = true

	if s.dataRecorder != nil {
		s.runInfo.Set("Diagnostics", s.diagnostics.Summary())
		s.runInfo.End()

		if err := s.dataRecorder.Close(); err != nil {
			s.log.Error("closing data recorder", "err", err)
		}
	}

	if s.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := s.monitor.StopServer(ctx); err != nil {
			s.log.Error("stopping monitor", "err", err)
		}
	}
}
