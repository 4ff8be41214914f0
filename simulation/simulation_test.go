package simulation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/groundtemp/datarecording"
	"github.com/sarchlab/groundtemp/datatransfer"
	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/input"
	"github.com/sarchlab/groundtemp/sim"
)

type failingPlugin struct{}

func (failingPlugin) Name() string { return "failing" }

func (failingPlugin) Setup(*datatransfer.Exchange) error { return nil }

func (failingPlugin) EndOfTimestep(*datatransfer.Exchange) error {
	return errors.New("boom")
}

type brokenSetupPlugin struct{}

func (brokenSetupPlugin) Name() string { return "broken" }

func (brokenSetupPlugin) Setup(*datatransfer.Exchange) error {
	return errors.New("no config")
}

func (brokenSetupPlugin) EndOfTimestep(*datatransfer.Exchange) error {
	return nil
}

func monthlyObject(class string, first float64) input.Object {
	values := make([]float64, 12)
	for i := range values {
		values[i] = first + float64(i)
	}

	return input.Object{Class: class, Numerics: values}
}

var _ = Describe("Simulation", func() {
	var (
		simulation *Simulation
		errOut     *bytes.Buffer
		auditOut   *bytes.Buffer
		dbPath     string
	)

	BeforeEach(func() {
		errOut = new(bytes.Buffer)
		auditOut = new(bytes.Buffer)
		dbPath = filepath.Join(GinkgoT().TempDir(), "run")

		simulation = MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(dbPath).
			WithErrWriter(errOut).
			WithAuditWriter(auditOut).
			WithLogger(slog.New(slog.NewTextHandler(GinkgoWriter, nil))).
			Build()
	})

	AfterEach(func() {
		simulation.Terminate()
	})

	It("should build defaults when the input is empty", func() {
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		Expect(simulation.GetRegistry().Len()).To(Equal(3))
		Expect(simulation.GetRegistry().IsFinalized()).To(BeTrue())
		Expect(simulation.GetExchange().Ready()).To(BeTrue())
		Expect(simulation.UserInputPresent(groundtemp.BuildingSurfaceObject)).
			To(BeFalse())
		Expect(auditOut.String()).
			To(ContainSubstring("! <Site:GroundTemperature:Deep>"))
	})

	It("should flag variants given by the user", func() {
		reader := input.NewMemoryReader(
			monthlyObject(groundtemp.BuildingSurfaceObject, 18))

		Expect(simulation.ProcessInput(reader)).To(Succeed())

		Expect(simulation.UserInputPresent("site:groundtemperature:buildingsurface")).
			To(BeTrue())
		Expect(simulation.UserInputPresent(groundtemp.DeepObject)).To(BeFalse())

		m, ok := simulation.Model(groundtemp.BuildingSurfaceObject)
		Expect(ok).To(BeTrue())
		Expect(m.MonthlyTemperatures()[11]).To(Equal(29.0))
	})

	It("should keep valid models when one variant fails", func() {
		reader := input.NewMemoryReader(
			monthlyObject(groundtemp.DeepObject, 10),
			monthlyObject(groundtemp.DeepObject, 11))

		err := simulation.ProcessInput(reader)

		Expect(err).To(MatchError(ErrInputErrors))
		Expect(err.Error()).To(ContainSubstring(groundtemp.DeepObject))
		Expect(simulation.GetRegistry().Len()).To(Equal(2))
		_, ok := simulation.Model(groundtemp.DeepObject)
		Expect(ok).To(BeFalse())
		Expect(simulation.UserInputPresent(groundtemp.DeepObject)).To(BeFalse())
		Expect(simulation.GetDiagnostics().Count(diag.Severe)).To(Equal(1))
		Expect(errOut.String()).To(ContainSubstring("Too many objects entered"))
	})

	It("should process input only once", func() {
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		Expect(simulation.ProcessInput(input.NewMemoryReader())).
			To(MatchError(ErrInputProcessed))
	})

	It("should not run before input processing", func() {
		Expect(simulation.Run(DefaultRunConfig())).
			To(MatchError(ErrInputNotProcessed))
	})

	It("should not run with a bad configuration", func() {
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		Expect(simulation.Run(RunConfig{})).NotTo(Succeed())
	})

	It("should publish the temperature of the calendar month", func() {
		reader := input.NewMemoryReader(
			monthlyObject(groundtemp.BuildingSurfaceObject, 15))
		Expect(simulation.ProcessInput(reader)).To(Succeed())

		Expect(simulation.Run(RunConfig{
			Days:             2,
			TimestepsPerHour: 1,
			StartDayOfYear:   31,
		})).To(Succeed())

		x := simulation.GetExchange()
		h, err := x.VariableHandle("Site Ground Temperature", EnvironmentKey)
		Expect(err).NotTo(HaveOccurred())
		v, err := x.VariableValue(h)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(16.0))

		clock, _ := x.Clock()
		Expect(clock.Month).To(Equal(2))
		Expect(clock.DayOfMonth).To(Equal(1))
		Expect(simulation.GetEngine().CurrentTime()).To(Equal(2 * sim.Day))
	})

	It("should record every resolve", func() {
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())
		Expect(simulation.Run(RunConfig{
			Days:             1,
			TimestepsPerHour: 2,
			StartDayOfYear:   1,
		})).To(Succeed())
		simulation.Terminate()

		reader, err := datarecording.NewReader(dbPath + ".sqlite3")
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()
		reader.MapTable(datarecording.TemperatureTable,
			datarecording.TemperatureEntry{})
		reader.MapTable(datarecording.ModelTable, datarecording.ModelEntry{})

		_, total, err := reader.Query(context.Background(),
			datarecording.TemperatureTable, datarecording.QueryParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(3 * 48))

		models, _, err := reader.Query(context.Background(),
			datarecording.ModelTable,
			datarecording.QueryParams{OrderBy: "Handle"})
		Expect(err).NotTo(HaveOccurred())
		Expect(models).To(HaveLen(3))
		Expect(models[2].(*datarecording.ModelEntry).Jan).
			To(Equal(groundtemp.ShallowDefault))
	})

	It("should feed plugin trends", func() {
		plugin := NewTrendPlugin("Site Deep Ground Temperature", 6)
		simulation.RegisterPlugin(plugin)
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		Expect(simulation.Run(RunConfig{
			Days:             1,
			TimestepsPerHour: 4,
			StartDayOfYear:   1,
		})).To(Succeed())

		x := simulation.GetExchange()
		h, err := x.TrendHandle(plugin.TrendName())
		Expect(err).NotTo(HaveOccurred())
		avg, err := x.TrendAverage(h, 6)
		Expect(err).NotTo(HaveOccurred())
		Expect(avg).To(Equal(groundtemp.DeepDefault))
		direction, _ := x.TrendDirection(h, 6)
		Expect(direction).To(BeNumerically("~", 0, 1e-12))
	})

	It("should warn about requested variables nobody publishes", func() {
		simulation.RegisterPlugin(NewTrendPlugin("Site Outdoor Air Drybulb Temperature", 2))

		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		Expect(simulation.GetDiagnostics().Count(diag.Advisory)).To(Equal(1))
		Expect(simulation.Run(RunConfig{
			Days: 1, TimestepsPerHour: 1, StartDayOfYear: 1,
		})).To(MatchError(ContainSubstring("not available")))
	})

	It("should stop at a failing plugin", func() {
		simulation.RegisterPlugin(failingPlugin{})
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		err := simulation.Run(RunConfig{
			Days: 1, TimestepsPerHour: 1, StartDayOfYear: 1,
		})

		Expect(err).To(MatchError(ContainSubstring("plugin failing: boom")))
		Expect(simulation.GetEngine().CurrentTime()).To(Equal(sim.Hour))
	})

	It("should not run after a plugin fails to set up", func() {
		simulation.RegisterPlugin(brokenSetupPlugin{})

		err := simulation.ProcessInput(input.NewMemoryReader())
		Expect(err).To(MatchError(ErrInputAborted))
		Expect(err).To(MatchError(ContainSubstring("plugin broken: no config")))
		Expect(simulation.GetRegistry().IsFinalized()).To(BeTrue())
		Expect(simulation.GetExchange().Ready()).To(BeFalse())

		Expect(simulation.Run(RunConfig{
			Days: 1, TimestepsPerHour: 1, StartDayOfYear: 1,
		})).To(MatchError(ErrInputAborted))
		Expect(simulation.GetEngine().CurrentTime()).To(BeZero())
		Expect(simulation.ProcessInput(input.NewMemoryReader())).
			To(MatchError(ErrInputProcessed))
	})

	It("should refuse plugins after input processing", func() {
		Expect(simulation.ProcessInput(input.NewMemoryReader())).To(Succeed())

		Expect(func() { simulation.RegisterPlugin(failingPlugin{}) }).To(Panic())
	})
})

var _ = Describe("Builder", func() {
	It("should refuse a monitor port without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(8080).Build()
		}).To(Panic())
	})

	It("should build without recording", func() {
		s := MakeBuilder().WithoutMonitoring().WithoutRecording().Build()
		defer s.Terminate()

		Expect(s.GetDataRecorder()).To(BeNil())
		Expect(s.ID()).NotTo(BeEmpty())
	})

	It("should trace timestep events", func() {
		trace := new(bytes.Buffer)
		s := MakeBuilder().
			WithoutMonitoring().
			WithoutRecording().
			WithErrWriter(new(bytes.Buffer)).
			WithEventTrace(trace).
			Build()
		defer s.Terminate()

		Expect(s.ProcessInput(input.NewMemoryReader())).To(Succeed())
		Expect(s.Run(RunConfig{
			Days: 1, TimestepsPerHour: 1, StartDayOfYear: 1,
		})).To(Succeed())

		lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
		Expect(lines).To(HaveLen(24))
		Expect(lines[0]).To(Equal(
			"3600.0000000000, *simulation.StepEvent -> Timestep"))
	})
})
