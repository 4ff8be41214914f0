package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/sim"
)

// Metrics is a hook that turns simulation activity into Prometheus metrics.
// Attach it to models, the diagnostics logger, and the engine.
type Metrics struct {
	registry *prometheus.Registry

	resolves    *prometheus.CounterVec
	temperature *prometheus.GaugeVec
	diagnostics *prometheus.CounterVec
	steps       prometheus.Counter
}

// NewMetrics creates the metrics on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		resolves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundtemp_resolves_total",
				Help: "Month resolves per ground temperature model",
			},
			[]string{"object", "source"},
		),
		temperature: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "groundtemp_temperature_celsius",
				Help: "Last resolved ground temperature",
			},
			[]string{"object"},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundtemp_diagnostics_total",
				Help: "Diagnostic messages by severity",
			},
			[]string{"severity"},
		),
		steps: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "groundtemp_timesteps_total",
				Help: "Simulated timesteps handled",
			},
		),
	}
}

// Func updates the metrics for the hook position.
func (m *Metrics) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case groundtemp.HookPosResolve:
		m.observeResolve(ctx)
	case diag.HookPosDiagnostic:
		r := ctx.Item.(diag.Record)
		if !r.Continuation {
			m.diagnostics.WithLabelValues(r.Severity.String()).Inc()
		}
	case sim.HookPosAfterEvent:
		m.steps.Inc()
	}
}

func (m *Metrics) observeResolve(ctx sim.HookCtx) {
	model := ctx.Item.(groundtemp.Model)
	detail := ctx.Detail.(groundtemp.ResolveDetail)

	source := "month"
	if detail.FromSeconds {
		source = "seconds"
	}

	m.resolves.WithLabelValues(model.Name(), source).Inc()

	if t, err := model.Temperature(); err == nil {
		m.temperature.WithLabelValues(model.Name()).Set(t)
	}
}

// Gatherer exposes the registry the metrics live in.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
