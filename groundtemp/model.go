// Package groundtemp implements the monthly ground temperature models that
// provide boundary temperatures for foundations, slabs, and below-grade
// surfaces.
//
// Every model holds twelve monthly-averaged temperatures. A model is resolved
// to a month first, either directly or from elapsed simulated seconds, and
// then read. Models are created by a Factory during input processing and kept
// in a Registry for the rest of the run.
package groundtemp

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/groundtemp/diag"
	"github.com/sarchlab/groundtemp/sim"
)

// MonthUnset is the month index of a model that has not been resolved yet.
const MonthUnset = math.MinInt

var (
	// ErrMonthUnset is returned when reading a model that was never resolved.
	ErrMonthUnset = errors.New("ground temperature read before any month was resolved")

	// ErrMonthOutOfRange is returned when the resolved month is not 1..12.
	ErrMonthOutOfRange = errors.New("resolved month is outside 1..12")
)

// HookPosResolve is triggered after a model resolves a month. The item is the
// model and the detail is a ResolveDetail.
var HookPosResolve = &sim.HookPos{Name: "GroundTemperatureResolve"}

// ResolveDetail describes one resolve operation.
type ResolveDetail struct {
	Month       int
	Seconds     float64
	FromSeconds bool
}

// A Model is a ground temperature model.
type Model interface {
	sim.Hookable

	// Name returns the input object name of the model's variant.
	Name() string

	// VariableName returns the output variable the model is reported as.
	VariableName() string

	// Temperature returns the temperature of the resolved month in Celsius.
	Temperature() (float64, error)

	// ResolveMonth sets the current month. The month is not validated.
	ResolveMonth(month int)

	// ResolveSeconds sets the current month from elapsed simulated seconds.
	// The depth is not used by monthly models. Times that are not positive
	// or not finite are fatal.
	ResolveSeconds(depth, seconds float64)

	// MonthlyTemperatures returns the twelve values, January first.
	MonthlyTemperatures() [12]float64

	// CurrentMonth returns the resolved month, or MonthUnset.
	CurrentMonth() int

	// ErrorsFound tells if construction failed.
	ErrorsFound() bool
}

// monthlyModel carries the state and behavior shared by all variants.
type monthlyModel struct {
	sim.HookableBase

	self         Model
	name         string
	variable     string
	sink         diag.Sink
	temperatures [12]float64
	currentMonth int
	errorsFound  bool
}

func newMonthlyModel(name, variable string, sink diag.Sink) monthlyModel {
	return monthlyModel{
		name:         name,
		variable:     variable,
		sink:         sink,
		currentMonth: MonthUnset,
	}
}

func (m *monthlyModel) base() *monthlyModel {
	return m
}

func (m *monthlyModel) Name() string {
	return m.name
}

func (m *monthlyModel) VariableName() string {
	return m.variable
}

func (m *monthlyModel) MonthlyTemperatures() [12]float64 {
	return m.temperatures
}

func (m *monthlyModel) CurrentMonth() int {
	return m.currentMonth
}

func (m *monthlyModel) ErrorsFound() bool {
	return m.errorsFound
}

func (m *monthlyModel) Temperature() (float64, error) {
	switch {
	case m.currentMonth == MonthUnset:
		return 0, fmt.Errorf("%s: %w", m.name, ErrMonthUnset)
	case m.currentMonth < 1 || m.currentMonth > 12:
		return 0, fmt.Errorf("%s: month %d: %w",
			m.name, m.currentMonth, ErrMonthOutOfRange)
	}

	return m.temperatures[m.currentMonth-1], nil
}

func (m *monthlyModel) ResolveMonth(month int) {
	m.resolve(ResolveDetail{Month: month})
}

func (m *monthlyModel) ResolveSeconds(_, seconds float64) {
	month, ok := monthFromSeconds(seconds)
	if !ok {
		m.sink.Fatal(m.name + "--Invalid time passed to ground temperature model")
		return
	}

	m.resolve(ResolveDetail{
		Month:       month,
		Seconds:     seconds,
		FromSeconds: true,
	})
}

func (m *monthlyModel) resolve(detail ResolveDetail) {
	m.currentMonth = detail.Month

	m.InvokeHook(sim.HookCtx{
		Domain: m.self,
		Pos:    HookPosResolve,
		Item:   m.self,
		Detail: detail,
	})
}

func (m *monthlyModel) fill(t float64) {
	for i := range m.temperatures {
		m.temperatures[i] = t
	}
}
