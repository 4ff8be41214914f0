package datatransfer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type global struct {
	name  string
	value float64
}

// trend keeps the recent history of a global, newest value first.
type trend struct {
	name    string
	global  int
	history []float64
}

func (t *trend) push(v float64) {
	copy(t.history[1:], t.history[:len(t.history)-1])
	t.history[0] = v
}

// DeclareGlobal creates a plugin global variable, initialised to zero.
func (x *Exchange) DeclareGlobal(name string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	h := declare(x.globalIndex, key(name), len(x.globals), "global")
	x.globals = append(x.globals, &global{name: name})

	return h
}

// GlobalHandle returns the handle of a global, or NotFound.
func (x *Exchange) GlobalHandle(name string) (int, error) {
	return x.lookup(x.globalIndex, key(name))
}

// GlobalValue returns the value of a global.
func (x *Exchange) GlobalValue(h int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.globals)); err != nil {
		return 0, err
	}

	return x.globals[h].value, nil
}

// SetGlobalValue sets the value of a global.
func (x *Exchange) SetGlobalValue(h int, value float64) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.checkHandle(h, len(x.globals)); err != nil {
		return err
	}

	x.globals[h].value = value

	return nil
}

// DeclareTrend creates a trend that records the named global every timestep
// and keeps the last depth values. The history starts as zeros.
func (x *Exchange) DeclareTrend(name, globalName string, depth int) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if depth < 1 {
		return NotFound, fmt.Errorf("trend %q depth %d: %w",
			name, depth, ErrTrendRange)
	}

	g, ok := x.globalIndex[key(globalName)]
	if !ok {
		return NotFound, fmt.Errorf("trend %q: global %q not declared",
			name, globalName)
	}

	h := declare(x.trendIndex, key(name), len(x.trends), "trend")
	x.trends = append(x.trends, &trend{
		name:    name,
		global:  g,
		history: make([]float64, depth),
	})

	return h, nil
}

// UpdateTrends pushes the current value of each trended global. The host
// calls it once at the end of every timestep.
func (x *Exchange) UpdateTrends() {
	x.mu.Lock()
	defer x.mu.Unlock()

	for _, t := range x.trends {
		t.push(x.globals[t.global].value)
	}
}

// TrendHandle returns the handle of a trend, or NotFound.
func (x *Exchange) TrendHandle(name string) (int, error) {
	return x.lookup(x.trendIndex, key(name))
}

// TrendSize returns the declared depth of a trend.
func (x *Exchange) TrendSize(h int) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.trends)); err != nil {
		return 0, err
	}

	return len(x.trends[h].history), nil
}

// window returns the count most recent values, newest first.
func (x *Exchange) window(h, count int) ([]float64, error) {
	if err := x.checkHandle(h, len(x.trends)); err != nil {
		return nil, err
	}

	t := x.trends[h]
	if count < 1 || count > len(t.history) {
		return nil, fmt.Errorf("trend %q count %d of %d: %w",
			t.name, count, len(t.history), ErrTrendRange)
	}

	return t.history[:count], nil
}

// TrendValue returns the value recorded n timesteps ago. The most recent
// value has index 1.
func (x *Exchange) TrendValue(h, n int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	w, err := x.window(h, n)
	if err != nil {
		return 0, err
	}

	return w[n-1], nil
}

// TrendAverage returns the mean of the last count values.
func (x *Exchange) TrendAverage(h, count int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	w, err := x.window(h, count)
	if err != nil {
		return 0, err
	}

	return stat.Mean(w, nil), nil
}

// TrendMin returns the smallest of the last count values.
func (x *Exchange) TrendMin(h, count int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	w, err := x.window(h, count)
	if err != nil {
		return 0, err
	}

	return floats.Min(w), nil
}

// TrendMax returns the largest of the last count values.
func (x *Exchange) TrendMax(h, count int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	w, err := x.window(h, count)
	if err != nil {
		return 0, err
	}

	return floats.Max(w), nil
}

// TrendSum returns the sum of the last count values.
func (x *Exchange) TrendSum(h, count int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	w, err := x.window(h, count)
	if err != nil {
		return 0, err
	}

	return floats.Sum(w), nil
}

// TrendDirection returns the least-squares slope of the last count values,
// in units per hour. A single value has no direction.
func (x *Exchange) TrendDirection(h, count int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	w, err := x.window(h, count)
	if err != nil {
		return 0, err
	}

	if count < 2 {
		return 0, nil
	}

	step := x.clock.TimestepHours
	if step <= 0 {
		step = 1
	}

	// Oldest first so that time increases along the fit.
	hours := make([]float64, count)
	values := make([]float64, count)
	for i := range w {
		hours[i] = float64(i) * step
		values[i] = w[count-1-i]
	}

	_, slope := stat.LinearRegression(hours, values, nil, false)

	return slope, nil
}
