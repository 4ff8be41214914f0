// Package datatransfer is the data exchange boundary between the simulation
// host and plugins. Plugins look up exchange points by name once, receive an
// integer handle, and then read or write through that handle every timestep.
//
// No query is answered before the host marks the exchange ready. Until then
// every consumer call returns ErrNotReady.
package datatransfer

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

// NotFound is the handle returned for names that do not exist.
const NotFound = -1

var (
	// ErrNotReady is returned by consumer calls made before the host has
	// finished input processing.
	ErrNotReady = errors.New("data exchange is not ready")

	// ErrHandleOutOfRange is returned for handles that address nothing.
	ErrHandleOutOfRange = errors.New("data exchange handle out of range")

	// ErrTrendRange is returned for trend indices or counts outside the
	// declared trend depth.
	ErrTrendRange = errors.New("trend index outside declared depth")
)

func key(parts ...string) string {
	return strings.ToUpper(strings.Join(parts, "\x00"))
}

// VariableKey names an output variable.
type VariableKey struct {
	Type string
	Key  string
}

type variable struct {
	VariableKey
	value float64
}

type meter struct {
	name  string
	value float64
}

type internalVariable struct {
	VariableKey
	units string
	value float64
}

// Exchange holds every exchange point of a simulation.
type Exchange struct {
	mu    sync.RWMutex
	ready bool

	variables     []*variable
	variableIndex map[string]int
	requested     []VariableKey

	meters     []*meter
	meterIndex map[string]int

	actuators     []*actuator
	actuatorIndex map[string]int

	internals     []*internalVariable
	internalIndex map[string]int

	globals     []*global
	globalIndex map[string]int

	trends     []*trend
	trendIndex map[string]int

	clock Clock
}

// NewExchange creates an Exchange that is not ready.
func NewExchange() *Exchange {
	return &Exchange{
		variableIndex: make(map[string]int),
		meterIndex:    make(map[string]int),
		actuatorIndex: make(map[string]int),
		internalIndex: make(map[string]int),
		globalIndex:   make(map[string]int),
		trendIndex:    make(map[string]int),
	}
}

// Ready tells if consumer queries are answered.
func (x *Exchange) Ready() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return x.ready
}

// MarkReady opens the exchange to consumers. The host calls it once input
// processing completes.
func (x *Exchange) MarkReady() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.ready = true
}

func (x *Exchange) lookup(index map[string]int, k string) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if !x.ready {
		return NotFound, ErrNotReady
	}

	h, ok := index[k]
	if !ok {
		return NotFound, nil
	}

	return h, nil
}

func (x *Exchange) checkHandle(h, n int) error {
	if !x.ready {
		return ErrNotReady
	}

	if h < 0 || h >= n {
		return fmt.Errorf("handle %d: %w", h, ErrHandleOutOfRange)
	}

	return nil
}

func declare(index map[string]int, k string, n int, what string) int {
	if _, ok := index[k]; ok {
		log.Panicf("%s %q declared twice", what, strings.ReplaceAll(k, "\x00", ","))
	}

	index[k] = n

	return n
}

// DeclareVariable publishes an output variable and returns its handle.
func (x *Exchange) DeclareVariable(varType, varKey string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	h := declare(x.variableIndex, key(varType, varKey), len(x.variables),
		"variable")
	x.variables = append(x.variables, &variable{
		VariableKey: VariableKey{Type: varType, Key: varKey},
	})

	return h
}

// UpdateVariable sets the current value of a variable.
func (x *Exchange) UpdateVariable(h int, value float64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.variables[h].value = value
}

// RequestVariable asks the host to produce a variable. Requests may be made
// before the exchange is ready.
func (x *Exchange) RequestVariable(varType, varKey string) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.requested = append(x.requested, VariableKey{Type: varType, Key: varKey})
}

// RequestedVariables returns the variables plugins asked for.
func (x *Exchange) RequestedVariables() []VariableKey {
	x.mu.RLock()
	defer x.mu.RUnlock()

	return append([]VariableKey(nil), x.requested...)
}

// VariableHandle returns the handle of a variable, or NotFound.
func (x *Exchange) VariableHandle(varType, varKey string) (int, error) {
	return x.lookup(x.variableIndex, key(varType, varKey))
}

// VariableValue returns the current value of a variable.
func (x *Exchange) VariableValue(h int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.variables)); err != nil {
		return 0, err
	}

	return x.variables[h].value, nil
}

// DeclareMeter publishes a meter and returns its handle.
func (x *Exchange) DeclareMeter(name string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	h := declare(x.meterIndex, key(name), len(x.meters), "meter")
	x.meters = append(x.meters, &meter{name: name})

	return h
}

// UpdateMeter sets the current value of a meter.
func (x *Exchange) UpdateMeter(h int, value float64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.meters[h].value = value
}

// MeterHandle returns the handle of a meter, or NotFound.
func (x *Exchange) MeterHandle(name string) (int, error) {
	return x.lookup(x.meterIndex, key(name))
}

// MeterValue returns the current value of a meter.
func (x *Exchange) MeterValue(h int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.meters)); err != nil {
		return 0, err
	}

	return x.meters[h].value, nil
}

// DeclareInternalVariable publishes a static value, such as a design size.
func (x *Exchange) DeclareInternalVariable(
	varType, varKey, units string,
	value float64,
) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	h := declare(x.internalIndex, key(varType, varKey), len(x.internals),
		"internal variable")
	x.internals = append(x.internals, &internalVariable{
		VariableKey: VariableKey{Type: varType, Key: varKey},
		units:       units,
		value:       value,
	})

	return h
}

// InternalVariableHandle returns the handle of an internal variable, or
// NotFound.
func (x *Exchange) InternalVariableHandle(varType, varKey string) (int, error) {
	return x.lookup(x.internalIndex, key(varType, varKey))
}

// InternalVariableValue returns the value of an internal variable.
func (x *Exchange) InternalVariableValue(h int) (float64, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := x.checkHandle(h, len(x.internals)); err != nil {
		return 0, err
	}

	return x.internals[h].value, nil
}
