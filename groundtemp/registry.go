package groundtemp

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sarchlab/groundtemp/sim"
)

// Handle addresses a model in a Registry.
type Handle int

// InvalidHandle is the handle of a model that was not registered.
const InvalidHandle Handle = -1

var (
	// ErrRegistryFinalized is returned when appending to a finalized registry.
	ErrRegistryFinalized = errors.New("ground temperature registry is finalized")

	// ErrInvalidHandle is returned for handles that address no model.
	ErrInvalidHandle = errors.New("invalid ground temperature model handle")
)

// HookPosModelRegistered is triggered after a model is appended. The item is
// the model and the detail is its Handle.
var HookPosModelRegistered = &sim.HookPos{Name: "GroundTemperatureModelRegistered"}

// Registry is the append-only list of ground temperature models of a run.
// It is filled during input processing and finalized before the simulation
// steps. Once finalized it can be read from many goroutines without locking.
type Registry struct {
	sim.HookableBase

	mu        sync.Mutex
	finalized atomic.Bool
	models    []Model
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Append adds a model and returns its handle.
func (r *Registry) Append(m Model) (Handle, error) {
	r.mu.Lock()

	if r.finalized.Load() {
		r.mu.Unlock()
		return InvalidHandle, ErrRegistryFinalized
	}

	r.models = append(r.models, m)
	h := Handle(len(r.models) - 1)

	r.mu.Unlock()

	r.InvokeHook(sim.HookCtx{
		Domain: r,
		Pos:    HookPosModelRegistered,
		Item:   m,
		Detail: h,
	})

	return h, nil
}

// Finalize stops further appends. It is safe to call more than once.
func (r *Registry) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finalized.Store(true)
}

// IsFinalized tells if Finalize has been called.
func (r *Registry) IsFinalized() bool {
	return r.finalized.Load()
}

func (r *Registry) snapshot() []Model {
	if r.finalized.Load() {
		return r.models
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.models
}

// Get returns the model addressed by h.
func (r *Registry) Get(h Handle) (Model, error) {
	models := r.snapshot()

	if h < 0 || int(h) >= len(models) {
		return nil, fmt.Errorf("handle %d: %w", h, ErrInvalidHandle)
	}

	return models[h], nil
}

// Find returns the model built from the named object. Names match without
// regard to case.
func (r *Registry) Find(objectName string) (Model, Handle, bool) {
	for i, m := range r.snapshot() {
		if strings.EqualFold(m.Name(), objectName) {
			return m, Handle(i), true
		}
	}

	return nil, InvalidHandle, false
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []Model {
	models := r.snapshot()

	out := make([]Model, len(models))
	copy(out, models)

	return out
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.snapshot())
}
