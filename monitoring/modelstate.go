package monitoring

import (
	"strings"
	"sync"

	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/sim"
)

// modelState is what the monitor knows about one model. It is copied out of
// the model on the goroutine that owns the model, so HTTP handlers never
// touch a live model.
type modelState struct {
	Handle              int       `json:"handle"`
	Object              string    `json:"object"`
	Variable            string    `json:"variable"`
	MonthlyTemperatures []float64 `json:"monthly_temperatures"`
	ErrorsFound         bool      `json:"errors_found"`
	Month               *int      `json:"month"`
	Temperature         *float64  `json:"temperature"`
	Resolves            uint64    `json:"resolves"`
}

// modelStates is a hook that keeps a copy of every model's state, updated at
// registration and on each resolve.
type modelStates struct {
	mu     sync.RWMutex
	states []*modelState
	byName map[string]*modelState
}

func newModelStates() *modelStates {
	return &modelStates{byName: make(map[string]*modelState)}
}

func (s *modelStates) add(m groundtemp.Model, h groundtemp.Handle) {
	monthly := m.MonthlyTemperatures()
	state := &modelState{
		Handle:              int(h),
		Object:              m.Name(),
		Variable:            m.VariableName(),
		MonthlyTemperatures: monthly[:],
		ErrorsFound:         m.ErrorsFound(),
	}
	state.observe(m)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states = append(s.states, state)
	s.byName[strings.ToLower(state.Object)] = state
}

func (st *modelState) observe(m groundtemp.Model) {
	st.Month = nil
	st.Temperature = nil

	if month := m.CurrentMonth(); month != groundtemp.MonthUnset {
		st.Month = &month
	}

	if t, err := m.Temperature(); err == nil {
		st.Temperature = &t
	}
}

// Func records the model state after a resolve.
func (s *modelStates) Func(ctx sim.HookCtx) {
	if ctx.Pos != groundtemp.HookPosResolve {
		return
	}

	m := ctx.Item.(groundtemp.Model)

	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.byName[strings.ToLower(m.Name())]
	if !ok {
		return
	}

	state.observe(m)
	state.Resolves++
}

func (s *modelStates) list() []modelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]modelState, len(s.states))
	for i, st := range s.states {
		out[i] = *st
	}

	return out
}

func (s *modelStates) find(name string) (modelState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byName[strings.ToLower(name)]
	if !ok {
		return modelState{}, false
	}

	return *st, true
}
