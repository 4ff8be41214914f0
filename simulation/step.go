package simulation

import (
	"github.com/sarchlab/groundtemp/sim"
)

// A StepEvent triggers one zone timestep.
type StepEvent struct {
	*sim.EventBase

	Step int
}

func newStepEvent(t sim.VTimeInSec, handler sim.Handler, step int) *StepEvent {
	return &StepEvent{
		EventBase: sim.NewEventBase(t, handler),
		Step:      step,
	}
}

type stepper struct {
	s     *Simulation
	total int
}

func (h *stepper) Name() string {
	return "Timestep"
}

func (h *stepper) Handle(e sim.Event) error {
	evt := e.(*StepEvent)

	if err := h.s.step(evt.Step); err != nil {
		return err
	}

	next := evt.Step + 1
	if next < h.total {
		h.s.engine.Schedule(newStepEvent(
			sim.VTimeInSec(next+1)*h.s.calendar.timestep(), h, next))
	}

	return nil
}
