package sim

// TimeTeller reports the simulated time of the event being handled. Recording
// hooks use it to stamp resolved temperatures.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler accepts events at or after the current time. The timestep
// handler uses it to queue the next zone timestep.
type EventScheduler interface {
	Schedule(e Event)
}

// A SimulationEndHandler runs once the last timestep has been handled, with
// the final simulated time. The data recorder flushes from one.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// An Engine drives a run by handling queued events in time order. Each zone
// timestep is one event; hooks fire at HookPosBeforeEvent and
// HookPosAfterEvent around it.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until the queue is empty or a handler fails.
	Run() error

	// Pause blocks the engine before its next event. The monitor calls it
	// from HTTP handlers.
	Pause()

	// Continue releases a paused engine.
	Continue()

	// RegisterSimulationEndHandler adds a handler for Finished.
	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished calls every SimulationEndHandler with the current time.
	Finished()
}
