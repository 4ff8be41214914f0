package sim

import "reflect"

// An Event is something the engine handles at a simulated time, such as one
// zone timestep.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
}

// EventBase holds the time and handler of an event. Embed a pointer to it in
// concrete events.
type EventBase struct {
	ID      string
	time    VTimeInSec
	handler Handler
}

// NewEventBase creates an EventBase with the next sequential event ID.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	return &EventBase{
		ID:      eventIDs.Generate(),
		time:    t,
		handler: handler,
	}
}

// Time returns when the event happens.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler of the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// A Handler handles the events scheduled for it. An error stops the engine.
type Handler interface {
	Handle(e Event) error
}

// EventName is the Go type name of an event, as written in traces and errors.
func EventName(evt Event) string {
	return reflect.TypeOf(evt).String()
}
