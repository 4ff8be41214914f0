package sim

import (
	"io"
	"log"
)

// A Named handler reports a human readable name in event traces.
type Named interface {
	Name() string
}

// EventLogger is a hook that writes one line per handled event.
type EventLogger struct {
	*log.Logger
}

// NewEventLogger returns an EventLogger writing to w.
func NewEventLogger(w io.Writer) *EventLogger {
	return &EventLogger{Logger: log.New(w, "", 0)}
}

// Func writes the event time, type, and handler into the logger.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	name, ok := evt.Handler().(Named)
	if ok {
		h.Printf("%.10f, %s -> %s", evt.Time(), EventName(evt), name.Name())
	} else {
		h.Printf("%.10f, %s", evt.Time(), EventName(evt))
	}
}
