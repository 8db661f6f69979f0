// Package events carries structured diagnostic events from the pricing
// helpers to whatever observability sink the caller injects.
package events

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Event is a single diagnostic occurrence with structured fields.
type Event struct {
	Name   string
	Fields map[string]interface{}
}

// Observer receives events. Implementations must be safe for concurrent use.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// Func adapts a plain function to the Observer interface.
type Func func(ctx context.Context, e Event)

// Observe calls f(ctx, e).
func (f Func) Observe(ctx context.Context, e Event) {
	f(ctx, e)
}

type nop struct{}

func (nop) Observe(context.Context, Event) {}

// Nop returns an Observer that discards every event.
func Nop() Observer {
	return nop{}
}

// LogObserver writes each event as one structured log line.
type LogObserver struct {
	log   zerolog.Logger
	level zerolog.Level
}

// NewLogObserver creates an observer that logs events at the given level.
func NewLogObserver(log zerolog.Logger, level zerolog.Level) *LogObserver {
	return &LogObserver{log: log, level: level}
}

// Observe writes e to the underlying logger.
func (o *LogObserver) Observe(_ context.Context, e Event) {
	evt := o.log.WithLevel(o.level)
	if evt == nil {
		return
	}
	evt.Str("event", e.Name).Fields(e.Fields).Msg(e.Name)
}

// Recorder keeps every observed event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe appends e to the recorded events.
func (r *Recorder) Observe(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the recorded events with the given name.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
