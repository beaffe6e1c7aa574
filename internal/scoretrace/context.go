// Package scoretrace implements the per-query scoring trace: an explicit,
// append-only event log threaded through scoring as a parameter, with a
// disabled variant that compiles to near-zero overhead.
//
// Modeled on the logger's context builders
// (internal/pkg/logger/logger.go WithSearch/WithBatch): a small value type
// carrying structured context through a call chain, repurposed here as an
// event accumulator instead of a logger. Trace state is an explicit,
// constructor-selected parameter rather than a global, so concurrent
// searches never share mutable trace state.
package scoretrace

import (
	"sync"
	"time"
)

// Event is one entry in a ScoringTrace's append-only log.
type Event struct {
	PhaseTag    string
	Description string
	Data        interface{}
	Timestamp   time.Time
	Duration    time.Duration
}

// ScoringTrace is the finalized, immutable trace for a single search
// session.
type ScoringTrace struct {
	SessionID string
	StartedAt time.Time
	Duration  time.Duration
	Events    []Event
	Breakdown interface{}
}

// Context is threaded explicitly through scoring instead of relying on
// global state. Enabled and disabled contexts share this interface;
// disabled is a no-op.
type Context interface {
	// Event appends one event to the trace. duration may be zero when the
	// caller does not track per-event timing.
	Event(phaseTag, description string, data interface{}, duration time.Duration)
	// SetBreakdown attaches the final score breakdown to the trace.
	SetBreakdown(breakdown interface{})
	// Finalize returns the completed trace. Calling it more than once is
	// safe; Duration is recomputed from the time of the call.
	Finalize() ScoringTrace
}

type noopContext struct{}

func (noopContext) Event(string, string, interface{}, time.Duration) {}
func (noopContext) SetBreakdown(interface{})                         {}
func (noopContext) Finalize() ScoringTrace                           { return ScoringTrace{} }

// Noop is the disabled Context: every method is a zero-cost no-op.
var Noop Context = noopContext{}

type liveContext struct {
	sessionID string
	startedAt time.Time

	mu        sync.Mutex
	events    []Event
	breakdown interface{}
}

// NewContext returns a Context for sessionID. When enabled is false, it
// returns Noop regardless of sessionID.
func NewContext(sessionID string, enabled bool) Context {
	if !enabled {
		return Noop
	}
	return &liveContext{sessionID: sessionID, startedAt: time.Now()}
}

func (c *liveContext) Event(phaseTag, description string, data interface{}, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, Event{
		PhaseTag:    phaseTag,
		Description: description,
		Data:        data,
		Timestamp:   time.Now(),
		Duration:    duration,
	})
}

func (c *liveContext) SetBreakdown(breakdown interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.breakdown = breakdown
}

func (c *liveContext) Finalize() ScoringTrace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ScoringTrace{
		SessionID: c.sessionID,
		StartedAt: c.startedAt,
		Duration:  time.Since(c.startedAt),
		Events:    append([]Event{}, c.events...),
		Breakdown: c.breakdown,
	}
}
