package framework

import (
	"context"
	"time"
)

// Named is implemented by components that identify themselves in logs.
type Named interface {
	Name() string
}

// Runnable is a long-running background task bound to a context.
type Runnable interface {
	Run(context.Context) error
}

// Message is an item posted to the loop for a following iteration.
type Message interface{}

// Controller is one unit of per-iteration work.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc is the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

// Iteration phases, executed in order within one loop pass.
const (
	// PhaseInput runs first, for controllers feeding input into the loop.
	PhaseInput int = iota
	// PhaseControl interprets input and mutates owned state.
	PhaseControl
	// PhaseOutput pushes state to sinks and peers.
	PhaseOutput
	// PhaseIdle runs last, for housekeeping.
	PhaseIdle

	phaseCount
)

// LoopControl is the loop surface safe to use from other goroutines.
type LoopControl interface {
	// PostMessage enqueues a message for the next iteration.
	PostMessage(Message)
	// TriggerNext schedules an immediate iteration.
	TriggerNext()
}

// ControlContext is handed to controllers during one iteration.
type ControlContext interface {
	LoopControl
	// Context returns the loop run context.
	Context() context.Context
	// Time returns the iteration start time.
	Time() time.Time
	// Phase returns the currently executing phase.
	Phase() int
	// TakeMessages removes and returns all messages that were pending
	// when the iteration started.
	TakeMessages() []Message
}
