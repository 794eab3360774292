package statemachine

import (
	"context"
)

// State is a node of the machine. Names must be unique within one machine.
type State interface {
	Name() string
}

// Event triggers a transition.
type Event interface {
	Name() string
}

// Action runs while a transition is applied. Returning an error prevents the
// transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition is a single edge of the machine.
type Transition struct {
	From    State
	To      State
	Event   Event
	Actions []Action // executed in order before the state changes
}

// StateMachine defines the operations available to callers.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
	CanFire(event Event) bool
}
