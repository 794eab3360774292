package statemachine

import (
	"fmt"
)

// Option configures a state machine during construction.
type Option func(*machine) error

// TransitionOption configures a single transition.
type TransitionOption func(*Transition)

// New creates a state machine in the given initial state.
func New(initial State, opts ...Option) (StateMachine, error) {
	if initial == nil {
		return nil, ErrInvalidInitialState
	}

	m := newMachine(initial)
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(initial State, opts ...Option) StateMachine {
	sm, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return sm
}

// WithTransition adds the edge from --event--> to.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *machine) error {
		t := Transition{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		return m.add(t)
	}
}

// WithAction appends an action to a transition. Nil actions are ignored.
func WithAction(action Action) TransitionOption {
	return func(t *Transition) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
