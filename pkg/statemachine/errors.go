package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition   = errors.New("invalid transition: from, to, or event cannot be nil")
	ErrInvalidEvent        = errors.New("invalid event: event cannot be nil")
	ErrInvalidInitialState = errors.New("invalid initial state: state cannot be nil")
	ErrDuplicateTransition = errors.New("duplicate transition for the same state and event")
)

// ErrNoTransitionAvailable indicates the current state does not accept the event.
type ErrNoTransitionAvailable struct {
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.StateName, e.EventName)
}

func NewErrNoTransitionAvailable(stateName, eventName string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{
		StateName: stateName,
		EventName: eventName,
	}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}
