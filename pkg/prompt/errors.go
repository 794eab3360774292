package prompt

import (
	"errors"

	"github.com/ledgerly/ledgerly/pkg/statemachine"
)

var (
	ErrPlanRequired  = errors.New("prompt.errors.plan_required")
	ErrInvalidDenial = errors.New("prompt.errors.invalid_denial")
)

// ErrNoTransition indicates the event is not accepted in the current status.
type ErrNoTransition = statemachine.ErrNoTransitionAvailable

// IsNoTransitionError reports whether err is an *ErrNoTransition.
func IsNoTransitionError(err error) bool {
	return statemachine.IsNoTransitionAvailableError(err)
}
