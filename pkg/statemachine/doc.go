// Package statemachine is a small finite-state machine used by UI-independent
// flows such as the upgrade prompt.
//
// States and events are any types with a Name method; transitions are looked
// up by name in a map[from][event]. Each from/event pair has exactly one
// target. Actions attached to a transition run in order while the machine
// lock is held and before the state changes; the first failing action aborts
// the transition and leaves the machine where it was.
//
//	sm := statemachine.MustNew(closed,
//		statemachine.WithTransition(closed, open, show,
//			statemachine.WithAction(remember)),
//		statemachine.WithTransition(open, closed, hide),
//	)
//	if err := sm.Fire(ctx, show, payload); err != nil {
//		if statemachine.IsNoTransitionAvailableError(err) {
//			// event not accepted in the current state
//		}
//	}
//
// Fire, Current and CanFire are safe for concurrent use.
package statemachine
