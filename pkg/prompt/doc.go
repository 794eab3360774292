// Package prompt implements the upgrade prompt shown when a user hits a plan
// limit.
//
// The prompt is a two-state machine. It is Closed until a quota denial or an
// explicit "view plans" opens it, and it returns to Closed, dropping the
// denial context, when the user dismisses or closes it. Choosing a plan does
// not change the user's plan: Upgrade hands a Checkout off to the payment
// provider and leaves the prompt open until the caller closes it.
//
//	| from   | event        | to     |
//	|--------|--------------|--------|
//	| closed | limit_denied | open   |
//	| closed | view_plans   | open   |
//	| open   | limit_denied | open   |
//	| open   | dismiss      | closed |
//	| open   | close        | closed |
//	| open   | upgrade      | open   |
//
// The table is a statemachine.StateMachine; context changes are transition
// actions. Any other pair returns *ErrNoTransition.
//
// A Prompt is owned by the surface that displays it. Listeners registered with
// Subscribe are called after every transition; the returned func unsubscribes
// and must be called when the listener goes away.
package prompt
