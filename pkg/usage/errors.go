package usage

import "errors"

var (
	ErrQueryFailed            = errors.New("usage.errors.query_failed")
	ErrInvalidRecurringPolicy = errors.New("usage.errors.invalid_recurring_policy")
)
