package limits

import "errors"

var (
	ErrUnknownLimitType = errors.New("limits.errors.unknown_limit_type")
	ErrNegativeLimit    = errors.New("limits.errors.negative_limit")
)
