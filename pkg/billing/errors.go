package billing

import "errors"

var (
	ErrUnauthenticated    = errors.New("billing.errors.unauthenticated")
	ErrPlanResolution     = errors.New("billing.errors.plan_resolution")
	ErrUsageUnavailable   = errors.New("billing.errors.usage_unavailable")
	ErrInvalidTimezone    = errors.New("billing.errors.invalid_timezone")
	ErrInvalidBillingConf = errors.New("billing.errors.invalid_config")
)
