package plan

import "errors"

var (
	ErrPlanNotFound             = errors.New("plan.errors.plan_not_found")
	ErrInvalidPlanConfiguration = errors.New("plan.errors.invalid_plan_configuration")
	ErrDuplicatePlanID          = errors.New("plan.errors.duplicate_plan_id")
	ErrNoFreePlan               = errors.New("plan.errors.no_free_plan")
	ErrFailedToLoadPlans        = errors.New("plan.errors.failed_to_load_plans")
	ErrUnsupportedFormat        = errors.New("plan.errors.unsupported_format")
	ErrSourceNotFound           = errors.New("plan.errors.source_not_found")
)
