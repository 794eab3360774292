package limits

// Reason explains a Decision.
type Reason string

const (
	ReasonWithinLimit   Reason = "within_limit"
	ReasonLimitExceeded Reason = "limit_exceeded"
	// ReasonUnverified marks a fail-closed denial: usage or plan could not be determined.
	ReasonUnverified Reason = "unverified"
)

// Decision is the outcome of a limit check.
type Decision struct {
	LimitType    LimitType `json:"limit_type"`
	Allowed      bool      `json:"allowed"`
	CurrentUsage int64     `json:"current_usage"`
	Limit        int64     `json:"limit"`
	Reason       Reason    `json:"reason"`
	// Err is the cause of an unverified decision.
	Err error `json:"-"`
}

// Exceeded reports whether the decision is a quota denial, as opposed to an
// approval or a fail-closed denial.
func (d Decision) Exceeded() bool {
	return !d.Allowed && d.Reason == ReasonLimitExceeded
}

// Allowed reports whether one more record fits under limit.
func Allowed(used, limit int64) bool {
	return used < limit
}

// Check compares the usage for lt against its limit.
func Check(lt LimitType, usage Usage, lim Limits) (Decision, error) {
	used, err := usage.Get(lt)
	if err != nil {
		return Decision{LimitType: lt, Reason: ReasonUnverified, Err: err}, err
	}
	limit, err := lim.Get(lt)
	if err != nil {
		return Decision{LimitType: lt, Reason: ReasonUnverified, Err: err}, err
	}

	d := Decision{
		LimitType:    lt,
		Allowed:      Allowed(used, limit),
		CurrentUsage: used,
		Limit:        limit,
		Reason:       ReasonWithinLimit,
	}
	if !d.Allowed {
		d.Reason = ReasonLimitExceeded
	}
	return d, nil
}

// Percentage returns used/limit as a rounded percentage capped at 100.
// A zero limit reports 100 so progress bars show a full quota instead of NaN.
func Percentage(used, limit int64) int {
	if limit <= 0 {
		return 100
	}
	if used <= 0 {
		return 0
	}
	if used >= limit {
		return 100
	}
	// half-up rounding in integer space
	return int((used*100 + limit/2) / limit)
}

// Remaining returns how many more records fit under limit.
// Unlimited limits report Unlimited.
func Remaining(used, limit int64) int64 {
	if IsUnlimited(limit) {
		return Unlimited
	}
	return max(limit-used, 0)
}
