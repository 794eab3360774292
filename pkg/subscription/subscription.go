package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds a user to a plan. Each user has at most one.
type Assignment struct {
	UserID             uuid.UUID  `json:"user_id"`
	PlanID             string     `json:"plan_id"`
	Status             Status     `json:"status"`
	ProviderSubID      string     `json:"provider_sub_id,omitempty"`      // empty for free plans
	ProviderCustomerID string     `json:"provider_customer_id,omitempty"` // needed for the customer portal
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	TrialEndsAt        *time.Time `json:"trial_ends_at,omitempty"`
}

// IsTrialing returns true if the assignment is in trial status.
func (a *Assignment) IsTrialing() bool {
	return a.Status == StatusTrialing
}

// IsCancelled returns true if the assignment is cancelled.
func (a *Assignment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// TrialDaysRemainingAt returns the number of days remaining in the trial at now,
// rounded to the nearest day. Returns 0 outside of a trial.
func (a *Assignment) TrialDaysRemainingAt(now time.Time) int {
	if !a.IsTrialing() || a.TrialEndsAt == nil {
		return 0
	}

	remaining := a.TrialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	days := remaining.Hours() / 24
	return int(days + 0.5)
}

func (a *Assignment) clone() *Assignment {
	c := *a
	if a.CancelledAt != nil {
		t := *a.CancelledAt
		c.CancelledAt = &t
	}
	if a.TrialEndsAt != nil {
		t := *a.TrialEndsAt
		c.TrialEndsAt = &t
	}
	return &c
}
