package subscription

// Status is the provider-reported state of a plan assignment.
type Status string

const (
	StatusTrialing  Status = "trialing"
	StatusActive    Status = "active"
	StatusPastDue   Status = "past_due"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// KeepsPlan reports whether a user in this status is still entitled to the assigned plan.
// Past-due users keep the plan while the provider retries the payment.
func (s Status) KeepsPlan() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue:
		return true
	}
	return false
}

// CheckoutOptions contains options for creating a checkout session.
type CheckoutOptions struct {
	Email      string // Pre-fill billing email if known
	SuccessURL string // Redirect after successful payment
	CancelURL  string // Redirect if customer cancels
}
