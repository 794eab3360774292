package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/plan"
)

// PlanLookup is the part of *plan.Catalog the service needs.
type PlanLookup interface {
	Get(id string) (plan.Plan, error)
}

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service manages plan assignments: it answers which plan a user is on,
// hands users off to the provider's checkout, and applies provider webhooks.
type Service struct {
	plans    PlanLookup
	provider BillingProvider
	store    Store
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new Service.
// Panics if any dependency is nil to fail fast during initialization.
func NewService(plans PlanLookup, provider BillingProvider, store Store, opts ...ServiceOption) *Service {
	if plans == nil {
		panic("subscription: PlanLookup is required")
	}
	if provider == nil {
		panic("subscription: BillingProvider is required")
	}
	if store == nil {
		panic("subscription: Store is required")
	}

	s := &Service{
		plans:    plans,
		provider: provider,
		store:    store,
		log:      logger.Discard(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAssignment returns the stored assignment of a user.
func (s *Service) GetAssignment(ctx context.Context, userID uuid.UUID) (*Assignment, error) {
	return s.store.Get(ctx, userID)
}

// PlanID returns the id of the plan the user is entitled to.
// A missing assignment, a cancelled or expired one, or an elapsed trial
// yields ErrNoActivePlan.
func (s *Service) PlanID(ctx context.Context, userID uuid.UUID) (string, error) {
	a, err := s.store.Get(ctx, userID)
	if errors.Is(err, ErrSubscriptionNotFound) {
		return "", ErrNoActivePlan
	}
	if err != nil {
		return "", err
	}

	if !a.Status.KeepsPlan() {
		return "", errors.Join(ErrNoActivePlan, fmt.Errorf("status %s", a.Status))
	}
	if a.IsTrialing() && a.TrialEndsAt != nil && !s.now().Before(*a.TrialEndsAt) {
		return "", errors.Join(ErrNoActivePlan, errors.New("trial ended"))
	}
	return a.PlanID, nil
}

// CreateCheckoutLink returns a hosted checkout link for planID.
// The user's assignment is not touched; it changes only when the provider
// confirms the payment through a webhook.
func (s *Service) CreateCheckoutLink(ctx context.Context, userID uuid.UUID, planID string, opts CheckoutOptions) (*CheckoutLink, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	p, err := s.plans.Get(planID)
	if err != nil || !p.IsActive {
		return nil, ErrPlanNotFound
	}
	if p.IsFree() {
		return nil, ErrCheckoutNotRequired
	}

	link, err := s.provider.CreateCheckoutLink(ctx, CheckoutRequest{
		PlanID:     p.ID,
		UserID:     userID.String(),
		Email:      opts.Email,
		SuccessURL: opts.SuccessURL,
		CancelURL:  opts.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "checkout link created",
		logger.UserID(userID.String()),
		logger.PlanID(p.ID),
	)
	return link, nil
}

// GetCustomerPortalLink returns a link to the provider's portal for paying users.
func (s *Service) GetCustomerPortalLink(ctx context.Context, userID uuid.UUID) (*PortalLink, error) {
	a, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a.ProviderCustomerID == "" {
		return nil, ErrMissingProviderCustomerID
	}
	return s.provider.GetCustomerPortalLink(ctx, a)
}

// HandleWebhook verifies a provider webhook and applies it to the user's assignment.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	userID, err := uuid.Parse(event.UserID)
	if err != nil || userID == uuid.Nil {
		return errors.Join(ErrInvalidUserID, fmt.Errorf("webhook %s: user id %q", event.ProviderEvent, event.UserID))
	}

	log := s.log.With(
		logger.UserID(userID.String()),
		slog.String("event", string(event.Type)),
	)

	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		err = s.applyPlan(ctx, userID, event)
	case EventSubscriptionCancelled:
		err = s.update(ctx, userID, func(a *Assignment, now time.Time) {
			a.Status = StatusCancelled
			a.CancelledAt = &now
		})
	case EventSubscriptionResumed:
		err = s.update(ctx, userID, func(a *Assignment, _ time.Time) {
			a.Status = StatusActive
			a.CancelledAt = nil
		})
	case EventPaymentFailed:
		err = s.update(ctx, userID, func(a *Assignment, _ time.Time) {
			a.Status = StatusPastDue
		})
	case EventPaymentSucceeded:
		err = s.update(ctx, userID, func(a *Assignment, _ time.Time) {
			if a.Status == StatusPastDue {
				a.Status = StatusActive
			}
		})
	default:
		log.DebugContext(ctx, "webhook event ignored", slog.String("provider_event", event.ProviderEvent))
		return nil
	}
	// Status events can arrive for users with no stored assignment; the
	// provider retries anything that is not acknowledged.
	if errors.Is(err, ErrSubscriptionNotFound) {
		log.InfoContext(ctx, "webhook acknowledged without assignment")
		return nil
	}
	if err != nil {
		log.WarnContext(ctx, "webhook not applied", logger.Error(err))
		return err
	}

	log.InfoContext(ctx, "webhook applied", logger.PlanID(event.PlanID))
	return nil
}

// applyPlan upserts the assignment from a created or updated event.
func (s *Service) applyPlan(ctx context.Context, userID uuid.UUID, event *WebhookEvent) error {
	p, err := s.plans.Get(event.PlanID)
	if err != nil {
		return errors.Join(ErrPlanNotFound, fmt.Errorf("plan %q", event.PlanID))
	}

	now := s.now()
	a, err := s.store.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrSubscriptionNotFound):
		a = &Assignment{UserID: userID, CreatedAt: now}
	case err != nil:
		return err
	}

	status := event.Status
	if status == "" {
		status = StatusActive
	}

	a.PlanID = p.ID
	a.Status = status
	a.UpdatedAt = now
	a.CancelledAt = nil
	if event.SubscriptionID != "" {
		a.ProviderSubID = event.SubscriptionID
	}
	if event.CustomerID != "" {
		a.ProviderCustomerID = event.CustomerID
	}
	if status == StatusTrialing && p.TrialDays > 0 && a.TrialEndsAt == nil {
		end := p.TrialEndsAt(now)
		a.TrialEndsAt = &end
	}

	return s.store.Save(ctx, a)
}

func (s *Service) update(ctx context.Context, userID uuid.UUID, fn func(a *Assignment, now time.Time)) error {
	a, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	now := s.now()
	fn(a, now)
	a.UpdatedAt = now
	return s.store.Save(ctx, a)
}
