package billing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/logger"
	"github.com/ledgerly/ledgerly/pkg/plan"
	"github.com/ledgerly/ledgerly/pkg/subscription"
)

// PlanIDResolver returns the id of the plan a user is assigned to.
// subscription.Service.PlanID satisfies it.
type PlanIDResolver func(ctx context.Context, userID uuid.UUID) (string, error)

// PlanCatalog is the part of *plan.Catalog the resolver needs.
type PlanCatalog interface {
	Get(id string) (plan.Plan, error)
	Free() plan.Plan
}

// UsageCounter computes a user's usage. *usage.Aggregator satisfies it.
type UsageCounter interface {
	Snapshot(ctx context.Context, userID uuid.UUID, ref time.Time) (limits.Usage, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// Resolver builds Info from the user's plan and a fresh usage snapshot.
type Resolver struct {
	plans  PlanCatalog
	planID PlanIDResolver
	usage  UsageCounter
	log    *slog.Logger
	now    func() time.Time
}

// NewResolver returns a Resolver. Panics if a dependency is nil.
func NewResolver(plans PlanCatalog, planID PlanIDResolver, usage UsageCounter, opts ...Option) *Resolver {
	if plans == nil {
		panic("billing: PlanCatalog is required")
	}
	if planID == nil {
		panic("billing: PlanIDResolver is required")
	}
	if usage == nil {
		panic("billing: UsageCounter is required")
	}

	r := &Resolver{
		plans:  plans,
		planID: planID,
		usage:  usage,
		log:    logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the billing state of userID.
//
// Errors: ErrUnauthenticated for uuid.Nil, ErrUsageUnavailable (joined with
// the cause) when usage cannot be counted. Plan resolution failures are not
// errors; see ResolvePlan.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (*Info, error) {
	p, defaulted, err := r.ResolvePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	u, err := r.usage.Snapshot(ctx, userID, now)
	if err != nil {
		return nil, errors.Join(ErrUsageUnavailable, err)
	}

	return &Info{
		Plan:          p,
		Usage:         u,
		Limits:        p.Limits,
		IsFree:        p.IsFree(),
		ResolvedAt:    now,
		PlanDefaulted: defaulted,
	}, nil
}

// ResolvePlan returns the plan userID is entitled to. When the assignment
// cannot be read or names a plan missing from the catalog, it logs a warning
// and returns the free plan with defaulted set. Users without an active
// subscription are logged at debug since that is the normal free-tier path.
func (r *Resolver) ResolvePlan(ctx context.Context, userID uuid.UUID) (p plan.Plan, defaulted bool, err error) {
	if userID == uuid.Nil {
		return plan.Plan{}, false, ErrUnauthenticated
	}

	id, err := r.planID(ctx, userID)
	if err == nil {
		p, err = r.plans.Get(id)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return plan.Plan{}, false, ctxErr
		}
		free := r.plans.Free()
		level := slog.LevelWarn
		if errors.Is(err, subscription.ErrNoActivePlan) {
			level = slog.LevelDebug
		}
		r.log.Log(ctx, level, "plan not resolved, using free plan",
			logger.UserID(userID.String()),
			logger.PlanID(id),
			slog.String("fallback_plan_id", free.ID),
			logger.Error(errors.Join(ErrPlanResolution, err)),
		)
		return free, true, nil
	}
	return p, false, nil
}

// Percentages maps every limit type to its usage percentage in info.
func (r *Resolver) Percentages(info *Info) map[limits.LimitType]int {
	return info.Percentages()
}
