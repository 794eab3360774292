// Package gate decides whether a user may create another record of a given
// kind. It fails closed: whenever the billing state cannot be determined the
// action is denied, and nothing escapes to the caller but a Decision.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/pkg/billing"
	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/logger"
)

// MsgUnverified is shown to users when a check fails closed.
const MsgUnverified = "couldn't verify plan limits, try again"

var (
	ErrNoBillingInfo = errors.New("gate.errors.no_billing_info")
	ErrPanic         = errors.New("gate.errors.panic")
)

// Resolver supplies billing state. *billing.Resolver satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (*billing.Info, error)
}

// PromptOpener receives quota denials. *prompt.Prompt satisfies it.
type PromptOpener interface {
	OpenForLimit(lt limits.LimitType, currentUsage, limit int64)
}

// CheckLimit compares usage against the limit for lt.
// A nil info or an unknown limit type yields an unverified denial.
func CheckLimit(lt limits.LimitType, info *billing.Info) limits.Decision {
	if info == nil {
		return unverified(lt, ErrNoBillingInfo)
	}
	d, err := limits.Check(lt, info.Usage, info.Limits)
	if err != nil {
		return unverified(lt, err)
	}
	return d
}

// UsagePercentage returns the rounded usage percentage for lt, capped at 100.
// A zero limit, a nil info or an unknown limit type report 100.
func UsagePercentage(lt limits.LimitType, info *billing.Info) int {
	if info == nil {
		return 100
	}
	used, limit, err := info.UsageOf(lt)
	if err != nil {
		return 100
	}
	return limits.Percentage(used, limit)
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}

// Gate resolves billing state per call and applies CheckLimit to it.
type Gate struct {
	resolver Resolver
	log      *slog.Logger
}

// New returns a Gate over resolver.
func New(resolver Resolver, opts ...Option) *Gate {
	if resolver == nil {
		panic("gate: Resolver is required")
	}
	g := &Gate{
		resolver: resolver,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check resolves the user's billing state and decides on lt.
//
// When the quota is exhausted and opener is not nil, opener.OpenForLimit is
// called with the usage and limit of the denial. Approvals and unverified
// denials have no side effect. If ctx is done by the time the billing state
// arrives, the result is discarded and the check is denied without a prompt.
func (g *Gate) Check(ctx context.Context, userID uuid.UUID, lt limits.LimitType, opener PromptOpener) limits.Decision {
	log := g.log.With(
		logger.UserID(userID.String()),
		slog.String("limit_type", string(lt)),
	)

	if !lt.Valid() {
		d := unverified(lt, limits.ErrUnknownLimitType)
		log.WarnContext(ctx, "limit check failed", logger.Error(d.Err))
		return d
	}

	info, err := g.resolve(ctx, userID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		d := unverified(lt, ctxErr)
		log.DebugContext(ctx, "limit check discarded", logger.Error(ctxErr))
		return d
	}
	if err != nil {
		d := unverified(lt, err)
		log.WarnContext(ctx, "limit check failed", logger.Error(err))
		return d
	}

	d := CheckLimit(lt, info)
	log.DebugContext(ctx, "limit checked",
		slog.Bool("allowed", d.Allowed),
		slog.Int64("usage", d.CurrentUsage),
		slog.Int64("limit", d.Limit),
	)

	if d.Exceeded() {
		log.InfoContext(ctx, "limit reached",
			slog.Int64("usage", d.CurrentUsage),
			slog.Int64("limit", d.Limit),
			logger.PlanID(info.Plan.ID),
		)
		if opener != nil {
			opener.OpenForLimit(lt, d.CurrentUsage, d.Limit)
		}
	}
	return d
}

// CheckTransactionLimit reports whether the user may record another transaction this month.
func (g *Gate) CheckTransactionLimit(ctx context.Context, userID uuid.UUID, opener PromptOpener) bool {
	return g.Check(ctx, userID, limits.Transactions, opener).Allowed
}

// CheckDebtLimit reports whether the user may open another debt.
func (g *Gate) CheckDebtLimit(ctx context.Context, userID uuid.UUID, opener PromptOpener) bool {
	return g.Check(ctx, userID, limits.Debts, opener).Allowed
}

// CheckRecurringTransactionLimit reports whether the user may add another recurring transaction.
func (g *Gate) CheckRecurringTransactionLimit(ctx context.Context, userID uuid.UUID, opener PromptOpener) bool {
	return g.Check(ctx, userID, limits.RecurringTransactions, opener).Allowed
}

// CheckCategoryLimit reports whether the user may create another category.
func (g *Gate) CheckCategoryLimit(ctx context.Context, userID uuid.UUID, opener PromptOpener) bool {
	return g.Check(ctx, userID, limits.Categories, opener).Allowed
}

// resolve converts resolver panics into errors.
func (g *Gate) resolve(ctx context.Context, userID uuid.UUID) (info *billing.Info, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = errors.Join(ErrPanic, fmt.Errorf("%v", r))
		}
	}()
	return g.resolver.Resolve(ctx, userID)
}

func unverified(lt limits.LimitType, err error) limits.Decision {
	return limits.Decision{
		LimitType: lt,
		Allowed:   false,
		Reason:    limits.ReasonUnverified,
		Err:       err,
	}
}
