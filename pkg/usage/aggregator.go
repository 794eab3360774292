package usage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerly/ledgerly/pkg/limits"
)

// RecurringPolicy decides whether paused recurring transactions use a quota slot.
type RecurringPolicy string

const (
	// RecurringCountAll counts every recurring transaction, paused or not.
	RecurringCountAll RecurringPolicy = "all"
	// RecurringCountActiveOnly counts only recurring transactions that are not paused.
	RecurringCountActiveOnly RecurringPolicy = "active"
)

// ParseRecurringPolicy converts a config value into a RecurringPolicy.
// Empty input selects RecurringCountAll.
func ParseRecurringPolicy(s string) (RecurringPolicy, error) {
	switch p := RecurringPolicy(s); p {
	case "":
		return RecurringCountAll, nil
	case RecurringCountAll, RecurringCountActiveOnly:
		return p, nil
	}
	return "", errors.Join(ErrInvalidRecurringPolicy, fmt.Errorf("got %q", s))
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLocation sets the time zone that defines calendar months. Nil is ignored.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithRecurringPolicy sets how paused recurring transactions are counted.
func WithRecurringPolicy(p RecurringPolicy) Option {
	return func(a *Aggregator) {
		if p != "" {
			a.recurring = p
		}
	}
}

// Aggregator computes usage snapshots from a Store.
type Aggregator struct {
	store     Store
	loc       *time.Location
	recurring RecurringPolicy
}

// NewAggregator returns an Aggregator counting through store.
// Defaults: UTC months, RecurringCountAll.
func NewAggregator(store Store, opts ...Option) *Aggregator {
	if store == nil {
		panic("usage: Store is required")
	}
	a := &Aggregator{
		store:     store,
		loc:       time.UTC,
		recurring: RecurringCountAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the time zone used for month windows.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// RecurringPolicy returns the configured recurring policy.
func (a *Aggregator) RecurringPolicy() RecurringPolicy {
	return a.recurring
}

// CountMonthlyTransactions counts the user's transactions in the month containing ref.
func (a *Aggregator) CountMonthlyTransactions(ctx context.Context, userID uuid.UUID, ref time.Time) (int64, error) {
	from, to := MonthWindow(ref, a.loc)
	n, err := a.store.CountTransactions(ctx, userID, from, to)
	if err != nil {
		return 0, queryErr("transactions", err)
	}
	return n, nil
}

// CountActiveDebts counts the user's debts that are not paid.
func (a *Aggregator) CountActiveDebts(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := a.store.CountDebts(ctx, userID, ActiveDebtStatuses())
	if err != nil {
		return 0, queryErr("debts", err)
	}
	return n, nil
}

// CountRecurringTransactions counts the user's recurring transactions under the policy.
func (a *Aggregator) CountRecurringTransactions(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := a.store.CountRecurringTransactions(ctx, userID, a.recurring == RecurringCountAll)
	if err != nil {
		return 0, queryErr("recurring transactions", err)
	}
	return n, nil
}

// CountCategories counts the user's own categories.
func (a *Aggregator) CountCategories(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := a.store.CountCustomCategories(ctx, userID)
	if err != nil {
		return 0, queryErr("categories", err)
	}
	return n, nil
}

// Count returns the usage of a single dimension.
func (a *Aggregator) Count(ctx context.Context, userID uuid.UUID, lt limits.LimitType, ref time.Time) (int64, error) {
	switch lt {
	case limits.Transactions:
		return a.CountMonthlyTransactions(ctx, userID, ref)
	case limits.Debts:
		return a.CountActiveDebts(ctx, userID)
	case limits.RecurringTransactions:
		return a.CountRecurringTransactions(ctx, userID)
	case limits.Categories:
		return a.CountCategories(ctx, userID)
	}
	return 0, limits.ErrUnknownLimitType
}

// Snapshot runs all four counts concurrently.
// The first failing count cancels the rest and fails the snapshot.
func (a *Aggregator) Snapshot(ctx context.Context, userID uuid.UUID, ref time.Time) (limits.Usage, error) {
	var usage limits.Usage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		usage.MonthlyTransactions, err = a.CountMonthlyTransactions(gctx, userID, ref)
		return err
	})
	g.Go(func() (err error) {
		usage.ActiveDebts, err = a.CountActiveDebts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		usage.RecurringTransactions, err = a.CountRecurringTransactions(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		usage.Categories, err = a.CountCategories(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return limits.Usage{}, err
	}
	return usage, nil
}

func queryErr(what string, err error) error {
	return errors.Join(ErrQueryFailed, fmt.Errorf("count %s: %w", what, err))
}
