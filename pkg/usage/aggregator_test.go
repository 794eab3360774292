package usage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/pkg/limits"
	"github.com/ledgerly/ledgerly/pkg/usage"
)

var ref = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

// failingStore fails only the counters listed in fail.
type failingStore struct {
	usage.Store
	err  error
	fail map[string]bool
}

func (s failingStore) CountTransactions(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	if s.fail["transactions"] {
		return 0, s.err
	}
	return s.Store.CountTransactions(ctx, userID, from, to)
}

func (s failingStore) CountDebts(ctx context.Context, userID uuid.UUID, statuses []usage.DebtStatus) (int64, error) {
	if s.fail["debts"] {
		return 0, s.err
	}
	return s.Store.CountDebts(ctx, userID, statuses)
}

func seed(store *usage.MemoryStore, userID uuid.UUID) {
	other := uuid.New()

	// transactions: 3 in May, 1 in April, 1 in June, 1 deleted in May, 1 from another user
	store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})
	store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)})
	store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)})
	store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 4, 30, 23, 59, 59, 0, time.UTC)})
	store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
	deleted := store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)})
	store.SoftDelete(deleted, ref)
	store.AddTransaction(usage.Transaction{UserID: other, Date: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)})

	// debts: open, partially paid, overdue count; paid does not
	store.AddDebt(usage.Debt{UserID: userID, Status: usage.DebtOpen})
	store.AddDebt(usage.Debt{UserID: userID, Status: usage.DebtPartiallyPaid})
	store.AddDebt(usage.Debt{UserID: userID, Status: usage.DebtOverdue})
	store.AddDebt(usage.Debt{UserID: userID, Status: usage.DebtPaid})
	store.AddDebt(usage.Debt{UserID: other, Status: usage.DebtOpen})

	// recurring: 2 active, 1 paused
	store.AddRecurringTransaction(usage.RecurringTransaction{UserID: userID, IsActive: true})
	store.AddRecurringTransaction(usage.RecurringTransaction{UserID: userID, IsActive: true})
	store.AddRecurringTransaction(usage.RecurringTransaction{UserID: userID, IsActive: false})

	// categories: 2 custom, 3 system
	store.AddCategory(usage.Category{UserID: userID})
	store.AddCategory(usage.Category{UserID: userID})
	for range 3 {
		store.AddCategory(usage.Category{UserID: userID, IsSystem: true})
	}
}

func TestAggregator_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("counts each dimension", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		userID := uuid.New()
		seed(store, userID)

		got, err := usage.NewAggregator(store).Snapshot(context.Background(), userID, ref)

		require.NoError(t, err)
		assert.Equal(t, limits.Usage{
			MonthlyTransactions:   3,
			ActiveDebts:           3,
			RecurringTransactions: 3,
			Categories:            2,
		}, got)
	})

	t.Run("active-only policy skips paused recurring", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		userID := uuid.New()
		seed(store, userID)

		agg := usage.NewAggregator(store, usage.WithRecurringPolicy(usage.RecurringCountActiveOnly))
		got, err := agg.Snapshot(context.Background(), userID, ref)

		require.NoError(t, err)
		assert.Equal(t, int64(2), got.RecurringTransactions)
		assert.Equal(t, usage.RecurringCountActiveOnly, agg.RecurringPolicy())
	})

	t.Run("empty user has zero usage", func(t *testing.T) {
		t.Parallel()

		got, err := usage.NewAggregator(usage.NewMemoryStore()).Snapshot(context.Background(), uuid.New(), ref)

		require.NoError(t, err)
		assert.Equal(t, limits.Usage{}, got)
	})

	t.Run("one failing count fails the snapshot", func(t *testing.T) {
		t.Parallel()

		store := usage.NewMemoryStore()
		userID := uuid.New()
		seed(store, userID)
		boom := errors.New("connection reset")

		agg := usage.NewAggregator(failingStore{Store: store, err: boom, fail: map[string]bool{"debts": true}})
		got, err := agg.Snapshot(context.Background(), userID, ref)

		assert.ErrorIs(t, err, usage.ErrQueryFailed)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, limits.Usage{}, got)
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := usage.NewAggregator(usage.NewMemoryStore()).Snapshot(ctx, uuid.New(), ref)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAggregator_MonthUsesLocation(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	store := usage.NewMemoryStore()
	userID := uuid.New()
	// 2024-05-31 20:00 UTC is already June 1st in Tokyo
	store.AddTransaction(usage.Transaction{UserID: userID, Date: time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)})

	utc := usage.NewAggregator(store)
	tokyo := usage.NewAggregator(store, usage.WithLocation(loc))

	n, err := utc.CountMonthlyTransactions(context.Background(), userID, ref)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = tokyo.CountMonthlyTransactions(context.Background(), userID, ref)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, loc, tokyo.Location())
}

func TestAggregator_Count(t *testing.T) {
	t.Parallel()

	store := usage.NewMemoryStore()
	userID := uuid.New()
	seed(store, userID)
	agg := usage.NewAggregator(store)

	for lt, want := range map[limits.LimitType]int64{
		limits.Transactions:          3,
		limits.Debts:                 3,
		limits.RecurringTransactions: 3,
		limits.Categories:            2,
	} {
		n, err := agg.Count(context.Background(), userID, lt, ref)
		require.NoError(t, err)
		assert.Equal(t, want, n, lt)
	}

	_, err := agg.Count(context.Background(), userID, "storage", ref)
	assert.ErrorIs(t, err, limits.ErrUnknownLimitType)
}

func TestParseRecurringPolicy(t *testing.T) {
	t.Parallel()

	p, err := usage.ParseRecurringPolicy("")
	require.NoError(t, err)
	assert.Equal(t, usage.RecurringCountAll, p)

	p, err = usage.ParseRecurringPolicy("active")
	require.NoError(t, err)
	assert.Equal(t, usage.RecurringCountActiveOnly, p)

	_, err = usage.ParseRecurringPolicy("paused")
	assert.ErrorIs(t, err, usage.ErrInvalidRecurringPolicy)
}

func TestMemoryStore_SoftDelete(t *testing.T) {
	t.Parallel()

	store := usage.NewMemoryStore()
	userID := uuid.New()
	id := store.AddCategory(usage.Category{UserID: userID})

	n, err := store.CountCustomCategories(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.True(t, store.SoftDelete(id, ref))
	assert.False(t, store.SoftDelete(uuid.New(), ref))

	n, err = store.CountCustomCategories(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
