package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of pgxpool.Pool the Postgres store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore counts records in the tables created by the pg migrations.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore returns a Store backed by Postgres.
func NewPostgresStore(db Querier) *PostgresStore {
	if db == nil {
		panic("usage: postgres querier is required")
	}
	return &PostgresStore{db: db}
}

const (
	countTransactionsSQL = `
SELECT count(*) FROM transactions
WHERE user_id = $1 AND deleted_at IS NULL
  AND occurred_at >= $2 AND occurred_at < $3`

	countDebtsSQL = `
SELECT count(*) FROM debts
WHERE user_id = $1 AND deleted_at IS NULL AND status = ANY($2)`

	countRecurringSQL = `
SELECT count(*) FROM recurring_transactions
WHERE user_id = $1 AND deleted_at IS NULL AND ($2 OR is_active)`

	countCategoriesSQL = `
SELECT count(*) FROM categories
WHERE user_id = $1 AND deleted_at IS NULL AND NOT is_system`
)

func (s *PostgresStore) CountTransactions(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	return s.count(ctx, countTransactionsSQL, userID, from, to)
}

func (s *PostgresStore) CountDebts(ctx context.Context, userID uuid.UUID, statuses []DebtStatus) (int64, error) {
	raw := make([]string, 0, len(statuses))
	for _, st := range statuses {
		raw = append(raw, string(st))
	}
	return s.count(ctx, countDebtsSQL, userID, raw)
}

func (s *PostgresStore) CountRecurringTransactions(ctx context.Context, userID uuid.UUID, includePaused bool) (int64, error) {
	return s.count(ctx, countRecurringSQL, userID, includePaused)
}

func (s *PostgresStore) CountCustomCategories(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.count(ctx, countCategoriesSQL, userID)
}

func (s *PostgresStore) count(ctx context.Context, sql string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
