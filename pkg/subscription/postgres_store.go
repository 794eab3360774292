package subscription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ledgerly/ledgerly/pkg/pg"
)

// Querier is the subset of *pgxpool.Pool the Postgres store needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps assignments in the subscriptions table.
type PostgresStore struct {
	db Querier
}

// NewPostgresStore returns a Store backed by db.
func NewPostgresStore(db Querier) *PostgresStore {
	if db == nil {
		panic("subscription: Querier is required")
	}
	return &PostgresStore{db: db}
}

const selectAssignment = `
SELECT user_id, plan_id, status, provider_sub_id, provider_customer_id,
       created_at, updated_at, cancelled_at, trial_ends_at
FROM subscriptions
WHERE user_id = $1`

const upsertAssignment = `
INSERT INTO subscriptions (
    user_id, plan_id, status, provider_sub_id, provider_customer_id,
    created_at, updated_at, cancelled_at, trial_ends_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (user_id) DO UPDATE SET
    plan_id = EXCLUDED.plan_id,
    status = EXCLUDED.status,
    provider_sub_id = EXCLUDED.provider_sub_id,
    provider_customer_id = EXCLUDED.provider_customer_id,
    updated_at = EXCLUDED.updated_at,
    cancelled_at = EXCLUDED.cancelled_at,
    trial_ends_at = EXCLUDED.trial_ends_at`

func (s *PostgresStore) Get(ctx context.Context, userID uuid.UUID) (*Assignment, error) {
	var a Assignment
	err := s.db.QueryRow(ctx, selectAssignment, userID).Scan(
		&a.UserID, &a.PlanID, &a.Status, &a.ProviderSubID, &a.ProviderCustomerID,
		&a.CreatedAt, &a.UpdatedAt, &a.CancelledAt, &a.TrialEndsAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return &a, nil
}

func (s *PostgresStore) Save(ctx context.Context, a *Assignment) error {
	if a == nil || a.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	_, err := s.db.Exec(ctx, upsertAssignment,
		a.UserID, a.PlanID, a.Status, a.ProviderSubID, a.ProviderCustomerID,
		a.CreatedAt, a.UpdatedAt, a.CancelledAt, a.TrialEndsAt,
	)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
