package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DebtStatus is the lifecycle state of a debt record.
type DebtStatus string

const (
	DebtOpen          DebtStatus = "open"
	DebtPartiallyPaid DebtStatus = "partially_paid"
	DebtOverdue       DebtStatus = "overdue"
	DebtPaid          DebtStatus = "paid"
)

// ActiveDebtStatuses are the statuses that consume the active-debts quota.
func ActiveDebtStatuses() []DebtStatus {
	return []DebtStatus{DebtOpen, DebtPartiallyPaid, DebtOverdue}
}

// Store is the data store query interface the aggregator counts through.
// Implementations must ignore soft-deleted records.
type Store interface {
	// CountTransactions counts transactions dated in [from, to).
	CountTransactions(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
	// CountDebts counts debts whose status is one of statuses.
	CountDebts(ctx context.Context, userID uuid.UUID, statuses []DebtStatus) (int64, error)
	// CountRecurringTransactions counts recurring transactions, paused ones only if includePaused.
	CountRecurringTransactions(ctx context.Context, userID uuid.UUID, includePaused bool) (int64, error)
	// CountCustomCategories counts categories that are not system defaults.
	CountCustomCategories(ctx context.Context, userID uuid.UUID) (int64, error)
}
