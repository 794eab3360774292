package subscription

import (
	"context"

	"github.com/google/uuid"
)

// Store persists plan assignments keyed by user id.
type Store interface {
	// Get retrieves the assignment of a user.
	// Returns ErrSubscriptionNotFound if none exists.
	Get(ctx context.Context, userID uuid.UUID) (*Assignment, error)

	// Save creates or replaces the assignment of a.UserID.
	Save(ctx context.Context, a *Assignment) error
}
