package subscription

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps assignments in process.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*Assignment
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[uuid.UUID]*Assignment)}
}

func (s *MemoryStore) Get(ctx context.Context, userID uuid.UUID) (*Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[userID]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return a.clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, a *Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a == nil || a.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[a.UserID] = a.clone()
	return nil
}
