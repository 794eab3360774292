package usage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transaction is the part of a transaction record the counters read.
type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      time.Time
	DeletedAt *time.Time
}

// Debt is the part of a debt record the counters read.
type Debt struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Status    DebtStatus
	DeletedAt *time.Time
}

// RecurringTransaction is the part of a recurring transaction record the counters read.
type RecurringTransaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IsActive  bool
	DeletedAt *time.Time
}

// Category is the part of a category record the counters read.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	IsSystem  bool
	DeletedAt *time.Time
}

// MemoryStore keeps records in process. Safe for concurrent use.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]Transaction
	debts        map[uuid.UUID]Debt
	recurring    map[uuid.UUID]RecurringTransaction
	categories   map[uuid.UUID]Category
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[uuid.UUID]Transaction),
		debts:        make(map[uuid.UUID]Debt),
		recurring:    make(map[uuid.UUID]RecurringTransaction),
		categories:   make(map[uuid.UUID]Category),
	}
}

// AddTransaction inserts or replaces a transaction. A zero ID is assigned.
func (s *MemoryStore) AddTransaction(t Transaction) uuid.UUID {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
	return t.ID
}

// AddDebt inserts or replaces a debt. A zero ID is assigned.
func (s *MemoryStore) AddDebt(d Debt) uuid.UUID {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debts[d.ID] = d
	return d.ID
}

// AddRecurringTransaction inserts or replaces a recurring transaction. A zero ID is assigned.
func (s *MemoryStore) AddRecurringTransaction(r RecurringTransaction) uuid.UUID {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recurring[r.ID] = r
	return r.ID
}

// AddCategory inserts or replaces a category. A zero ID is assigned.
func (s *MemoryStore) AddCategory(c Category) uuid.UUID {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return c.ID
}

// SoftDelete marks the record with the given id as deleted at the given time.
// It reports whether a record was found.
func (s *MemoryStore) SoftDelete(id uuid.UUID, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transactions[id]; ok {
		t.DeletedAt = &at
		s.transactions[id] = t
		return true
	}
	if d, ok := s.debts[id]; ok {
		d.DeletedAt = &at
		s.debts[id] = d
		return true
	}
	if r, ok := s.recurring[id]; ok {
		r.DeletedAt = &at
		s.recurring[id] = r
		return true
	}
	if c, ok := s.categories[id]; ok {
		c.DeletedAt = &at
		s.categories[id] = c
		return true
	}
	return false
}

func (s *MemoryStore) CountTransactions(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, t := range s.transactions {
		if t.UserID != userID || t.DeletedAt != nil {
			continue
		}
		if !t.Date.Before(from) && t.Date.Before(to) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountDebts(ctx context.Context, userID uuid.UUID, statuses []DebtStatus) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, d := range s.debts {
		if d.UserID == userID && d.DeletedAt == nil && slices.Contains(statuses, d.Status) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountRecurringTransactions(ctx context.Context, userID uuid.UUID, includePaused bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, r := range s.recurring {
		if r.UserID != userID || r.DeletedAt != nil {
			continue
		}
		if r.IsActive || includePaused {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountCustomCategories(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, c := range s.categories {
		if c.UserID == userID && c.DeletedAt == nil && !c.IsSystem {
			n++
		}
	}
	return n, nil
}
