package subscription

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// KV is the key-value contract the Redis store is written against.
// *redis.Storage from pkg/redis satisfies it.
type KV interface {
	// Get returns nil bytes and a nil error for missing keys.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
}

// RedisStore keeps assignments as JSON documents, one key per user.
type RedisStore struct {
	kv KV
}

// NewRedisStore returns a Store backed by kv.
func NewRedisStore(kv KV) *RedisStore {
	if kv == nil {
		panic("subscription: KV is required")
	}
	return &RedisStore{kv: kv}
}

func assignmentKey(userID uuid.UUID) string {
	return "subscription:" + userID.String()
}

func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (*Assignment, error) {
	raw, err := s.kv.Get(ctx, assignmentKey(userID))
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	if raw == nil {
		return nil, ErrSubscriptionNotFound
	}

	var a Assignment
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return &a, nil
}

func (s *RedisStore) Save(ctx context.Context, a *Assignment) error {
	if a == nil || a.UserID == uuid.Nil {
		return ErrInvalidUserID
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if err := s.kv.Set(ctx, assignmentKey(a.UserID), raw); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
