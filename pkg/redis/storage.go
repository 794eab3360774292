package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Storage is a prefixed key-value wrapper over a go-redis client.
type Storage struct {
	db     redis.UniversalClient
	prefix string
}

// NewStorage wraps redisClient. Every key is stored under prefix.
func NewStorage(redisClient redis.UniversalClient, prefix string) *Storage {
	return &Storage{
		db:     redisClient,
		prefix: prefix,
	}
}

// Get returns nil for empty keys and missing values (redis.Nil becomes nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if len(key) == 0 {
		return nil, nil
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores the value without expiration. Empty keys and values are ignored.
func (s *Storage) Set(ctx context.Context, key string, val []byte) error {
	if len(key) == 0 || len(val) == 0 {
		return nil
	}
	return s.db.Set(ctx, s.prefix+key, val, 0).Err()
}
