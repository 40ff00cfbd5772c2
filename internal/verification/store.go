package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "verify:"

// Key derives the store key isolating a verification attempt per client
// session and target address. Two sessions requesting codes for the same
// email do not interfere.
func Key(sessionID, email string) string {
	return keyPrefix + sessionID + ":" + email
}

// CodeStore is the ephemeral TTL-keyed store holding at most one pending
// code per key. Entries are never deleted explicitly; they lapse on expiry.
type CodeStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	// RemainingTTL reports the time left before the entry lapses. The bool
	// is false when no entry exists.
	RemainingTTL(ctx context.Context, key string) (time.Duration, bool, error)
	// Get returns the stored code. The bool is false when no entry exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetWithTTL writes the code, overwriting any prior entry for the key
	// and resetting its lifetime.
	SetWithTTL(ctx context.Context, key, code string, ttl time.Duration) error
}

// RedisCodeStore implements CodeStore on a Redis client.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore wraps the given client.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func (s *RedisCodeStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("code store exists: %w", err)
	}
	return n > 0, nil
}

func (s *RedisCodeStore) RemainingTTL(ctx context.Context, key string) (time.Duration, bool, error) {
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, fmt.Errorf("code store ttl: %w", err)
	}
	// Redis reports -2 for a missing key and -1 for one without expiry;
	// neither counts as a live pending code.
	if ttl < 0 {
		return 0, false, nil
	}
	return ttl, true, nil
}

func (s *RedisCodeStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("code store get: %w", err)
	}
	return val, true, nil
}

func (s *RedisCodeStore) SetWithTTL(ctx context.Context, key, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("code store set: %w", err)
	}
	return nil
}
