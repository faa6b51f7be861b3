package session

import (
	"context" // Context for Redis operations
	"strconv" // User ID conversion
	"time"    // Session TTL

	"github.com/redis/go-redis/v9" // Redis client
)

const keyPrefix = "session:" // Redis key namespace for sessions

// RedisStore keeps sessions in Redis with a TTL, so expiry is enforced
// server-side regardless of what the client does with its cookie.
type RedisStore struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Session lifetime
}

// NewRedisStore creates a session store backed by rdb with lifetime ttl
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create establishes a new session for userID and returns its token
func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token, err := newToken() // Generate an opaque session token
	if err != nil {
		return "", err
	}
	// Store token -> userID with the configured TTL
	if err := s.rdb.Set(ctx, keyPrefix+token, strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to its user ID
func (s *RedisStore) Get(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result() // Look up the session
	if err == redis.Nil {
		return 0, false, nil // Session absent or expired
	} else if err != nil {
		return 0, false, err // Other Redis error
	}
	id, err := strconv.ParseUint(val, 10, 64) // Decode the stored user ID
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

// Delete invalidates a session
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err() // Remove the session key
}
