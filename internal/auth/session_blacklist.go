package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// JwtBlacklistStore keep revoked tokens until they would expire anyway.
type JwtBlacklistStore interface {
	// IsBlacklisted checks if the given JWT ID (jti) is blacklisted.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	// AddToBlacklist adds the given JWT ID (jti) to the blacklist with an expiration time.
	AddToBlacklist(ctx context.Context, jti string, exp time.Time) error
}

// NewBlacklistStore return Redis backed store when redisURL is set, in-memory store otherwise.
func NewBlacklistStore(ctx context.Context, redisURL string) (JwtBlacklistStore, error) {
	if redisURL == "" {
		return NewInMemoryBlacklistStore(), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisBlacklistStore(client), nil
}

// InMemoryBlacklistStore is a process local JwtBlacklistStore.
type InMemoryBlacklistStore struct {
	blacklist map[string]time.Time
	mu        sync.RWMutex
}

// NewInMemoryBlacklistStore creates store and start its periodic clean up.
func NewInMemoryBlacklistStore() *InMemoryBlacklistStore {
	store := &InMemoryBlacklistStore{
		blacklist: make(map[string]time.Time),
	}
	go periodiclyCleanUp(store, time.Minute*5)
	return store
}

func periodiclyCleanUp(store *InMemoryBlacklistStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		store.CleanUpExpired()
	}
}

// CleanUpExpired drop entries whose token already expired.
func (s *InMemoryBlacklistStore) CleanUpExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for jti, exp := range s.blacklist {
		if exp.Before(now) {
			delete(s.blacklist, jti)
		}
	}
}

// IsBlacklisted implements JwtBlacklistStore.
func (s *InMemoryBlacklistStore) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blacklist[jti]
	return exists, nil
}

// AddToBlacklist implements JwtBlacklistStore.
func (s *InMemoryBlacklistStore) AddToBlacklist(_ context.Context, jti string, exp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[jti] = exp
	return nil
}

const redisBlacklistPrefix = "jwt:blacklist:"

// RedisBlacklistStore share revoked tokens between instances through Redis keys
// that expire together with the token.
type RedisBlacklistStore struct {
	client *redis.Client
}

// NewRedisBlacklistStore creates RedisBlacklistStore on client.
func NewRedisBlacklistStore(client *redis.Client) *RedisBlacklistStore {
	return &RedisBlacklistStore{client: client}
}

// IsBlacklisted implements JwtBlacklistStore.
func (s *RedisBlacklistStore) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, redisBlacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// AddToBlacklist implements JwtBlacklistStore. Already expired token is not stored.
func (s *RedisBlacklistStore) AddToBlacklist(ctx context.Context, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, redisBlacklistPrefix+jti, "1", ttl).Err()
}

// Close release the Redis connection pool.
func (s *RedisBlacklistStore) Close() error {
	return s.client.Close()
}
