package draws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"megasena-monitor/core/cache"
	"megasena-monitor/core/reconcile"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of *redis.Client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisStore shares confirmed draws between instances. Keys never expire.
type RedisStore struct {
	client RedisClient
	keys   cache.Config
}

// NewRedisStore creates a Redis backed draw store.
func NewRedisStore(client RedisClient, prefix string) *RedisStore {
	return &RedisStore{client: client, keys: cache.Config{Prefix: prefix}}
}

func (s *RedisStore) key(number int) string {
	return s.keys.Key("draw", strconv.Itoa(number))
}

// Get returns a cached draw, or reconcile.ErrDrawNotStored.
func (s *RedisStore) Get(ctx context.Context, number int) (*reconcile.DrawResult, error) {
	data, err := s.client.Get(ctx, s.key(number)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, reconcile.ErrDrawNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draw %d from redis: %w", number, err)
	}

	var result reconcile.DrawResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached draw %d: %w", number, err)
	}
	return &result, nil
}

// Save caches a draw unless it is already present.
func (s *RedisStore) Save(ctx context.Context, draw *reconcile.DrawResult) error {
	data, err := json.Marshal(draw)
	if err != nil {
		return fmt.Errorf("failed to encode draw %d: %w", draw.Number, err)
	}
	if err := s.client.SetNX(ctx, s.key(draw.Number), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to cache draw %d: %w", draw.Number, err)
	}
	return nil
}
