package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garcj88/supplychain-assistant/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	summaryKeyPrefix = "summary:"
	scanBatchSize    = 100
)

// Invalidator is the slice of the cache that mutating services need: every
// write to daily_data drops all cached summaries.
type Invalidator interface {
	InvalidateAll(ctx context.Context) error
}

// SummaryCache caches the aggregate summary payloads served to the dashboard
// and the agent summary tools. Values are JSON-encoded under a shared prefix
// so a single prefix scan invalidates everything.
type SummaryCache interface {
	Invalidator
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSummaryCache struct{}

// NewSummaryCache returns a Redis-backed cache when enabled, otherwise a
// no-op implementation so callers never branch on configuration.
func NewSummaryCache(cfg config.CacheConfig) (SummaryCache, error) {
	if !cfg.Enabled {
		return &noopSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSummaryCache{client: client, ttl: ttl}, nil
}

func NewNoopSummaryCache() SummaryCache {
	return &noopSummaryCache{}
}

func (c *redisSummaryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, summaryKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("corrupt cache entry for %s: %w", key, err)
	}
	return true, nil
}

func (c *redisSummaryCache) Set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for %s: %w", key, err)
	}
	if err := c.client.Set(ctx, summaryKeyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, summaryKeyPrefix, scanBatchSize)
}

func (c *noopSummaryCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (c *noopSummaryCache) Set(context.Context, string, interface{}) error         { return nil }
func (c *noopSummaryCache) InvalidateAll(context.Context) error                    { return nil }
