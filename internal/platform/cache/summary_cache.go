// Package cache holds the Redis-backed dashboard summary cache. The summary
// is a pure function of the owner's rows, so the cache is best-effort: misses
// and Redis outages fall through to recomputation, and every write path
// invalidates the owner's key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "dashboard:summary:" // dashboard:summary:{user_id}

// SummaryCache caches per-user dashboard summaries with a short TTL.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(userID string) string {
	return summaryKeyPrefix + userID
}

// Get returns the cached summary, or (nil, nil) on a cache miss.
func (c *SummaryCache) Get(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	data, err := c.client.Get(ctx, summaryKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read summary cache: %w", err)
	}
	var summary domain.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, nil
}

// Set stores the summary under the owner's key with the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, userID string, summary *domain.DashboardSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// Invalidate drops the owner's cached summary.
func (c *SummaryCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, summaryKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}
