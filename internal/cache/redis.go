package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DREAMSCAPE-AI/dreamscape-services-sub001/internal/domain"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(userID int64, dom string, limit int) string {
	return fmt.Sprintf("rec:user:%d:%s:limit:%d", userID, dom, limit)
}

// Get a precomputed result from cache. The second return value reports
// whether the key was present.
func (c *Cache) Get(ctx context.Context, userID int64, dom string, limit int) (*domain.RecommendationResult, bool, error) {
	key := buildKey(userID, dom, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var res domain.RecommendationResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached result %s: %w", key, err)
	}

	return &res, true, nil
}

// Store a result in cache
func (c *Cache) Set(ctx context.Context, res *domain.RecommendationResult, limit int) error {
	key := buildKey(res.UserID, res.Domain, limit)
	val, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result for %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// InvalidateUser clears every cached result for a user across domains
// and limits. Used when an interaction changes the candidate pool.
func (c *Cache) InvalidateUser(ctx context.Context, userID int64) error {
	pattern := fmt.Sprintf("rec:user:%d:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
