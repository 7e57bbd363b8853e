package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// PlanCache stores raw model responses in redis keyed by prompt hash, so an
// unchanged trip configuration regenerates without another model call.
type PlanCache struct {
	client      *redisv9.Client
	responseTTL time.Duration
}

func NewPlanCache(client *redisv9.Client, responseTTL time.Duration) *PlanCache {
	if responseTTL <= 0 {
		responseTTL = time.Hour
	}
	return &PlanCache{
		client:      client,
		responseTTL: responseTTL,
	}
}

func (c *PlanCache) GetResponse(ctx context.Context, key string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.responseKey(key)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get response failed: %w", err)
	}
	return raw, true, nil
}

func (c *PlanCache) SetResponse(ctx context.Context, key, raw string) error {
	if err := c.client.Set(ctx, c.responseKey(key), raw, c.responseTTL).Err(); err != nil {
		return fmt.Errorf("redis set response failed: %w", err)
	}
	return nil
}

func (c *PlanCache) responseKey(key string) string {
	return fmt.Sprintf("plan:response:%s", key)
}
