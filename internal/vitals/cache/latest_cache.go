// Package cache keeps a short-lived copy of the latest-per-type snapshot in
// Redis for the dashboard. The cache is never authoritative: any miss or
// Redis error falls through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
)

const latestKeyPrefix = "hw:latest:" // hw:latest:{user_id}

var ErrMiss = errors.New("cache miss")

type LatestCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLatestCache(client *redis.Client, ttl time.Duration) *LatestCache {
	return &LatestCache{client: client, ttl: ttl}
}

func (c *LatestCache) Get(ctx context.Context, userID string) ([]domain.VitalReading, error) {
	data, err := c.client.Get(ctx, latestKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var readings []domain.VitalReading
	if err := json.Unmarshal([]byte(data), &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (c *LatestCache) Set(ctx context.Context, userID string, readings []domain.VitalReading) error {
	data, err := json.Marshal(readings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, latestKeyPrefix+userID, data, c.ttl).Err()
}

// Invalidate drops the snapshot after any write to the user's vitals.
func (c *LatestCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, latestKeyPrefix+userID).Err()
}
