package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps assembled product payloads in Redis so repeated widget boots
// for the same product skip the database entirely.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a payload cache. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get loads a cached payload. The second return reports a hit.
func (c *Cache) Get(ctx context.Context, key string) (ProductPayload, bool, error) {
	var payload ProductPayload
	if c == nil || c.client == nil || key == "" {
		return payload, false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return payload, false, nil
		}
		return payload, false, err
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, false, err
	}
	return payload, true, nil
}

// Put stores a payload under the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, payload ProductPayload) error {
	if c == nil || c.client == nil || key == "" {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
