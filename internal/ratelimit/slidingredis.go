// Package ratelimit throttles the public order endpoint with a Redis-backed
// sliding window, keyed per client IP.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SlidingWindow counts events per key inside a moving time window, stored as
// a Redis sorted set scored by nanosecond timestamps.
type SlidingWindow struct {
	Client *redis.Client
	Prefix string
}

// Allow registers one event for key and reports whether the key is still
// within the limit. A nil client or non-positive limit disables throttling.
func (sw SlidingWindow) Allow(ctx context.Context, key string, window time.Duration, max int) (allowed bool, remaining int, reset time.Time, err error) {
	if sw.Client == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}

	now := time.Now()
	reset = now.Add(window)
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	prefix := sw.Prefix
	if prefix == "" {
		prefix = "rl:"
	}
	setKey := prefix + key

	pipe := sw.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "0", cutoff)
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	count := pipe.ZCard(ctx, setKey)
	pipe.Expire(ctx, setKey, window+time.Second)
	if _, err = pipe.Exec(ctx); err != nil {
		return false, 0, reset, err
	}

	seen := int(count.Val())
	remaining = max - seen
	if remaining < 0 {
		remaining = 0
	}
	return seen <= max, remaining, reset, nil
}
