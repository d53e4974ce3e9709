// Package lock guards order submission. While one order for a phone number
// is being written, a concurrent identical submission is turned away rather
// than queued, the server-side counterpart of the widget's in-flight no-op.
package lock

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SubmitGuard is a Redis-backed single-attempt lock.
type SubmitGuard struct {
	R   *redis.Client
	TTL time.Duration
}

const defaultTTL = 15 * time.Second

// Acquire attempts to take the lock for a key. It reports false when another
// submission currently holds it. Store errors and a nil client grant the
// lock, keeping order placement available when Redis is down.
func (g SubmitGuard) Acquire(ctx context.Context, key string) (release func(), ok bool) {
	noop := func() {}
	if g.R == nil || key == "" {
		return noop, true
	}
	ttl := g.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	token := uuid.NewString()
	redisKey := "submit:" + key
	acquired, err := g.R.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return noop, true
	}
	if !acquired {
		return noop, false
	}
	return func() { g.release(context.Background(), redisKey, token) }, true
}

func (g SubmitGuard) release(ctx context.Context, key, token string) {
	const script = `if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`
	if err := g.R.Eval(ctx, script, []string{key}, token).Err(); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unknown command") {
			_ = g.R.Del(ctx, key).Err()
		}
	}
}
