package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/ratelimit"
)

func newTestWindow(t *testing.T) ratelimit.SlidingWindow {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimit.SlidingWindow{Client: client, Prefix: "rl:test:"}
}

func TestSlidingWindowAllowsWithinLimit(t *testing.T) {
	sw := newTestWindow(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, _, err := sw.Allow(ctx, "203.0.113.9", time.Minute, 3)
		require.NoError(t, err)
		require.True(t, allowed, "attempt %d", i+1)
	}

	allowed, remaining, _, err := sw.Allow(ctx, "203.0.113.9", time.Minute, 3)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Zero(t, remaining)
}

func TestSlidingWindowIsolatesKeys(t *testing.T) {
	sw := newTestWindow(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, _, err := sw.Allow(ctx, "203.0.113.9", time.Minute, 2)
		require.NoError(t, err)
	}
	allowed, _, _, err := sw.Allow(ctx, "198.51.100.7", time.Minute, 2)
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestSlidingWindowFailsOpenWithoutClient(t *testing.T) {
	sw := ratelimit.SlidingWindow{}
	allowed, _, _, err := sw.Allow(context.Background(), "anyone", time.Minute, 5)
	require.NoError(t, err)
	require.True(t, allowed)
}
