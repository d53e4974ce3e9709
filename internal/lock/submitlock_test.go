package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ronginpran/checkout-api/internal/lock"
)

func newGuard(t *testing.T) lock.SubmitGuard {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return lock.SubmitGuard{R: client, TTL: time.Minute}
}

func TestSubmitGuardBlocksConcurrentHolder(t *testing.T) {
	guard := newGuard(t)
	ctx := context.Background()

	release, ok := guard.Acquire(ctx, "01712345678")
	require.True(t, ok)

	_, again := guard.Acquire(ctx, "01712345678")
	require.False(t, again, "second submission for the same phone must be turned away")

	_, other := guard.Acquire(ctx, "01812345678")
	require.True(t, other, "different phone is unaffected")

	release()
	_, retry := guard.Acquire(ctx, "01712345678")
	require.True(t, retry, "released lock can be taken again")
}

func TestSubmitGuardFailsOpenWithoutClient(t *testing.T) {
	release, ok := lock.SubmitGuard{}.Acquire(context.Background(), "01712345678")
	require.True(t, ok)
	release()
}
