package cache_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/cache"
)

func setup(t *testing.T) *cache.Redis {
	t.Helper()
	_ = godotenv.Load("../../.env")
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	r, err := cache.NewRedis(context.Background(), addr, os.Getenv("REDIS_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSaveRecoverInvalidate(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	key := "test:" + uuid.New().String()

	var got []string
	ok, err := r.Recover(ctx, key, &got)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Save(ctx, key, []string{"a", "b"}))
	ok, err = r.Recover(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, r.Invalidate(ctx, key))
	ok, err = r.Recover(ctx, key, &got)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestInvalidatePrefix(t *testing.T) {
	r := setup(t)
	ctx := context.Background()
	prefix := "test-prefix-" + uuid.New().String()[:8]

	require.NoError(t, r.Save(ctx, prefix+":one", 1))
	require.NoError(t, r.Save(ctx, prefix+":two", 2))
	require.NoError(t, r.Save(ctx, prefix+"-other", 3))
	t.Cleanup(func() { r.Invalidate(ctx, prefix+"-other") })

	require.NoError(t, r.InvalidatePrefix(ctx, prefix))

	var n int
	ok, _ := r.Recover(ctx, prefix+":one", &n)
	require.False(t, ok)
	ok, _ = r.Recover(ctx, prefix+":two", &n)
	require.False(t, ok)
	ok, _ = r.Recover(ctx, prefix+"-other", &n)
	require.True(t, ok, "keys outside the prefix survive")
}
