package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheServiceWithClient(rdb), mr
}

func TestCacheService_GetSet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	missing, err := cache.Get(ctx, "video:abc")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, cache.Set(ctx, "video:abc", map[string]string{"title": "hello"}, time.Minute))

	got, err := cache.Get(ctx, "video:abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"hello"}`, string(got))
}

func TestCacheService_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "video:abc", "v", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "video:abc"))

	got, err := cache.Get(ctx, "video:abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheService_AcquireLock(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	ok, err := cache.AcquireLock(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second acquirer is refused while the lock is held.
	ok, err = cache.AcquireLock(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.False(t, ok)

	// Other videos are unaffected.
	ok, err = cache.AcquireLock(ctx, "otherVideo1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.ReleaseLock(ctx, "dQw4w9WgXcQ"))
	ok, err = cache.AcquireLock(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, ok)

	// Crashed holders are cleaned up by the TTL.
	mr.FastForward(AcquireLockTTL + time.Second)
	ok, err = cache.AcquireLock(ctx, "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheService_NilClientNoOps(t *testing.T) {
	cache := &CacheService{}
	ctx := context.Background()

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, cache.Invalidate(ctx, "k"))

	ok, err := cache.AcquireLock(ctx, "v")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.ReleaseLock(ctx, "v"))
	require.NoError(t, cache.Close())
}
