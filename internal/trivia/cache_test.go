package trivia

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl), mr
}

func TestCacheMissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t, 0)

	got, err := cache.Get(context.Background(), OrderByID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRoundTripAndExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, OrderByType, sampleCategories))
	assert.True(t, mr.Exists("trivia:categories:type"))

	got, err := cache.Get(ctx, OrderByType)
	require.NoError(t, err)
	assert.Equal(t, sampleCategories, got)

	other, err := cache.Get(ctx, OrderByID)
	require.NoError(t, err)
	assert.Nil(t, other)

	mr.FastForward(2 * time.Minute)
	got, err = cache.Get(ctx, OrderByType)
	require.NoError(t, err)
	assert.Nil(t, got)
}
