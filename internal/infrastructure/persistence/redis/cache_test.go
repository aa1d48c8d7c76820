package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableCache() *Cache {
	return NewCacheWithClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestProfileKey(t *testing.T) {
	assert.Equal(t, "profile:42", ProfileKey("42"))
}

func TestConfigAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", DefaultConfig().Addr())
}

func TestCache_ValidatesBeforeCallingRedis(t *testing.T) {
	c := unreachableCache()
	defer c.Close()
	ctx := context.Background()

	assert.ErrorIs(t, c.Set(ctx, "", "v", time.Minute), ErrCacheKeyEmpty)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, time.Minute), ErrCacheNilValue)
	assert.ErrorIs(t, c.Set(ctx, "k", "v", -time.Second), ErrCacheInvalidTTL)
	assert.ErrorIs(t, c.Get(ctx, "", new(string)), ErrCacheKeyEmpty)
	assert.NoError(t, c.Delete(ctx))
}

func TestCache_UnreachableServer(t *testing.T) {
	c := unreachableCache()
	defer c.Close()

	err := c.Get(context.Background(), "k", new(string))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestNewProfileCache_DefaultTTL(t *testing.T) {
	pc := NewProfileCache(unreachableCache(), 0)
	assert.Equal(t, TTLProfileCache, pc.ttl)

	pc = NewProfileCache(unreachableCache(), time.Minute)
	assert.Equal(t, time.Minute, pc.ttl)
}
