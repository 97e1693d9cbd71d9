package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"sweet-shop/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	_, err := c.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "k"))
	exists, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Second))
	require.NoError(t, c.Set(ctx, "forever", []byte("v"), 0))

	now = now.Add(2 * time.Second)

	_, err := c.Get(ctx, "short")
	assert.True(t, errors.Is(err, ErrCacheMiss))
	_, err = c.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestInMemoryCache_DeleteByPattern(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	require.NoError(t, c.Set(ctx, StatsKey(1, 5), []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, StatsKey(1, 10), []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, RequestKey("r1"), []byte("c"), time.Minute))

	require.NoError(t, c.DeleteByPattern(ctx, StatsPattern))

	exists, _ := c.Exists(ctx, StatsKey(1, 5))
	assert.False(t, exists)
	exists, _ = c.Exists(ctx, StatsKey(1, 10))
	assert.False(t, exists)
	exists, _ = c.Exists(ctx, RequestKey("r1"))
	assert.True(t, exists)
}

func TestInMemoryCache_SweepDropsUnreadExpiredKeys(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()
	defer c.Close()

	now := time.Now()
	c.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		require.NoError(t, c.Set(ctx, RequestKey(uuid.New().String()), []byte("{}"), time.Millisecond))
	}
	require.NoError(t, c.Set(ctx, StatsKey(1, 5), []byte("{}"), 0))
	assert.Equal(t, 10001, c.Len())

	now = now.Add(2 * time.Millisecond)
	c.deleteExpired()

	assert.Equal(t, 1, c.Len())
	exists, _ := c.Exists(ctx, StatsKey(1, 5))
	assert.True(t, exists)
}

func TestInMemoryCache_SetSweepsOnceEarliestExpiryPassed(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()
	defer c.Close()

	for i := 0; i < 10000; i++ {
		require.NoError(t, c.Set(ctx, RequestKey(uuid.New().String()), []byte("{}"), time.Millisecond))
	}
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, c.Set(ctx, RequestKey("last"), []byte("{}"), time.Minute))

	assert.Equal(t, 1, c.Len())
}

func TestInMemoryCache_SweepRunsOnTicker(t *testing.T) {
	ctx := context.Background()
	c := newInMemoryCache(5 * time.Millisecond)
	defer c.Close()

	for i := 0; i < 10000; i++ {
		require.NoError(t, c.Set(ctx, RequestKey(uuid.New().String()), []byte("{}"), time.Millisecond))
	}

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestInMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewInMemoryCache()

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	exists, _ := c.Exists(context.Background(), "k")
	assert.True(t, exists)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, SetJSON(ctx, c, "json", payload{Name: "Jalebi", Count: 3}, TTL(60)))

	var got payload
	require.NoError(t, GetJSON(ctx, c, "json", &got))
	assert.Equal(t, payload{Name: "Jalebi", Count: 3}, got)

	assert.Equal(t, time.Minute, TTL(60))
}

func TestNewCache_DisabledUsesMemory(t *testing.T) {
	c := NewCache(&config.Config{UseCache: false}, zap.NewNop())

	assert.IsType(t, &InMemoryCache{}, c)
}

// Runs against a live Redis when one answers on REDIS_ADDR (default localhost:6379)
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DialTimeout: 500 * time.Millisecond})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	c := NewRedisCache(client, zap.NewNop())
	defer c.Close()

	prefix := KeyPrefix + "test:" + uuid.New().String() + ":"
	require.NoError(t, c.Set(ctx, prefix+"a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, prefix+"b", []byte("2"), time.Minute))

	value, err := c.Get(ctx, prefix+"a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	require.NoError(t, c.DeleteByPattern(ctx, prefix+"*"))
	_, err = c.Get(ctx, prefix+"b")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}
