package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"sweet-shop/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrCacheMiss = errors.New("cache miss")

// Key layout
const (
	KeyPrefix    = "sweetshop:"
	StatsPattern = KeyPrefix + "stats:*"
)

// StatsKey is the key of the dashboard summary computed at a store version
// for a low stock threshold
func StatsKey(version uint64, threshold int) string {
	return fmt.Sprintf("%sstats:%d:%d", KeyPrefix, version, threshold)
}

// RequestKey is the key of a replayable API response
func RequestKey(requestID string) string {
	return KeyPrefix + "request:" + requestID
}

// Cache defines the interface for cache operations
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// DeleteByPattern deletes all keys matching a glob pattern
	DeleteByPattern(ctx context.Context, pattern string) error
}

// NewCache returns a Redis cache when enabled and reachable, and an
// in-memory cache otherwise
func NewCache(cfg *config.Config, logger *zap.Logger) Cache {
	if !cfg.UseCache {
		logger.Info("Redis cache disabled, using in-memory cache")
		return NewInMemoryCache()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.RedisAddr(),
		Password:        cfg.RedisPassword,
		DB:              cfg.RedisDB,
		PoolSize:        10,
		MinIdleConns:    2,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, using in-memory cache",
			zap.String("addr", cfg.RedisAddr()),
			zap.Error(err),
		)
		rdb.Close()
		return NewInMemoryCache()
	}

	logger.Info("Redis cache initialized successfully",
		zap.String("addr", cfg.RedisAddr()),
		zap.Int("db", cfg.RedisDB),
	)
	return NewRedisCache(rdb, logger)
}

// InMemoryCache is the fallback implementation when Redis is not available.
// Expired entries are swept every cleanupInterval until Close, and by Set
// once the earliest expiry has passed.
type InMemoryCache struct {
	mu         sync.Mutex
	data       map[string]cacheEntry
	now        func() time.Time
	nextExpiry time.Time
	cleanup    *time.Ticker
	stop       chan struct{}
	closeOnce  sync.Once
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

const cleanupInterval = time.Minute

func NewInMemoryCache() *InMemoryCache {
	return newInMemoryCache(cleanupInterval)
}

func newInMemoryCache(interval time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		data:    make(map[string]cacheEntry),
		now:     time.Now,
		cleanup: time.NewTicker(interval),
		stop:    make(chan struct{}),
	}

	go c.cleanupExpired()

	return c
}

func (c *InMemoryCache) cleanupExpired() {
	for {
		select {
		case <-c.cleanup.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *InMemoryCache) deleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweep(c.now())
}

// sweep drops every entry whose ttl has passed. Caller holds mu.
func (c *InMemoryCache) sweep(now time.Time) {
	c.nextExpiry = time.Time{}
	for key, entry := range c.data {
		if entry.expiresAt.IsZero() {
			continue
		}
		if now.After(entry.expiresAt) {
			delete(c.data, key)
			continue
		}
		c.trackExpiry(entry.expiresAt)
	}
}

func (c *InMemoryCache) trackExpiry(expiresAt time.Time) {
	if c.nextExpiry.IsZero() || expiresAt.Before(c.nextExpiry) {
		c.nextExpiry = expiresAt
	}
}

// Close stops the sweep goroutine. Entries stay readable.
func (c *InMemoryCache) Close() error {
	c.closeOnce.Do(func() {
		c.cleanup.Stop()
		close(c.stop)
	})
	return nil
}

// Len reports the number of stored entries, expired or not
func (c *InMemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// live returns the entry for key, dropping it when expired. Caller holds mu.
func (c *InMemoryCache) live(key string) (cacheEntry, bool) {
	entry, exists := c.data[key]
	if !exists {
		return cacheEntry{}, false
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		delete(c.data, key)
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *InMemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.live(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores value; a ttl <= 0 never expires, as in Redis
func (c *InMemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.nextExpiry.IsZero() && now.After(c.nextExpiry) {
		c.sweep(now)
	}

	entry := cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
		c.trackExpiry(entry.expiresAt)
	}
	c.data[key] = entry
	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
	return nil
}

func (c *InMemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.live(key)
	return ok, nil
}

func (c *InMemoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.data {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if matched {
			delete(c.data, key)
		}
	}
	return nil
}

// RedisCache implements Cache using Redis
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, logger *zap.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Warn("Redis Get error", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("Redis Set error", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Redis Delete error", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Warn("Redis Exists error", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("redis exists error: %w", err)
	}
	return count > 0, nil
}

func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		c.logger.Warn("Redis Scan error", zap.String("pattern", pattern), zap.Error(err))
		return fmt.Errorf("redis scan error: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("Redis DeleteByPattern error", zap.String("pattern", pattern), zap.Error(err))
			return fmt.Errorf("redis delete by pattern error: %w", err)
		}
		c.logger.Debug("Deleted keys by pattern", zap.String("pattern", pattern), zap.Int("count", len(keys)))
	}
	return nil
}

// Close closes the Redis client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetJSON reads key and decodes it into dest
func GetJSON(ctx context.Context, cache Cache, key string, dest interface{}) error {
	data, err := cache.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// SetJSON encodes value and stores it under key
func SetJSON(ctx context.Context, cache Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return cache.Set(ctx, key, data, ttl)
}

// TTL returns a time.Duration from seconds
func TTL(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
