package queries

import (
	"context"
	"errors"
	"time"

	"sweet-shop/internal/cache"
	"sweet-shop/internal/inventory"

	"go.uber.org/zap"
)

// SummaryReader serves dashboard statistics cache-first. Entries are keyed
// by store version, so a snapshot written back after a mutation is never
// read again. commands.Handler drops them after every mutation.
type SummaryReader struct {
	store  *inventory.Store
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewSummaryReader(store *inventory.Store, c cache.Cache, ttl time.Duration, logger *zap.Logger) *SummaryReader {
	return &SummaryReader{
		store:  store,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Summary returns the statistics for threshold. Cache errors fall back to
// the store.
func (r *SummaryReader) Summary(ctx context.Context, threshold int) (inventory.Summary, error) {
	// read before the snapshot: the entry under key is at least this new
	key := cache.StatsKey(r.store.Version(), threshold)

	var summary inventory.Summary
	err := cache.GetJSON(ctx, r.cache, key, &summary)
	if err == nil {
		r.logger.Debug("Stats cache hit", zap.String("key", key))
		return summary, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Stats cache read failed", zap.String("key", key), zap.Error(err))
	}

	summary, err = r.store.Summary(ctx, threshold)
	if err != nil {
		return inventory.Summary{}, err
	}

	if err := cache.SetJSON(ctx, r.cache, key, summary, r.ttl); err != nil {
		r.logger.Warn("Stats cache write failed", zap.String("key", key), zap.Error(err))
	}
	return summary, nil
}
