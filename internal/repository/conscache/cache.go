// Package conscache caches consolidated-analysis results keyed by record
// ID. Entries carry a TTL and are recomputed on demand after expiry,
// never durable state.
package conscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/db"
	"github.com/brandlens/brandlens/internal/domain"
)

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores consolidated analysis results per record.
type Cache struct {
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a consolidated-analysis cache.
func New(s store, keyPrefix string, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		keyPrefix:  keyPrefix + "consolidated:",
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached result for a record ID.
func (c *Cache) Get(ctx context.Context, recordID string) (domain.ConsolidatedAnalysisResult, bool) {
	data, err := c.store.Get(ctx, c.keyPrefix+recordID)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached analysis", zap.String("record_id", recordID), zap.Error(err))
		}
		c.incCache("miss")
		return domain.ConsolidatedAnalysisResult{}, false
	}

	var result domain.ConsolidatedAnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("Failed to parse cached analysis", zap.String("record_id", recordID), zap.Error(err))
		c.incCache("miss")
		return domain.ConsolidatedAnalysisResult{}, false
	}

	c.incCache("hit")
	return result, true
}

// Put stores a result. Write failures are logged, not propagated.
func (c *Cache) Put(ctx context.Context, result domain.ConsolidatedAnalysisResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Failed to encode analysis", zap.String("record_id", result.RecordID), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, c.keyPrefix+result.RecordID, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache analysis", zap.String("record_id", result.RecordID), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
