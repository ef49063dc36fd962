// Package classcache is the shared cross-record domain-classification
// cache. Append-only: entries are never invalidated, and a duplicate
// concurrent write of the same domain is harmless (classifications are
// deterministic given the same input).
package classcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/db"
	"github.com/brandlens/brandlens/internal/domain"
)

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Cache stores domain classifications in a key-value store.
type Cache struct {
	store      store
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a classification cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, keyPrefix string, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		keyPrefix:  keyPrefix + "citation_cache:",
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached classification for a domain. The returned entry
// carries SourceCache regardless of which tier originally produced it.
func (c *Cache) Get(ctx context.Context, domainName string) (domain.CitationCategory, bool) {
	data, err := c.store.Get(ctx, c.key(domainName))
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached classification",
				zap.String("domain", domainName), zap.Error(err))
		}
		c.incCache("miss")
		return domain.CitationCategory{}, false
	}

	var cat domain.CitationCategory
	if err := json.Unmarshal(data, &cat); err != nil {
		c.logger.Warn("Failed to parse cached classification",
			zap.String("domain", domainName), zap.Error(err))
		c.incCache("miss")
		return domain.CitationCategory{}, false
	}

	c.incCache("hit")
	cat.Source = domain.SourceCache
	return cat, true
}

// Put backfills a classification for all future lookups of the domain.
// Write failures are logged, not propagated: a broken cache degrades to
// re-classification, never blocks the pipeline.
func (c *Cache) Put(ctx context.Context, cat domain.CitationCategory) {
	data, err := json.Marshal(cat)
	if err != nil {
		c.logger.Warn("Failed to encode classification", zap.String("domain", cat.Domain), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, c.key(cat.Domain), data); err != nil {
		c.logger.Warn("Failed to cache classification", zap.String("domain", cat.Domain), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) key(domainName string) string {
	return c.keyPrefix + strings.ToLower(domainName)
}
