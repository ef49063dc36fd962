// Package results persists pipeline outputs via the upsert-by-key
// contract: metrics and sentiments keyed by record+entity, citation lists
// keyed by record.
package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brandlens/brandlens/internal/db"
	"github.com/brandlens/brandlens/internal/domain"
)

// store is the consumer interface for the result backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo writes and reads scored results.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a results repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// RecordResults bundles everything stored for one record.
type RecordResults struct {
	Metrics    []domain.MetricResult    `json:"metrics"`
	Sentiments []domain.SentimentResult `json:"sentiments"`
	Citations  []domain.CitationCategory `json:"citations"`
}

// SaveMetric upserts one metric result keyed by record+entity.
func (r *Repo) SaveMetric(ctx context.Context, m domain.MetricResult) error {
	key := fmt.Sprintf("%smetric:%s:%s", r.keyPrefix, m.RecordID, m.Entity)
	return r.put(ctx, key, m)
}

// SaveSentiment upserts one sentiment result keyed by record+entity.
func (r *Repo) SaveSentiment(ctx context.Context, s domain.SentimentResult) error {
	key := fmt.Sprintf("%ssentiment:%s:%s", r.keyPrefix, s.RecordID, s.Entity)
	return r.put(ctx, key, s)
}

// SaveCitations upserts the categorized citations of one record.
func (r *Repo) SaveCitations(ctx context.Context, recordID string, cats []domain.CitationCategory) error {
	key := fmt.Sprintf("%scitations:%s", r.keyPrefix, recordID)
	return r.put(ctx, key, cats)
}

// Get returns everything stored for a record. A record with no stored
// results yields domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, recordID string) (RecordResults, error) {
	var out RecordResults

	metricKeys, err := r.store.Scan(ctx, fmt.Sprintf("%smetric:%s:*", r.keyPrefix, recordID))
	if err != nil {
		return RecordResults{}, fmt.Errorf("scan metrics: %w", err)
	}
	for _, key := range metricKeys {
		var m domain.MetricResult
		if err := r.get(ctx, key, &m); err != nil {
			return RecordResults{}, err
		}
		out.Metrics = append(out.Metrics, m)
	}

	sentimentKeys, err := r.store.Scan(ctx, fmt.Sprintf("%ssentiment:%s:*", r.keyPrefix, recordID))
	if err != nil {
		return RecordResults{}, fmt.Errorf("scan sentiments: %w", err)
	}
	for _, key := range sentimentKeys {
		var s domain.SentimentResult
		if err := r.get(ctx, key, &s); err != nil {
			return RecordResults{}, err
		}
		out.Sentiments = append(out.Sentiments, s)
	}

	citationsKey := fmt.Sprintf("%scitations:%s", r.keyPrefix, recordID)
	if err := r.get(ctx, citationsKey, &out.Citations); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return RecordResults{}, err
	}

	if len(out.Metrics) == 0 && len(out.Sentiments) == 0 && len(out.Citations) == 0 {
		return RecordResults{}, fmt.Errorf("record %s: %w", recordID, domain.ErrNotFound)
	}
	return out, nil
}

// HasMetrics reports whether the record already produced metric results.
// Drives the orchestrator's idempotency check.
func (r *Repo) HasMetrics(ctx context.Context, recordID string) (bool, error) {
	keys, err := r.store.Scan(ctx, fmt.Sprintf("%smetric:%s:*", r.keyPrefix, recordID))
	if err != nil {
		return false, fmt.Errorf("scan metrics: %w", err)
	}
	return len(keys) > 0, nil
}

func (r *Repo) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (r *Repo) get(ctx context.Context, key string, v any) error {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
