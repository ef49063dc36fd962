// Package answers reads the raw answer records deposited by the upstream
// collector and tracks which have been processed. Records themselves are
// immutable; only the processed marker is written here.
package answers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brandlens/brandlens/internal/domain"
)

// store is the consumer interface for the record backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo reads raw answer records.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates an answers repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Put deposits a record. Exposed for the collector contract and seeding;
// the pipeline itself never writes records.
func (r *Repo) Put(ctx context.Context, rec domain.RawAnswerRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	if err := r.store.Set(ctx, r.answerKey(rec.ID), data); err != nil {
		return fmt.Errorf("store record %s: %w", rec.ID, err)
	}
	return nil
}

// List returns every deposited record.
func (r *Repo) List(ctx context.Context) ([]domain.RawAnswerRecord, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix+"answer:*")
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	records := make([]domain.RawAnswerRecord, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get record %s: %w", key, err)
		}
		var rec domain.RawAnswerRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// IsProcessed reports whether a record already went through the pipeline.
func (r *Repo) IsProcessed(ctx context.Context, recordID string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.processedKey(recordID))
	if err != nil {
		return false, fmt.Errorf("check processed %s: %w", recordID, err)
	}
	return ok, nil
}

// MarkProcessed records completion of a record.
func (r *Repo) MarkProcessed(ctx context.Context, recordID string) error {
	if err := r.store.Set(ctx, r.processedKey(recordID), []byte("1")); err != nil {
		return fmt.Errorf("mark processed %s: %w", recordID, err)
	}
	return nil
}

func (r *Repo) answerKey(id string) string    { return r.keyPrefix + "answer:" + id }
func (r *Repo) processedKey(id string) string { return r.keyPrefix + "processed:" + id }
