package classcache

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/db/memory"
	"github.com/brandlens/brandlens/internal/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(memory.NewStore(), "test:", nil, zap.NewNop())
}

func TestGet_Miss(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Get(context.Background(), "example.com"); ok {
		t.Fatal("expected miss for unknown domain")
	}
}

func TestPutThenGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, domain.CitationCategory{
		Domain:     "en.wikipedia.org",
		Category:   domain.CategoryReference,
		Confidence: 0.8,
		Source:     domain.SourceHeuristic,
	})

	got, ok := c.Get(ctx, "en.wikipedia.org")
	if !ok {
		t.Fatal("expected hit after put")
	}
	if got.Category != domain.CategoryReference {
		t.Errorf("category = %s, want reference", got.Category)
	}
	if got.Source != domain.SourceCache {
		t.Errorf("source = %s, want cache", got.Source)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8", got.Confidence)
	}
}

func TestGet_CaseInsensitiveKey(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Put(ctx, domain.CitationCategory{Domain: "Example.COM", Category: domain.CategoryCorporate})

	if _, ok := c.Get(ctx, "example.com"); !ok {
		t.Fatal("expected hit with lowercased lookup")
	}
}
