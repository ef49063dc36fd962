package answers

import (
	"context"
	"testing"

	"github.com/brandlens/brandlens/internal/db/memory"
	"github.com/brandlens/brandlens/internal/domain"
)

func TestPutAndList(t *testing.T) {
	repo := New(memory.NewStore(), "test:")
	ctx := context.Background()

	for _, id := range []string{"r1", "r2"} {
		if err := repo.Put(ctx, domain.RawAnswerRecord{
			ID:         id,
			AnswerText: "Acme is great.",
			BrandRef:   "Acme",
		}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	seen := map[string]bool{}
	for _, rec := range records {
		seen[rec.ID] = true
		if rec.BrandRef != "Acme" {
			t.Errorf("record %s brand ref = %q", rec.ID, rec.BrandRef)
		}
	}
	if !seen["r1"] || !seen["r2"] {
		t.Errorf("missing records: %v", seen)
	}
}

func TestProcessedMarker(t *testing.T) {
	repo := New(memory.NewStore(), "test:")
	ctx := context.Background()

	done, err := repo.IsProcessed(ctx, "r1")
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if done {
		t.Error("fresh record reported processed")
	}

	if err := repo.MarkProcessed(ctx, "r1"); err != nil {
		t.Fatalf("mark processed: %v", err)
	}

	done, err = repo.IsProcessed(ctx, "r1")
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if !done {
		t.Error("marked record not reported processed")
	}
}

func TestListEmpty(t *testing.T) {
	repo := New(memory.NewStore(), "test:")
	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}
