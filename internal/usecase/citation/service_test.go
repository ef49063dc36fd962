package citation

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
)

// --- Mocks ---

type mockCache struct {
	entries map[string]domain.CitationCategory
	puts    []domain.CitationCategory
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.CitationCategory)}
}

func (m *mockCache) Get(_ context.Context, domainName string) (domain.CitationCategory, bool) {
	cat, ok := m.entries[domainName]
	if ok {
		cat.Source = domain.SourceCache
	}
	return cat, ok
}

func (m *mockCache) Put(_ context.Context, cat domain.CitationCategory) {
	m.entries[cat.Domain] = cat
	m.puts = append(m.puts, cat)
}

type mockCompleter struct {
	content string
	err     error
	calls   int
}

func (m *mockCompleter) Complete(_ context.Context, _ domain.PromptRequest) (domain.PromptResponse, error) {
	m.calls++
	if m.err != nil {
		return domain.PromptResponse{}, m.err
	}
	return domain.PromptResponse{Content: m.content, TokensUsed: 10}, nil
}

func newTestService(cache Cache, completer Completer) *Service {
	return New(cache, nil, completer, completer != nil, zap.NewNop())
}

// --- Tests ---

func TestClassify_HeuristicWiki(t *testing.T) {
	svc := newTestService(newMockCache(), nil)

	got := svc.Classify(context.Background(), "en.wikipedia.org")

	if got.Category != domain.CategoryReference {
		t.Errorf("category = %s, want reference", got.Category)
	}
	if got.Source != domain.SourceHeuristic {
		t.Errorf("source = %s, want heuristic", got.Source)
	}
}

func TestClassify_SecondCallHitsCache(t *testing.T) {
	cache := newMockCache()
	svc := newTestService(cache, nil)
	ctx := context.Background()

	first := svc.Classify(ctx, "en.wikipedia.org")
	second := svc.Classify(ctx, "en.wikipedia.org")

	if second.Category != first.Category {
		t.Errorf("classifying twice changed category: %s then %s", first.Category, second.Category)
	}
	if second.Source != domain.SourceCache {
		t.Errorf("second source = %s, want cache", second.Source)
	}
}

func TestClassify_HeuristicRules(t *testing.T) {
	tests := []struct {
		domain string
		want   domain.Category
	}{
		{"mit.edu", domain.CategoryInstitutional},
		{"usda.gov", domain.CategoryInstitutional},
		{"product-wiki.net", domain.CategoryReference},
		{"technews.io", domain.CategoryEditorial},
		{"devblog.example", domain.CategoryEditorial},
		{"gadgetreview.net", domain.CategoryUGC},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			svc := newTestService(newMockCache(), nil)
			got := svc.Classify(context.Background(), tt.domain)
			if got.Category != tt.want {
				t.Errorf("category = %s, want %s", got.Category, tt.want)
			}
			if got.Source != domain.SourceHeuristic {
				t.Errorf("source = %s, want heuristic", got.Source)
			}
		})
	}
}

func TestClassify_HardcodedTable(t *testing.T) {
	svc := newTestService(newMockCache(), nil)

	got := svc.Classify(context.Background(), "www.reddit.com")

	if got.Category != domain.CategoryUGC {
		t.Errorf("category = %s, want ugc", got.Category)
	}
	if got.Source != domain.SourceHardcoded {
		t.Errorf("source = %s, want hardcoded", got.Source)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", got.Confidence)
	}
}

func TestClassify_HardcodedSubdomain(t *testing.T) {
	svc := newTestService(newMockCache(), nil)

	got := svc.Classify(context.Background(), "old.reddit.com")
	if got.Category != domain.CategoryUGC || got.Source != domain.SourceHardcoded {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestClassify_ConfigOverridesBuiltin(t *testing.T) {
	extra := map[string]domain.Category{"medium.com": domain.CategoryEditorial}
	svc := New(newMockCache(), extra, nil, false, zap.NewNop())

	got := svc.Classify(context.Background(), "medium.com")
	if got.Category != domain.CategoryEditorial {
		t.Errorf("category = %s, want editorial override", got.Category)
	}
}

func TestClassify_AITier(t *testing.T) {
	cache := newMockCache()
	completer := &mockCompleter{content: `{"category": "corporate", "confidence": 0.85}`}
	svc := newTestService(cache, completer)

	got := svc.Classify(context.Background(), "acme-widgets.com")

	if got.Category != domain.CategoryCorporate {
		t.Errorf("category = %s, want corporate", got.Category)
	}
	if got.Source != domain.SourceAI {
		t.Errorf("source = %s, want ai", got.Source)
	}
	if got.Confidence != 0.85 {
		t.Errorf("confidence = %f, want 0.85", got.Confidence)
	}
	if len(cache.puts) != 1 {
		t.Errorf("expected AI result backfilled to cache, puts=%d", len(cache.puts))
	}
}

func TestClassify_AITierFencedJSON(t *testing.T) {
	completer := &mockCompleter{content: "```json\n{\"category\": \"corporate\", \"confidence\": 0.9}\n```"}
	svc := newTestService(newMockCache(), completer)

	got := svc.Classify(context.Background(), "acme-widgets.com")
	if got.Category != domain.CategoryCorporate {
		t.Errorf("category = %s, want corporate", got.Category)
	}
}

func TestClassify_AIFailureDegrades(t *testing.T) {
	cache := newMockCache()
	completer := &mockCompleter{err: errors.New("network down")}
	svc := newTestService(cache, completer)

	got := svc.Classify(context.Background(), "obscure-site.xyz")

	if got.Category != domain.CategoryOther {
		t.Errorf("category = %s, want other", got.Category)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %f, want 0", got.Confidence)
	}
	if got.Source != domain.SourceFallback {
		t.Errorf("source = %s, want heuristic-fallback", got.Source)
	}
	if len(cache.puts) != 0 {
		t.Error("degraded result must not be cached")
	}
}

func TestClassify_AIMalformedResponseDegrades(t *testing.T) {
	completer := &mockCompleter{content: "I think it is probably a corporate site."}
	svc := newTestService(newMockCache(), completer)

	got := svc.Classify(context.Background(), "obscure-site.xyz")
	if got.Category != domain.CategoryOther || got.Source != domain.SourceFallback {
		t.Errorf("unexpected degraded result: %+v", got)
	}
}

func TestClassifyURLs_DedupesDomains(t *testing.T) {
	svc := newTestService(newMockCache(), nil)

	got := svc.ClassifyURLs(context.Background(), []string{
		"https://en.wikipedia.org/wiki/Acme",
		"https://en.wikipedia.org/wiki/Globex",
		"https://www.reddit.com/r/acme",
		"not a url at all :: %%",
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 distinct domains, got %d: %+v", len(got), got)
	}
	if got[0].Domain != "en.wikipedia.org" || got[1].Domain != "reddit.com" {
		t.Errorf("unexpected domains: %+v", got)
	}
}

