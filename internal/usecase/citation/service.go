// Package citation classifies cited domains into the fixed taxonomy via a
// tiered fallback chain: cache, hardcoded table, heuristic rules, AI.
package citation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
	"github.com/brandlens/brandlens/internal/metrics"
)

const (
	heuristicConfidence = 0.7
	aiMaxTokens         = 128
)

// Service is the tiered citation classifier. Classification never fails:
// every tier exhausting degrades to CategoryOther with zero confidence so
// citation categorization can never block the rest of the pipeline.
type Service struct {
	cache     Cache
	table     map[string]domain.Category
	completer Completer
	aiEnabled bool
	logger    *zap.Logger
}

// New creates a citation classification service. extraTable entries
// override the built-in hardcoded table. completer may be nil when the AI
// tier is disabled.
func New(cache Cache, extraTable map[string]domain.Category, completer Completer, aiEnabled bool, logger *zap.Logger) *Service {
	table := make(map[string]domain.Category, len(defaultTable)+len(extraTable))
	for d, c := range defaultTable {
		table[d] = c
	}
	for d, c := range extraTable {
		table[strings.ToLower(d)] = c
	}

	return &Service{
		cache:     cache,
		table:     table,
		completer: completer,
		aiEnabled: aiEnabled && completer != nil,
		logger:    logger,
	}
}

// Classify categorizes one domain, cheapest tier first. Each successful
// classification backfills the cache, so a domain is never reclassified by
// a cheaper tier later.
func (s *Service) Classify(ctx context.Context, domainName string) domain.CitationCategory {
	domainName = domain.NormalizeDomain(domainName)
	if domainName == "" {
		return domain.CitationCategory{Category: domain.CategoryOther, Source: domain.SourceFallback}
	}

	// Tier 1: cache
	if cat, ok := s.cache.Get(ctx, domainName); ok {
		metrics.ClassificationsTotal.WithLabelValues(string(domain.SourceCache)).Inc()
		return cat
	}

	// Tier 2: hardcoded table
	if cat, ok := s.lookupTable(domainName); ok {
		s.cache.Put(ctx, cat)
		metrics.ClassificationsTotal.WithLabelValues(string(domain.SourceHardcoded)).Inc()
		return cat
	}

	// Tier 3: heuristic rules
	if cat, ok := classifyHeuristic(domainName); ok {
		s.cache.Put(ctx, cat)
		metrics.ClassificationsTotal.WithLabelValues(string(domain.SourceHeuristic)).Inc()
		return cat
	}

	// Tier 4: AI classification
	if s.aiEnabled {
		cat, err := s.classifyAI(ctx, domainName)
		if err == nil {
			s.cache.Put(ctx, cat)
			metrics.ClassificationsTotal.WithLabelValues(string(domain.SourceAI)).Inc()
			return cat
		}
		s.logger.Warn("AI classification failed",
			zap.String("domain", domainName), zap.Error(err))
	}

	// Degraded result. Not cached, so a later run can retry the AI tier.
	metrics.ClassificationsTotal.WithLabelValues(string(domain.SourceFallback)).Inc()
	return domain.CitationCategory{
		Domain:     domainName,
		Category:   domain.CategoryOther,
		Confidence: 0,
		Source:     domain.SourceFallback,
	}
}

// ClassifyURLs categorizes the domains of cited URLs, one entry per
// distinct domain, in first-seen order.
func (s *Service) ClassifyURLs(ctx context.Context, urls []string) []domain.CitationCategory {
	domains := domain.CitationDomains(urls)
	out := make([]domain.CitationCategory, 0, len(domains))
	for _, d := range domains {
		out = append(out, s.Classify(ctx, d))
	}
	return out
}

func (s *Service) lookupTable(domainName string) (domain.CitationCategory, bool) {
	// Exact match first, then the registrable parent so subdomains like
	// en.wikipedia.org resolve through wikipedia.org.
	for d := domainName; d != ""; {
		if cat, ok := s.table[d]; ok {
			return domain.CitationCategory{
				Domain:     domainName,
				Category:   cat,
				Confidence: 1.0,
				Source:     domain.SourceHardcoded,
			}, true
		}
		i := strings.Index(d, ".")
		if i < 0 {
			break
		}
		d = d[i+1:]
		if !strings.Contains(d, ".") {
			break
		}
	}
	return domain.CitationCategory{}, false
}

// classifyHeuristic applies suffix/substring rules.
func classifyHeuristic(domainName string) (domain.CitationCategory, bool) {
	var cat domain.Category
	switch {
	case strings.HasSuffix(domainName, ".edu") || strings.HasSuffix(domainName, ".gov"):
		cat = domain.CategoryInstitutional
	case strings.Contains(domainName, "wiki"):
		cat = domain.CategoryReference
	case strings.Contains(domainName, "news") || strings.Contains(domainName, "blog"):
		cat = domain.CategoryEditorial
	case strings.Contains(domainName, "review"):
		cat = domain.CategoryUGC
	default:
		return domain.CitationCategory{}, false
	}
	return domain.CitationCategory{
		Domain:     domainName,
		Category:   cat,
		Confidence: heuristicConfidence,
		Source:     domain.SourceHeuristic,
	}, true
}

const classifySystemPrompt = `You categorize website domains. Respond with a single JSON object:
{"category": "<editorial|corporate|reference|ugc|social|institutional|other>", "confidence": <0.0-1.0>}
No other text.`

// classifyAI asks the LLM to categorize a single domain. Last resort:
// slowest tier, non-zero cost.
func (s *Service) classifyAI(ctx context.Context, domainName string) (domain.CitationCategory, error) {
	resp, err := s.completer.Complete(ctx, domain.PromptRequest{
		SystemPrompt: classifySystemPrompt,
		UserPrompt:   fmt.Sprintf("Domain: %s", domainName),
		MaxTokens:    aiMaxTokens,
		Temperature:  0,
	})
	if err != nil {
		return domain.CitationCategory{}, fmt.Errorf("classify %s: %w", domainName, err)
	}

	var parsed struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &parsed); err != nil {
		return domain.CitationCategory{}, fmt.Errorf("parse classification for %s: %w: %w",
			domainName, err, domain.ErrMalformedResponse)
	}

	cat := domain.Category(strings.ToLower(parsed.Category))
	if !domain.ValidCategory(cat) {
		return domain.CitationCategory{}, fmt.Errorf("unknown category %q for %s: %w",
			parsed.Category, domainName, domain.ErrMalformedResponse)
	}

	return domain.CitationCategory{
		Domain:     domainName,
		Category:   cat,
		Confidence: parsed.Confidence,
		Source:     domain.SourceAI,
	}, nil
}

// extractJSON strips markdown code fences some models wrap around JSON.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
