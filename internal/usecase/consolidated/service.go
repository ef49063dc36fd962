// Package consolidated replaces the per-operation LLM calls of a record
// (product extraction, citation categorization, per-entity sentiment) with
// one call sharing context, amortizing token cost. Purely a cost
// optimization: the per-operation components stay the source of truth for
// logic, and this path must produce equivalent structured output.
package consolidated

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
)

// Service issues consolidated analysis calls with a per-record cache.
type Service struct {
	completer  Completer
	cache      ResultCache
	classCache ClassificationCache
	maxTokens  int
	logger     *zap.Logger
}

// New creates a consolidated analysis service.
func New(completer Completer, cache ResultCache, classCache ClassificationCache, maxTokens int, logger *zap.Logger) *Service {
	return &Service{
		completer:  completer,
		cache:      cache,
		classCache: classCache,
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// Analyze returns the consolidated analysis for one record. A cache hit
// short-circuits the call entirely. On any failure (transport, malformed
// JSON, schema mismatch) the error is returned without retry: the caller
// falls back to the per-operation components for this record.
func (s *Service) Analyze(
	ctx context.Context,
	rec *domain.RawAnswerRecord,
	brand domain.EntityProfile,
	competitors []domain.EntityProfile,
) (domain.ConsolidatedAnalysisResult, error) {
	if cached, ok := s.cache.Get(ctx, rec.ID); ok {
		return cached, nil
	}

	profiles := append([]domain.EntityProfile{brand}, competitors...)

	// Known domains are resolved from the shared cache and kept out of the
	// prompt to reduce its size.
	allDomains := domain.CitationDomains(rec.CitedURLs)
	known := make([]domain.CitationCategory, 0, len(allDomains))
	unknown := make([]string, 0, len(allDomains))
	for _, d := range allDomains {
		if cat, ok := s.classCache.Get(ctx, d); ok {
			known = append(known, cat)
		} else {
			unknown = append(unknown, d)
		}
	}

	resp, err := s.completer.Complete(ctx, domain.PromptRequest{
		SystemPrompt: consolidatedSystemPrompt,
		UserPrompt:   buildUserPrompt(rec, profiles, unknown),
		MaxTokens:    s.maxTokens,
		Temperature:  0,
	})
	if err != nil {
		return domain.ConsolidatedAnalysisResult{}, fmt.Errorf("consolidated call for %s: %w", rec.ID, err)
	}

	result, err := parseResponse(rec.ID, resp.Content, profiles, unknown)
	if err != nil {
		return domain.ConsolidatedAnalysisResult{}, fmt.Errorf("consolidated response for %s: %w", rec.ID, err)
	}

	// Merge cache-resolved citations with the newly classified ones and
	// backfill the shared cache for future records.
	for _, cat := range result.Citations {
		s.classCache.Put(ctx, cat)
	}
	result.Citations = append(known, result.Citations...)

	s.cache.Put(ctx, result)
	return result, nil
}

const consolidatedSystemPrompt = `You analyze an AI-generated answer for brand intelligence. Respond with a single JSON object:
{
  "entities": [{"entity": "<name>", "products": ["<product mentioned in the answer>", ...],
                "sentiment": {"score": <-1.0 to 1.0>, "positive_evidence": ["<sentence>"], "negative_evidence": ["<sentence>"]}}],
  "citations": [{"domain": "<domain>", "category": "<editorial|corporate|reference|ugc|social|institutional|other>",
                 "page_name": "<site name>", "confidence": <0.0-1.0>}]
}
Include one entities entry per listed entity and one citations entry per listed domain. No other text.`

func buildUserPrompt(rec *domain.RawAnswerRecord, profiles []domain.EntityProfile, unknownDomains []string) string {
	var b strings.Builder

	b.WriteString("Entities:\n")
	for _, p := range profiles {
		b.WriteString("- ")
		b.WriteString(p.CanonicalName)
		if len(p.Aliases) > 0 {
			b.WriteString(" (aliases: ")
			b.WriteString(strings.Join(p.Aliases, ", "))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}

	if len(unknownDomains) > 0 {
		b.WriteString("\nCited domains to categorize:\n")
		for _, d := range unknownDomains {
			b.WriteString("- ")
			b.WriteString(d)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nAnswer text:\n")
	b.WriteString(rec.AnswerText)
	return b.String()
}

// wire types for the strict response schema.
type responseBody struct {
	Entities []struct {
		Entity    string   `json:"entity"`
		Products  []string `json:"products"`
		Sentiment struct {
			Score            float64  `json:"score"`
			PositiveEvidence []string `json:"positive_evidence"`
			NegativeEvidence []string `json:"negative_evidence"`
		} `json:"sentiment"`
	} `json:"entities"`
	Citations []struct {
		Domain     string  `json:"domain"`
		Category   string  `json:"category"`
		PageName   string  `json:"page_name"`
		Confidence float64 `json:"confidence"`
	} `json:"citations"`
}

// parseResponse validates the completion against the schema: every
// requested entity must be present and every citation category must be a
// taxonomy member. Any violation is a malformed response; the caller
// falls back rather than guessing.
func parseResponse(
	recordID, content string,
	profiles []domain.EntityProfile,
	unknownDomains []string,
) (domain.ConsolidatedAnalysisResult, error) {
	var body responseBody
	if err := json.Unmarshal([]byte(stripFences(content)), &body); err != nil {
		return domain.ConsolidatedAnalysisResult{}, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	byName := make(map[string]int, len(body.Entities))
	for i, e := range body.Entities {
		byName[strings.ToLower(e.Entity)] = i
	}

	result := domain.ConsolidatedAnalysisResult{RecordID: recordID}
	for _, p := range profiles {
		i, ok := byName[strings.ToLower(p.CanonicalName)]
		if !ok {
			return domain.ConsolidatedAnalysisResult{}, fmt.Errorf(
				"%w: entity %q missing from response", domain.ErrMalformedResponse, p.CanonicalName)
		}
		e := body.Entities[i]
		result.Entities = append(result.Entities, domain.EntityAnalysis{
			Entity:   p.CanonicalName,
			Products: e.Products,
			Sentiment: domain.NewSentimentResult(
				recordID, p.CanonicalName, e.Sentiment.Score,
				e.Sentiment.PositiveEvidence, e.Sentiment.NegativeEvidence,
			),
		})
	}

	wanted := make(map[string]struct{}, len(unknownDomains))
	for _, d := range unknownDomains {
		wanted[d] = struct{}{}
	}
	for _, c := range body.Citations {
		cat := domain.Category(strings.ToLower(c.Category))
		if !domain.ValidCategory(cat) {
			return domain.ConsolidatedAnalysisResult{}, fmt.Errorf(
				"%w: unknown category %q for %s", domain.ErrMalformedResponse, c.Category, c.Domain)
		}
		d := domain.NormalizeDomain(c.Domain)
		if _, ok := wanted[d]; !ok {
			// Hallucinated domain: drop rather than fail the whole call.
			continue
		}
		result.Citations = append(result.Citations, domain.CitationCategory{
			Domain:     d,
			Category:   cat,
			PageName:   c.PageName,
			Confidence: c.Confidence,
			Source:     domain.SourceAI,
		})
	}

	return result, nil
}

// stripFences removes markdown code fences some models wrap around JSON.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
