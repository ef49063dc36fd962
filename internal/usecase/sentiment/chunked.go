package sentiment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// maxSentencesPerChunk is the legacy provider's per-call sentence cap.
const maxSentencesPerChunk = 12

// sentenceEnd splits on terminal punctuation followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// ChunkedProvider wraps a provider with a small per-call text-length
// limit: the legacy path. Text over the limit is split into sentence
// groups, analyzed per group, and aggregated by averaging chunk scores.
type ChunkedProvider struct {
	inner    Provider
	maxChars int
}

// NewChunkedProvider creates the chunking decorator.
func NewChunkedProvider(inner Provider, maxChars int) *ChunkedProvider {
	return &ChunkedProvider{inner: inner, maxChars: maxChars}
}

// Name implements Provider.
func (p *ChunkedProvider) Name() string { return p.inner.Name() + "-chunked" }

// Analyze implements Provider. Short text goes through in one call.
func (p *ChunkedProvider) Analyze(ctx context.Context, text, entity string) (Analysis, error) {
	if len(text) <= p.maxChars {
		return p.inner.Analyze(ctx, text, entity)
	}

	chunks := chunkSentences(text, maxSentencesPerChunk, p.maxChars)

	var sum float64
	var agg Analysis
	analyzed := 0

	for i, chunk := range chunks {
		res, err := p.inner.Analyze(ctx, chunk, entity)
		if err != nil {
			return Analysis{}, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		sum += res.Score
		agg.PositiveEvidence = append(agg.PositiveEvidence, res.PositiveEvidence...)
		agg.NegativeEvidence = append(agg.NegativeEvidence, res.NegativeEvidence...)
		analyzed++
	}

	if analyzed == 0 {
		return Analysis{}, nil
	}
	agg.Score = sum / float64(analyzed)
	return agg, nil
}

// SplitSentences breaks text into trimmed sentences.
func SplitSentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// chunkSentences groups sentences into chunks of at most maxSentences
// sentences and roughly maxChars characters. A single oversized sentence
// still forms its own chunk.
func chunkSentences(text string, maxSentences, maxChars int) []string {
	sentences := SplitSentences(text)

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, ". "))
			current = nil
			currentLen = 0
		}
	}

	for _, s := range sentences {
		if len(current) >= maxSentences || (currentLen > 0 && currentLen+len(s) > maxChars) {
			flush()
		}
		current = append(current, s)
		currentLen += len(s)
	}
	flush()

	return chunks
}
