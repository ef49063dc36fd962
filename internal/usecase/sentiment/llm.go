package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brandlens/brandlens/internal/domain"
)

const llmMaxTokens = 512

// Completer issues LLM prompts for sentiment scoring.
type Completer interface {
	Complete(ctx context.Context, req domain.PromptRequest) (domain.PromptResponse, error)
}

// LLMProvider scores sentiment via an LLM behind the shared prompt
// contract. Full-text analysis in one call.
type LLMProvider struct {
	name      string
	completer Completer
}

// NewLLMProvider creates an LLM-backed sentiment provider.
func NewLLMProvider(name string, completer Completer) *LLMProvider {
	return &LLMProvider{name: name, completer: completer}
}

// Name implements Provider.
func (p *LLMProvider) Name() string { return p.name }

const sentimentSystemPrompt = `You score the sentiment of a text toward a named entity.
Respond with a single JSON object:
{"score": <-1.0 to 1.0>, "positive_evidence": ["<sentence>", ...], "negative_evidence": ["<sentence>", ...]}
Evidence lists contain only sentences from the text that are clearly positive or negative about the entity. No other text.`

// Analyze implements Provider.
func (p *LLMProvider) Analyze(ctx context.Context, text, entity string) (Analysis, error) {
	resp, err := p.completer.Complete(ctx, domain.PromptRequest{
		SystemPrompt: sentimentSystemPrompt,
		UserPrompt:   fmt.Sprintf("Entity: %s\n\nText:\n%s", entity, text),
		MaxTokens:    llmMaxTokens,
		Temperature:  0,
	})
	if err != nil {
		return Analysis{}, fmt.Errorf("%s analyze: %w", p.name, err)
	}

	var parsed struct {
		Score            float64  `json:"score"`
		PositiveEvidence []string `json:"positive_evidence"`
		NegativeEvidence []string `json:"negative_evidence"`
	}
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &parsed); err != nil {
		return Analysis{}, fmt.Errorf("%s parse response: %w: %w", p.name, err, domain.ErrMalformedResponse)
	}

	return Analysis{
		Score:            domain.ClampScore(parsed.Score),
		PositiveEvidence: parsed.PositiveEvidence,
		NegativeEvidence: parsed.NegativeEvidence,
	}, nil
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
