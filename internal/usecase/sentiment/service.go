// Package sentiment scores the emotional valence of answer text toward an
// entity via a ranked chain of interchangeable providers.
package sentiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
	"github.com/brandlens/brandlens/internal/metrics"
)

// Service runs the provider chain. The chain itself is the retry
// strategy: bounded in length, first success wins, no provider is retried.
type Service struct {
	providers []Provider
	logger    *zap.Logger
}

// New creates a sentiment service over the given provider chain, highest
// priority first.
func New(providers []Provider, logger *zap.Logger) *Service {
	return &Service{providers: providers, logger: logger}
}

// Analyze scores text toward an entity. Always returns a well-formed
// result: if every provider fails, the result is NEUTRAL with the
// ProviderExhausted flag set and the error wraps ErrProviderExhausted so
// the caller can report it; downstream consumers can distinguish
// "neutral sentiment" from "sentiment unavailable".
func (s *Service) Analyze(ctx context.Context, recordID, entity, text string) (domain.SentimentResult, error) {
	if text == "" {
		return domain.SentimentResult{
			RecordID: recordID,
			Entity:   entity,
			Label:    domain.SentimentNeutral,
			Score:    0,
		}, nil
	}

	for _, p := range s.providers {
		analysis, err := p.Analyze(ctx, text, entity)
		if err != nil {
			metrics.SentimentProviderTotal.WithLabelValues(p.Name(), "error").Inc()
			s.logger.Warn("Sentiment provider failed, advancing chain",
				zap.String("provider", p.Name()),
				zap.String("record_id", recordID),
				zap.Error(err))
			continue
		}
		metrics.SentimentProviderTotal.WithLabelValues(p.Name(), "success").Inc()
		return domain.NewSentimentResult(
			recordID, entity, analysis.Score,
			analysis.PositiveEvidence, analysis.NegativeEvidence,
		), nil
	}

	return domain.NeutralSentiment(recordID, entity),
		fmt.Errorf("sentiment for %s/%s: %w", recordID, entity, domain.ErrProviderExhausted)
}
