package scoring

import (
	"context"

	"github.com/brandlens/brandlens/internal/domain"
)

// AnswerSource yields the raw answer records to score and tracks which
// have already been processed.
type AnswerSource interface {
	List(ctx context.Context) ([]domain.RawAnswerRecord, error)
	IsProcessed(ctx context.Context, recordID string) (bool, error)
	MarkProcessed(ctx context.Context, recordID string) error
}

// ResultWriter persists per-record scoring output. HasMetrics reports
// whether a record already produced results, catching records persisted
// but never marked processed.
type ResultWriter interface {
	SaveMetric(ctx context.Context, m domain.MetricResult) error
	SaveSentiment(ctx context.Context, s domain.SentimentResult) error
	SaveCitations(ctx context.Context, recordID string, cats []domain.CitationCategory) error
	HasMetrics(ctx context.Context, recordID string) (bool, error)
}

// ConsolidatedAnalyzer is the single-call fast path. Any error means the
// record falls back to the per-operation components.
type ConsolidatedAnalyzer interface {
	Analyze(ctx context.Context, rec *domain.RawAnswerRecord, brand domain.EntityProfile, competitors []domain.EntityProfile) (domain.ConsolidatedAnalysisResult, error)
}

// CitationClassifier categorizes cited URLs through the tiered chain.
type CitationClassifier interface {
	ClassifyURLs(ctx context.Context, urls []string) []domain.CitationCategory
}

// SentimentAnalyzer scores sentiment toward one entity through the
// provider chain.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, recordID, entity, text string) (domain.SentimentResult, error)
}
