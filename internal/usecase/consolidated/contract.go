package consolidated

import (
	"context"

	"github.com/brandlens/brandlens/internal/domain"
)

// Completer issues the single consolidated LLM call.
type Completer interface {
	Complete(ctx context.Context, req domain.PromptRequest) (domain.PromptResponse, error)
}

// ResultCache stores consolidated results per record.
type ResultCache interface {
	Get(ctx context.Context, recordID string) (domain.ConsolidatedAnalysisResult, bool)
	Put(ctx context.Context, result domain.ConsolidatedAnalysisResult)
}

// ClassificationCache is the shared cross-record domain-classification
// store, consulted before the call to keep known domains out of the
// prompt.
type ClassificationCache interface {
	Get(ctx context.Context, domainName string) (domain.CitationCategory, bool)
	Put(ctx context.Context, cat domain.CitationCategory)
}
