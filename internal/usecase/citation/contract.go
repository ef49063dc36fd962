package citation

import (
	"context"

	"github.com/brandlens/brandlens/internal/domain"
)

// Cache is the shared cross-record classification store.
type Cache interface {
	Get(ctx context.Context, domainName string) (domain.CitationCategory, bool)
	Put(ctx context.Context, cat domain.CitationCategory)
}

// Completer issues LLM prompts for the AI classification tier.
type Completer interface {
	Complete(ctx context.Context, req domain.PromptRequest) (domain.PromptResponse, error)
}
