package domain

import "context"

// Completer is the shared LLM prompt contract between layers. All providers
// are used polymorphically behind this single capability, regardless of
// vendor.
type Completer interface {
	Complete(ctx context.Context, req PromptRequest) (PromptResponse, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PromptRequest is the uniform request shape for one LLM invocation.
type PromptRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// PromptResponse carries the raw completion text and token usage.
type PromptResponse struct {
	Content    string
	TokensUsed int
}
