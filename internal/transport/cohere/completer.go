// Package cohere adapts the Cohere chat API to the pipeline's prompt
// contract.
package cohere

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/core"
	"go.uber.org/zap"

	"github.com/brandlens/brandlens/internal/domain"
	"github.com/brandlens/brandlens/internal/metrics"
)

const providerName = "cohere"

// Completer is an LLM provider using the Cohere chat API.
type Completer struct {
	client  *cohereclient.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the provider settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewCompleter creates a Cohere chat provider.
func NewCompleter(cfg *Config) *Completer {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	return &Completer{
		client: cohereclient.NewClient(
			cohereclient.WithToken(cfg.APIKey),
			cohereclient.WithHTTPClient(httpClient),
		),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Complete implements domain.Completer.
func (c *Completer) Complete(ctx context.Context, req domain.PromptRequest) (domain.PromptResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	chatReq := &cohere.ChatRequest{
		Message: req.UserPrompt,
		Model:   &c.model,
	}
	if req.SystemPrompt != "" {
		chatReq.Preamble = &req.SystemPrompt
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = &req.MaxTokens
	}
	temp := float64(req.Temperature)
	chatReq.Temperature = &temp

	start := time.Now()

	resp, err := c.client.Chat(ctx, chatReq)

	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(providerName, c.model, "error").Inc()
		return domain.PromptResponse{}, parseAPIError(err)
	}
	if resp == nil || resp.Text == "" {
		metrics.LLMRequestsTotal.WithLabelValues(providerName, c.model, "error").Inc()
		return domain.PromptResponse{}, fmt.Errorf("empty chat response: %w", domain.ErrMalformedResponse)
	}

	metrics.LLMRequestsTotal.WithLabelValues(providerName, c.model, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(providerName, c.model).Observe(duration.Seconds())

	tokens := tokensUsed(resp)
	if tokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(providerName, c.model).Add(float64(tokens))
	}

	return domain.PromptResponse{
		Content:    resp.Text,
		TokensUsed: tokens,
	}, nil
}

// tokensUsed sums input and output tokens from response metadata.
func tokensUsed(resp *cohere.NonStreamedChatResponse) int {
	if resp.Meta == nil || resp.Meta.Tokens == nil {
		return 0
	}
	var total float64
	if in := resp.Meta.Tokens.InputTokens; in != nil {
		total += *in
	}
	if out := resp.Meta.Tokens.OutputTokens; out != nil {
		total += *out
	}
	return int(total)
}

// parseAPIError wraps transport failures with domain.ErrProviderUnavailable
// so the caller advances to the next provider.
func parseAPIError(err error) error {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.StatusCode, apiErr.Error(), domain.ErrProviderUnavailable)
	}
	return fmt.Errorf("chat request failed: %w", domain.ErrProviderUnavailable)
}
