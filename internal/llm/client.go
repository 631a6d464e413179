package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mirror-notes/internal/config"
)

var (
	ErrMissingAPIKey   = errors.New("API key not configured")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrEmptyCompletion = errors.New("no completion returned")
)

// Client sends one user prompt to a remote model and returns its answer.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// APIError is a non-success reply from the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API error: %s", e.Message)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Message)
}

// NewClient builds the client for the configured provider.
func NewClient(cfg config.LLMConfig) (Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		oc := DefaultOpenAIConfig(cfg.APIKey)
		if cfg.Model != "" {
			oc.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		oc.Timeout = timeout
		return NewOpenAIClientWithConfig(oc), nil
	case config.ProviderGemini:
		return NewGeminiClient(context.Background(), GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func withDefaultTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
