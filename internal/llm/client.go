// Package llm provides the LLM client abstraction used by the layout stage.
// Provider-specific request/response shaping stays behind the Client
// interface so new providers are additive.
package llm

import (
	"context"
	"fmt"
)

// Client is an abstraction over LLM providers. The layout stage only needs
// JSON generation: system instruction + user prompt in, JSON document out.
type Client interface {
	// GenerateJSON sends the prompt and returns the raw JSON text of the
	// response. A non-2xx provider status or an empty response is an error.
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// Options configures a provider client.
type Options struct {
	Provider string // "gemini" or "openai"
	APIKey   string
	Model    string // provider default applies when empty
	BaseURL  string // OpenAI-style providers only
}

// NewClient creates an LLM client for the configured provider.
func NewClient(ctx context.Context, opts Options) (Client, error) {
	switch opts.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(opts)
	case ProviderGemini, "":
		return NewGeminiClient(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", opts.Provider)
	}
}

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)
