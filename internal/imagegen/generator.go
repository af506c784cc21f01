// Package imagegen provides the image-generation backend abstraction used
// by the backgrounds stage. Providers differ in how they return images
// (fetchable URL vs inline base64); every variant normalizes to raw bytes.
package imagegen

import (
	"context"
	"fmt"
)

// Image is one generated image, normalized to raw bytes.
type Image struct {
	Data        []byte
	ContentType string
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	// Generate produces one image for the prompt.
	Generate(ctx context.Context, prompt string) (*Image, error)
	// Close releases any resources held by the generator.
	Close() error
}

// Options configures a provider generator.
type Options struct {
	Provider string // "openai" or "gemini"
	APIKey   string
	Model    string
	BaseURL  string // OpenAI-style providers only
}

// NewGenerator creates an image generator for the configured provider.
func NewGenerator(ctx context.Context, opts Options) (Generator, error) {
	switch opts.Provider {
	case ProviderGemini:
		return NewGeminiGenerator(ctx, opts)
	case ProviderOpenAI, "":
		return NewOpenAIGenerator(opts)
	default:
		return nil, fmt.Errorf("unsupported image provider: %s", opts.Provider)
	}
}

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)
