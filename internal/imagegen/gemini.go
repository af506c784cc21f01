package imagegen

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiImageModel = "gemini-2.0-flash-exp-image-generation"

// GeminiGenerator implements Generator for Gemini image models, which
// return inline base64 image bytes rather than a fetchable URL.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed image generator.
func NewGeminiGenerator(ctx context.Context, opts Options) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultGeminiImageModel
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate produces one image for the prompt.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (*Image, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				contentType := blob.MIMEType
				if contentType == "" {
					contentType = "image/png"
				}
				return &Image{Data: blob.Data, ContentType: contentType}, nil
			}
		}
	}

	return nil, fmt.Errorf("empty image generation response")
}

// Close releases resources held by the generator.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
