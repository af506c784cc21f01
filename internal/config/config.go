// Package config provides configuration loading and validation for the worker.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds the worker configuration, loaded from the environment.
// Call Validate before using it.
type Config struct {
	// Connections
	DatabaseURL string `validate:"required"`
	AMQPURL     string `validate:"required"`

	// Worker
	Concurrency int    `validate:"min=1"`
	MetricsAddr string // empty disables the metrics endpoint

	// LLM backend (layout stage)
	LLMProvider string `validate:"oneof=gemini openai"`
	LLMAPIKey   string `validate:"required"`
	LLMModel    string
	LLMBaseURL  string

	// Image backend (backgrounds stage)
	ImageProvider string `validate:"oneof=gemini openai"`
	ImageAPIKey   string
	ImageModel    string
	ImageBaseURL  string

	// Blob storage
	StorageBackend  string `validate:"oneof=filesystem supabase"`
	StoragePath     string // filesystem backend root
	StorageBaseURL  string `validate:"required"` // public URL prefix for stored objects
	StorageEndpoint string // supabase backend REST endpoint
	StorageToken    string // supabase backend service token
	StorageBucket   string

	// Rendering
	ChromePath string // optional explicit Chrome/Chromium binary
}

// Defaults that apply when the environment leaves a value unset.
const (
	DefaultConcurrency   = 3
	DefaultLLMProvider   = "gemini"
	DefaultImageProvider = "openai"
	DefaultStorage       = "filesystem"
	DefaultStoragePath   = "./data/carousel-gen"
	DefaultBucket        = "carousel-gen"
)

// Load reads configuration from the environment and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		Concurrency:     intEnv("WORKER_CONCURRENCY", DefaultConcurrency),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
		LLMProvider:     stringEnv("LLM_PROVIDER", DefaultLLMProvider),
		LLMAPIKey:       firstEnv("LLM_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"),
		LLMModel:        os.Getenv("LLM_MODEL"),
		LLMBaseURL:      os.Getenv("LLM_BASE_URL"),
		ImageProvider:   stringEnv("IMAGE_AI_PROVIDER", DefaultImageProvider),
		ImageAPIKey:     firstEnv("IMAGE_AI_API_KEY", "LLM_API_KEY", "GEMINI_API_KEY", "OPENAI_API_KEY"),
		ImageModel:      os.Getenv("IMAGE_AI_MODEL"),
		ImageBaseURL:    os.Getenv("IMAGE_AI_BASE_URL"),
		StorageBackend:  stringEnv("STORAGE_BACKEND", DefaultStorage),
		StoragePath:     stringEnv("STORAGE_PATH", DefaultStoragePath),
		StorageBaseURL:  os.Getenv("STORAGE_BASE_URL"),
		StorageEndpoint: os.Getenv("STORAGE_ENDPOINT"),
		StorageToken:    os.Getenv("STORAGE_TOKEN"),
		StorageBucket:   stringEnv("STORAGE_BUCKET", DefaultBucket),
		ChromePath:      os.Getenv("CHROME_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.StorageBackend == "supabase" {
		if c.StorageEndpoint == "" || c.StorageToken == "" {
			return fmt.Errorf("config validation failed: supabase storage requires STORAGE_ENDPOINT and STORAGE_TOKEN")
		}
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
