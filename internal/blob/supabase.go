package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const supabaseTimeout = 60 * time.Second

// SupabaseStore persists objects through a Supabase-compatible storage
// REST endpoint. Uploads use upsert semantics so redelivered jobs
// overwrite at the same deterministic path instead of failing.
type SupabaseStore struct {
	endpoint string // e.g. https://<project>.supabase.co/storage/v1
	token    string
	bucket   string
	client   *http.Client
}

// NewSupabaseStore creates a store for the given storage endpoint, service
// token and bucket.
func NewSupabaseStore(endpoint, token, bucket string) (*SupabaseStore, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("blob: storage endpoint is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("blob: storage token is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("blob: bucket is required")
	}
	return &SupabaseStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		bucket:   bucket,
		client:   &http.Client{Timeout: supabaseTimeout},
	}, nil
}

// Put uploads the bytes at key and returns the object's public URL.
func (s *SupabaseStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploadURL := fmt.Sprintf("%s/object/%s/%s", s.endpoint, s.bucket, cleanKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("blob: build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob: upload failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("blob: upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	return s.PublicURL(cleanKey), nil
}

// PublicURL returns the public URL for a stored key.
func (s *SupabaseStore) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.endpoint, s.bucket, key)
}
