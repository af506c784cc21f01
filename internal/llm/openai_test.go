package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *OpenAIClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenAIClient(Options{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o"})
	require.NoError(t, err)
	return srv, client
}

func TestOpenAIClient_GenerateJSON(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"slides": []}`}},
			},
		})
	})

	out, err := client.GenerateJSON(context.Background(), "layout engine", "prompt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"slides": []}`, out)
}

func TestOpenAIClient_APIError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited"},
		})
	})

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM API error 429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenAIClient_EmptyResponse(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := client.GenerateJSON(context.Background(), "", "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty LLM response")
}

func TestOpenAIClient_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(Options{})
	assert.Error(t, err)
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}
