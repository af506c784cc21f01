package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerator_URLResponse(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req imageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1, req.N)
		assert.Equal(t, "1024x1792", req.Size)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"url": srv.URL + "/generated.png"}},
		})
	})
	mux.HandleFunc("/generated.png", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	gen, err := NewOpenAIGenerator(Options{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	img, err := gen.Generate(context.Background(), "abstract background")
	require.NoError(t, err)
	assert.Equal(t, png, img.Data)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestOpenAIGenerator_InlineBase64Response(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
		})
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(Options{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	img, err := gen.Generate(context.Background(), "abstract background")
	require.NoError(t, err)
	assert.Equal(t, png, img.Data)
}

func TestOpenAIGenerator_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "prompt rejected"},
		})
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(Options{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "bad prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image API error 400")
	assert.Contains(t, err.Error(), "prompt rejected")
}

func TestOpenAIGenerator_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	gen, err := NewOpenAIGenerator(Options{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty image generation response")
}
