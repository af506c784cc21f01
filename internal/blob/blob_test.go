package blob

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "c-1/bg_3.png", Key("c-1", KindBackground, 3))
	assert.Equal(t, "c-1/preview_1.png", Key("c-1", KindPreview, 1))
	assert.Equal(t, "c-1/hires_2.png", Key("c-1", KindHires, 2))
}

func TestFileStore_PutAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:9000/carousel-gen/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "c-1/bg_1.png", []byte("first"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/carousel-gen/c-1/bg_1.png", url)

	// deterministic path means a rerun overwrites, no duplicates
	url2, err := store.Put(context.Background(), "c-1/bg_1.png", []byte("second"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, url, url2)

	data, err := os.ReadFile(filepath.Join(dir, "c-1", "bg_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "c-1"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:9000")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape.png", []byte("x"), "image/png")
	assert.Error(t, err)

	_, err = store.Put(context.Background(), "", []byte("x"), "image/png")
	assert.Error(t, err)
}

func TestSupabaseStore_Put(t *testing.T) {
	var gotPath, gotUpsert, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUpsert = r.Header.Get("x-upsert")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewSupabaseStore(srv.URL, "service-token", "carousel-gen")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "c-1/preview_2.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/object/carousel-gen/c-1/preview_2.png", gotPath)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "Bearer service-token", gotAuth)
	assert.Equal(t, srv.URL+"/object/public/carousel-gen/c-1/preview_2.png", url)
}

func TestSupabaseStore_UploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	store, err := NewSupabaseStore(srv.URL, "t", "missing")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "c-1/bg_1.png", []byte("png"), "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
