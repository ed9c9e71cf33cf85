package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvRequiresConfig(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_SERVICE_KEY", "")

	_, err := NewFromEnv()
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody []byte

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	t.Setenv("SUPABASE_URL", ts.URL)
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("STORAGE_BUCKET", "investments")

	client, err := NewFromEnv()
	require.NoError(t, err)

	url, err := client.Upload(context.Background(), "payment-proofs/u1-1.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "/storage/v1/object/investments/payment-proofs/u1-1.png", gotPath)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, []byte("png-bytes"), gotBody)
	assert.Equal(t, ts.URL+"/storage/v1/object/public/investments/payment-proofs/u1-1.png", url)
}

func TestUploadSurfacesServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bucket not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	t.Setenv("SUPABASE_URL", ts.URL)
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("STORAGE_BUCKET", "investments")

	client, err := NewFromEnv()
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), "p.png", []byte("x"), "image/png")
	assert.ErrorContains(t, err, "status=404")
}
