package pdfcheck_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/stripe-invoicer/internal/pdfcheck"
)

func TestFetch(t *testing.T) {
	payload := []byte("%PDF-1.7 fake body")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	fetcher := pdfcheck.NewFetcher()
	data, err := fetcher.Fetch(context.Background(), srv.URL+"/invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher := pdfcheck.NewFetcher()
	_, err := fetcher.Fetch(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := pdfcheck.NewFetcher()
	_, err := fetcher.Fetch(ctx, srv.URL)
	require.Error(t, err)
}

func TestValidate_Empty(t *testing.T) {
	err := pdfcheck.Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestValidate_NotAPDF(t *testing.T) {
	err := pdfcheck.Validate([]byte("<html>definitely not a pdf</html>"))
	require.Error(t, err)
}

func TestFetchAndValidate_RejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a pdf"))
	}))
	defer srv.Close()

	fetcher := pdfcheck.NewFetcher()
	_, err := fetcher.FetchAndValidate(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.pdf")

	require.NoError(t, pdfcheck.Save(path, []byte("%PDF-1.7")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), data)
}
