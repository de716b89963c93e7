// Package pdfcheck downloads invoice PDFs and verifies they are
// well-formed before they are stored or forwarded.
package pdfcheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const (
	DefaultTimeout = 60 * time.Second

	// maxPDFSize caps downloads at 32 MiB. Hosted invoice PDFs are
	// a few hundred KiB; anything larger is not an invoice.
	maxPDFSize = 32 << 20
)

// Fetcher downloads PDF documents over HTTP.
type Fetcher struct {
	httpClient *http.Client
}

// FetcherOption configures the fetcher
type FetcherOption func(*Fetcher)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// WithTimeout sets the download timeout
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient.Timeout = timeout
	}
}

// NewFetcher creates a fetcher with sensible defaults.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch downloads the document at url and returns its bytes.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return data, nil
}

// Validate checks that data is a structurally valid PDF document.
func Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty document")
	}

	if err := api.Validate(bytes.NewReader(data), nil); err != nil {
		return fmt.Errorf("invalid pdf: %w", err)
	}

	return nil
}

// PageCount returns the number of pages in the document.
func PageCount(data []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("counting pages: %w", err)
	}

	return n, nil
}

// FetchAndValidate downloads url, verifies the document, and returns
// its bytes.
func (f *Fetcher) FetchAndValidate(ctx context.Context, url string) ([]byte, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	return data, nil
}

// Save writes the document to path with owner-only permissions.
func Save(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
