// Package fetch downloads a WordPress export file over HTTP, for jobs
// that reference the theme by URL instead of uploading it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "ThemePipe/1.0 (https://github.com/gaurav-prasanna/themepipe)"

	// maxExportSize guards against accidentally downloading something
	// that is not an export file. Real exports are a few megabytes.
	maxExportSize = 256 << 20
)

// Fetcher downloads export XML documents.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with a sensible timeout.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch retrieves the export document at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/xml,text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExportSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > maxExportSize {
		return nil, fmt.Errorf("export at %s exceeds %d bytes", url, maxExportSize)
	}

	return body, nil
}
