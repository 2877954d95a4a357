package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPFetcher is the generic fallback: GET the page and extract its main
// content.
type HTTPFetcher struct {
	client  *http.Client
	maxBody int64
}

// NewHTTPFetcher returns an HTTPFetcher using client (http.DefaultClient if nil).
func NewHTTPFetcher(client *http.Client, maxBodyBytes int64) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &HTTPFetcher{client: client, maxBody: maxBodyBytes}
}

// Fetch returns the extracted fragment, or a *StatusError for non-2xx replies.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ex, err := f.FetchExtraction(ctx, url)
	if err != nil {
		return "", err
	}
	return ex.HTML, nil
}

// FetchExtraction is Fetch that also reports which container matched.
func (f *HTTPFetcher) FetchExtraction(ctx context.Context, url string) (Extraction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Extraction{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set(HeaderRequestedWith, AjaxRequestedWith)

	resp, err := f.client.Do(req)
	if err != nil {
		return Extraction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Extraction{}, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return Extraction{}, fmt.Errorf("reading response: %w", err)
	}
	return Extract(string(body)), nil
}
