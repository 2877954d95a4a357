// Package fetch retrieves overlay content for a URL.
//
// Two strategies implement Fetcher: HostFetcher talks to a host-platform API
// client that can return fragments directly, and HTTPFetcher performs a plain
// GET and extracts the main content from the returned page. Select picks one
// at construction time.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Header and value that tell the backend the request came from script, so it
// may answer with a fragment instead of a full page.
const (
	HeaderRequestedWith = "X-Requested-With"
	AjaxRequestedWith   = "XMLHttpRequest"
)

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes int64 = 5 << 20

var (
	// ErrEmptyPayload is returned when the host reports success but carries
	// no field HTML can be derived from.
	ErrEmptyPayload = errors.New("host response carried no content")
	// ErrForbiddenURL is returned by a Guard for URLs outside the allowed site.
	ErrForbiddenURL = errors.New("url not allowed")
)

// Fetcher retrieves the HTML fragment for url. Each call is single-shot:
// no retry and no prefetch.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("HTTP %d", e.Code) }

// HostError carries the human-readable message a host API reported.
type HostError struct {
	Message string
}

func (e *HostError) Error() string { return e.Message }

// Select returns the strategy for this process: HostFetcher when a host
// client is present, HTTPFetcher otherwise. The choice is made once.
func Select(host HostClient, client *http.Client, maxBodyBytes int64) Fetcher {
	if host != nil {
		return NewHostFetcher(host)
	}
	return NewHTTPFetcher(client, maxBodyBytes)
}
