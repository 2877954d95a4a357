package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIClient is a HostClient that speaks the host's JSON envelope over HTTP.
type APIClient struct {
	http    *http.Client
	maxBody int64
	base    *url.URL
}

// NewAPIClient returns an APIClient using client (http.DefaultClient if nil).
func NewAPIClient(client *http.Client, maxBodyBytes int64) *APIClient {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &APIClient{http: client, maxBody: maxBodyBytes}
}

// WithBase returns a copy that sends every request to the host API at base,
// keeping the requested page's path and query.
func (c *APIClient) WithBase(base string) (*APIClient, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing host api %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("host api %q must be an absolute http(s) URL", base)
	}
	cp := *c
	cp.base = u
	return &cp, nil
}

func (c *APIClient) target(raw string) (string, error) {
	if c.base == nil {
		return raw, nil
	}
	page, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing page url: %w", err)
	}
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(page.Path, "/")
	u.RawQuery = page.RawQuery
	return u.String(), nil
}

// Request performs the call and decodes the envelope. A non-2xx reply without
// an error object is reported as a failed response carrying "HTTP <status>".
func (c *APIClient) Request(ctx context.Context, url string, opts RequestOptions) (*HostResponse, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.target(url)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building host request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("host request: %w", err)
	}
	defer resp.Body.Close()

	var out HostResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, c.maxBody)).Decode(&out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &HostResponse{Error: &HostFailure{Message: (&StatusError{Code: resp.StatusCode}).Error()}}, nil
		}
		return nil, fmt.Errorf("decoding host response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.Success = false
		if out.Error == nil || out.Error.Message == "" {
			out.Error = &HostFailure{Message: (&StatusError{Code: resp.StatusCode}).Error()}
		}
	}
	return &out, nil
}
