package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
)

const defaultHostFailure = "Failed to fetch content"

// RequestOptions mirrors the options a host API request accepts.
type RequestOptions struct {
	Method  string
	Headers map[string]string
}

// HostResponse is the structured reply of a host API call.
type HostResponse struct {
	Success bool         `json:"success"`
	Data    HostData     `json:"data"`
	Error   *HostFailure `json:"error,omitempty"`
}

// HostData is the payload of a successful host reply. HTML wins; Content is a
// full page to extract from; Markdown is rendered as a last resort.
type HostData struct {
	HTML     string `json:"html,omitempty"`
	Content  string `json:"content,omitempty"`
	Markdown string `json:"markdown,omitempty"`
}

// HostFailure is the error object of a failed host reply.
type HostFailure struct {
	Message string `json:"message"`
}

// HostClient is the optional host-platform API collaborator.
type HostClient interface {
	Request(ctx context.Context, url string, opts RequestOptions) (*HostResponse, error)
}

// HostFetcher fetches through a HostClient.
type HostFetcher struct {
	client HostClient
	md     goldmark.Markdown
}

// NewHostFetcher wraps client as a Fetcher.
func NewHostFetcher(client HostClient) *HostFetcher {
	return &HostFetcher{client: client, md: goldmark.New()}
}

// Fetch issues an AJAX-tagged GET through the host client.
func (f *HostFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.Request(ctx, url, RequestOptions{
		Method:  http.MethodGet,
		Headers: map[string]string{HeaderRequestedWith: AjaxRequestedWith},
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", &HostError{Message: defaultHostFailure}
	}
	if !resp.Success {
		msg := defaultHostFailure
		if resp.Error != nil && resp.Error.Message != "" {
			msg = resp.Error.Message
		}
		return "", &HostError{Message: msg}
	}
	return f.derive(resp.Data)
}

func (f *HostFetcher) derive(data HostData) (string, error) {
	switch {
	case data.HTML != "":
		return data.HTML, nil
	case data.Content != "":
		return ExtractMainContent(data.Content), nil
	case data.Markdown != "":
		var buf bytes.Buffer
		if err := f.md.Convert([]byte(data.Markdown), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown payload: %w", err)
		}
		return buf.String(), nil
	default:
		return "", ErrEmptyPayload
	}
}
