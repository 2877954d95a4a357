package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Guard restricts which URLs the server is willing to fetch on behalf of a
// browser. Relative URLs resolve against the site origin; absolute URLs must
// share its scheme and host. When path patterns are configured, the URL path
// must match at least one.
type Guard struct {
	origin   *url.URL
	patterns []string
}

// NewGuard builds a Guard. An empty origin accepts any absolute http(s) URL.
func NewGuard(origin string, patterns []string) (*Guard, error) {
	g := &Guard{}
	if origin != "" {
		u, err := url.Parse(origin)
		if err != nil {
			return nil, fmt.Errorf("parsing origin %q: %w", origin, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("origin %q must be an absolute http(s) URL", origin)
		}
		g.origin = u
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid path pattern %q", p)
		}
		g.patterns = append(g.patterns, p)
	}
	return g, nil
}

// Resolve returns the absolute URL to fetch, or an error wrapping
// ErrForbiddenURL.
func (g *Guard) Resolve(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrForbiddenURL, err)
	}

	if g.origin != nil {
		u = g.origin.ResolveReference(u)
		if !strings.EqualFold(u.Scheme, g.origin.Scheme) || !strings.EqualFold(u.Host, g.origin.Host) {
			return "", fmt.Errorf("%w: %s is outside %s", ErrForbiddenURL, u.Redacted(), g.origin.Host)
		}
	} else if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("%w: %s is not an absolute http(s) URL", ErrForbiddenURL, raw)
	}

	if len(g.patterns) > 0 && !g.pathAllowed(u.Path) {
		return "", fmt.Errorf("%w: path %s", ErrForbiddenURL, u.Path)
	}
	return u.String(), nil
}

func (g *Guard) pathAllowed(p string) bool {
	if p == "" {
		p = "/"
	}
	for _, pattern := range g.patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}

type guardedFetcher struct {
	next  Fetcher
	guard *Guard
}

// Guarded wraps next so every URL passes through g first. A nil guard
// returns next unchanged.
func Guarded(next Fetcher, g *Guard) Fetcher {
	if g == nil {
		return next
	}
	return &guardedFetcher{next: next, guard: g}
}

func (f *guardedFetcher) Fetch(ctx context.Context, raw string) (string, error) {
	resolved, err := f.guard.Resolve(raw)
	if err != nil {
		return "", err
	}
	return f.next.Fetch(ctx, resolved)
}
