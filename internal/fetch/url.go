package fetch

import (
	"net/url"
	"strings"
)

// NormalizeURL produces the cache key for a request URL: surrounding space
// trimmed, fragment dropped, scheme and host lowercased. Unparseable input is
// returned trimmed.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
