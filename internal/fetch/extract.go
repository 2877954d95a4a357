package fetch

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// contentMatcher describes one candidate main-content container.
type contentMatcher struct {
	name  string
	match func(*html.Node) bool
}

// contentMatchers are tried in priority order; the first one that matches
// anywhere in the document wins, regardless of document order.
var contentMatchers = []contentMatcher{
	{name: "#main-content", match: hasID("main-content")},
	{name: ".main-content", match: hasClass("main-content")},
	{name: "main", match: isAtom(atom.Main)},
	{name: ".container", match: hasClass("container")},
}

// Extraction is the outcome of locating the main content of a page.
type Extraction struct {
	HTML string
	// Matched names the container that matched, or "" when the whole
	// document was returned.
	Matched string
}

// Fallback reports whether no container matched.
func (e Extraction) Fallback() bool { return e.Matched == "" }

// Extract locates the main-content container of doc. When none is found the
// document is returned unchanged.
func Extract(doc string) Extraction {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return Extraction{HTML: doc}
	}
	for _, m := range contentMatchers {
		if n := findFirst(root, m.match); n != nil {
			return Extraction{HTML: innerHTML(n), Matched: m.name}
		}
	}
	return Extraction{HTML: doc}
}

// ExtractMainContent returns only the fragment of Extract.
func ExtractMainContent(doc string) string {
	return Extract(doc).HTML
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func innerHTML(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return b.String()
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func hasID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	}
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, "class")
		if !ok {
			return false
		}
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func isAtom(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.DataAtom == a }
}
