package focustrap

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IsFocusable reports whether n matches the client's focusable selector:
// links with a destination and enabled form controls whatever their
// tabindex, plus any element whose tabindex attribute is not exactly "-1".
func IsFocusable(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.A:
		if _, ok := attr(n, "href"); ok {
			return true
		}
	case atom.Button, atom.Input, atom.Select, atom.Textarea:
		if _, disabled := attr(n, "disabled"); !disabled {
			return true
		}
	}
	v, ok := attr(n, "tabindex")
	return ok && v != "-1"
}

// Collect returns the focusable descendants of root in document order.
func Collect(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if IsFocusable(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// CountFragment parses an HTML fragment and counts its focusable elements.
func CountFragment(fragment string) int {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return 0
	}
	n := 0
	for _, node := range nodes {
		if IsFocusable(node) {
			n++
		}
		n += len(Collect(node))
	}
	return n
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
