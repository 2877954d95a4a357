package overlay

import "strings"

// ResolveTrigger derives the open target from a category link: its href or
// data-url becomes the URL, its data-title or visible text the heading.
// ok is false when the link carries no URL.
func ResolveTrigger(href, dataURL, dataTitle, text string) (url, title string, ok bool) {
	url = strings.TrimSpace(href)
	if url == "" {
		url = strings.TrimSpace(dataURL)
	}
	if url == "" {
		return "", "", false
	}
	title = strings.TrimSpace(dataTitle)
	if title == "" {
		title = strings.Join(strings.Fields(text), " ")
	}
	return url, title, true
}
