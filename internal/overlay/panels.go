package overlay

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/ziadkadry99/overlaykit/internal/locale"
)

var loadingPanel = template.Must(template.New("loading").Parse(
	`<div class="overlay-loading-state text-center py-20" dir="{{.Dir}}">` +
		`<div class="inline-block animate-spin rounded-full h-12 w-12 border-b-2 border-gray-900 dark:border-gray-100" role="status"></div>` +
		`<h3 class="mt-4 text-xl font-semibold">{{.Title}}</h3>` +
		`<p class="mt-2 text-gray-600 dark:text-gray-400">{{.Text}}</p>` +
		`</div>`))

var errorPanel = template.Must(template.New("error").Parse(
	`<div class="overlay-error-state text-center py-20" dir="{{.Dir}}" role="alert">` +
		`<svg class="mx-auto h-12 w-12 text-red-500" fill="none" stroke="currentColor" viewBox="0 0 24 24">` +
		`<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M12 8v4m0 4h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"></path>` +
		`</svg>` +
		`<h3 class="mt-4 text-xl font-semibold text-red-600">{{.Title}}</h3>` +
		`<p class="mt-2 text-gray-600 dark:text-gray-400">{{.Message}}</p>` +
		`<button type="button" data-overlay-action="reload" class="mt-4 px-6 py-2 bg-blue-600 text-white rounded-lg hover:bg-blue-700">{{.Retry}}</button>` +
		`</div>`))

func renderLoading(cat locale.Catalog, title string) (string, error) {
	var b strings.Builder
	err := loadingPanel.Execute(&b, struct {
		Dir   locale.Direction
		Title string
		Text  string
	}{cat.Dir, title, cat.Loading})
	if err != nil {
		return "", fmt.Errorf("rendering loading panel: %w", err)
	}
	return b.String(), nil
}

func renderError(cat locale.Catalog, message string) (string, error) {
	var b strings.Builder
	err := errorPanel.Execute(&b, struct {
		Dir     locale.Direction
		Title   string
		Message string
		Retry   string
	}{cat.Dir, cat.ErrorTitle, message, cat.Retry})
	if err != nil {
		return "", fmt.Errorf("rendering error panel: %w", err)
	}
	return b.String(), nil
}
