// Package progress reports progress of batch commands such as check.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while a batch of URLs is processed.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a CIReporter when the CI environment variable is set,
// and a TerminalReporter otherwise. Both write to w.
func NewReporter(w io.Writer, description string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w, description: description}
	}
	return &TerminalReporter{w: w, description: description}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w           io.Writer
	description string
	bar         *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(r.description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	w           io.Writer
	description string
	total       int
}

func (r *CIReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.w, "%s: %d URLs\n", r.description, total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.description)
}
