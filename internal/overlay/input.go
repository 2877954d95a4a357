package overlay

import "github.com/ziadkadry99/overlaykit/internal/focustrap"

// Key names as reported by KeyboardEvent.key.
const (
	KeyEscape = "Escape"
	KeyTab    = "Tab"
)

// KeyEvent is a keydown seen while the overlay is mounted.
type KeyEvent struct {
	Key   string
	Shift bool
	// Active is the focused element, nil when focus is outside the overlay.
	Active focustrap.Element
}

// ClickTarget classifies a click inside the overlay.
type ClickTarget int

const (
	ClickOther ClickTarget = iota
	ClickClose
	ClickBackdrop
)

// HandleKey routes a keydown. It returns true when the platform default
// must be suppressed.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	switch ev.Key {
	case KeyEscape:
		c.Close()
		return false
	case KeyTab:
		return c.trap.HandleTab(ev.Active, ev.Shift)
	}
	return false
}

// HandleClick dismisses on the close control or the backdrop.
func (c *Controller) HandleClick(target ClickTarget) {
	switch target {
	case ClickClose, ClickBackdrop:
		c.Close()
	}
}

// TouchStart records the start of a touch on the scrollable content.
func (c *Controller) TouchStart(y float64) {
	c.swipe.Start(y)
}

// TouchEnd dismisses on a long enough downward swipe that began with the
// content scrolled to its top.
func (c *Controller) TouchEnd(y, scrollTop float64) {
	if c.swipe.End(y, scrollTop) {
		c.Close()
	}
}
