package overlay

import "github.com/ziadkadry99/overlaykit/internal/focustrap"

// Marker is a visual state flag toggled on the overlay root.
type Marker string

const (
	MarkerOpening Marker = "overlay-opening"
	MarkerLoading Marker = "overlay-loading"
	MarkerClosing Marker = "overlay-closing"
)

// View is the overlay's DOM as seen by the controller. Only the controller
// writes to it, and only from the loop.
type View interface {
	focustrap.Container

	SetVisible(visible bool)
	SetScrollLocked(locked bool)
	SetAriaHidden(hidden bool)
	SetMarker(m Marker, on bool)
	// ReplaceBody swaps the content body's markup.
	ReplaceBody(html string)
}

// Reinitializer activates interactive widgets inside freshly injected
// content. It is called after every successful injection.
type Reinitializer interface {
	Reinitialize(req Request)
}

// EventContentLoaded is broadcast after every successful content injection.
const EventContentLoaded = "overlay.content.loaded"

// Event is a broadcast notification for loosely coupled listeners.
type Event struct {
	Name      string
	Request   Request
	FromCache bool
}

// Listener receives broadcast events.
type Listener func(Event)
