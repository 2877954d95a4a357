package overlay

import "time"

// State is the lifecycle state of the overlay.
type State int

const (
	Closed State = iota
	Opening
	Loading
	Loaded
	Error
	Closing
)

var stateNames = [...]string{
	Closed:  "closed",
	Opening: "opening",
	Loading: "loading",
	Loaded:  "loaded",
	Error:   "error",
	Closing: "closing",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Dismissible reports whether a dismissal gesture applies in s.
func (s State) Dismissible() bool {
	switch s {
	case Opening, Loading, Loaded, Error:
		return true
	}
	return false
}

// Request is one open cycle's target. It lives until the next Open or until
// the overlay finishes closing.
type Request struct {
	URL        string
	Title      string
	Generation uint64
}

// Transition describes one state change.
type Transition struct {
	From       State
	To         State
	URL        string
	Generation uint64
	At         time.Time
}

// TransitionObserver is notified after every state change, on the loop.
type TransitionObserver interface {
	Transition(t Transition)
}

// TransitionFunc adapts a function to TransitionObserver.
type TransitionFunc func(Transition)

func (f TransitionFunc) Transition(t Transition) { f(t) }
