// Package gesture turns raw touch coordinates into dismissal decisions.
package gesture

// DefaultThreshold is the downward travel, in CSS pixels, that counts as a
// dismiss swipe.
const DefaultThreshold = 100.0

// Swipe tracks one vertical touch from start to end.
//
// The zero value uses DefaultThreshold.
type Swipe struct {
	Threshold float64

	startY   float64
	tracking bool
}

// Start records the touch-start position.
func (s *Swipe) Start(y float64) {
	s.startY = y
	s.tracking = true
}

// End reports whether the gesture that started at Start should dismiss the
// overlay: the finger travelled down further than the threshold and the
// scrollable content was already at its top edge.
func (s *Swipe) End(y, scrollTop float64) bool {
	if !s.tracking {
		return false
	}
	s.tracking = false

	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return y-s.startY > threshold && scrollTop <= 0
}

// Reset forgets a touch in progress.
func (s *Swipe) Reset() { s.tracking = false }
