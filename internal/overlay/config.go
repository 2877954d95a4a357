package overlay

import (
	"time"

	"github.com/ziadkadry99/overlaykit/internal/contentcache"
	"github.com/ziadkadry99/overlaykit/internal/gesture"
	"github.com/ziadkadry99/overlaykit/internal/locale"
)

// Defaults for Config fields left zero by DefaultConfig callers.
const (
	DefaultAnimationDuration = 300 * time.Millisecond
	DefaultClearGrace        = 100 * time.Millisecond
)

// Config tunes one controller.
type Config struct {
	// AnimationDuration is how long the close animation runs before the
	// shell is hidden.
	AnimationDuration time.Duration
	// ClearGrace is the extra delay after hiding before the body is emptied.
	ClearGrace     time.Duration
	CacheEnabled   bool
	CacheCapacity  int
	Direction      locale.Direction
	SwipeThreshold float64
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		AnimationDuration: DefaultAnimationDuration,
		ClearGrace:        DefaultClearGrace,
		CacheEnabled:      true,
		CacheCapacity:     contentcache.DefaultCapacity,
		Direction:         locale.LTR,
		SwipeThreshold:    gesture.DefaultThreshold,
	}
}
