package config

import (
	"time"

	"github.com/ziadkadry99/overlaykit/internal/contentcache"
	"github.com/ziadkadry99/overlaykit/internal/fetch"
	"github.com/ziadkadry99/overlaykit/internal/gesture"
	"github.com/ziadkadry99/overlaykit/internal/locale"
	"github.com/ziadkadry99/overlaykit/internal/overlay"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".overlaykit.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Overlay: OverlayConfig{
			Selector:         "#category-overlay",
			BodySelector:     "#overlay-body",
			TriggerSelector:  ".category-link",
			CloseSelector:    `[data-dismiss="overlay"]`,
			BackdropSelector: ".overlay-backdrop",
			ContentSelector:  ".overlay-content",
			LoadingClass:     string(overlay.MarkerLoading),
			AnimationMS:      int(overlay.DefaultAnimationDuration / time.Millisecond),
			ClearGraceMS:     int(overlay.DefaultClearGrace / time.Millisecond),
			CacheEnabled:     true,
			CacheCapacity:    contentcache.DefaultCapacity,
			Direction:        string(locale.LTR),
			SwipeThreshold:   gesture.DefaultThreshold,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: 15,
			MaxBodyBytes:   fetch.DefaultMaxBodyBytes,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    ".overlaykit/journal.db",
		},
	}
}
