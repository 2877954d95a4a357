package config

// Config is the top-level overlaykit configuration, corresponding to
// .overlaykit.yml.
type Config struct {
	Overlay OverlayConfig `yaml:"overlay" koanf:"overlay"`
	Fetch   FetchConfig   `yaml:"fetch" koanf:"fetch"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
	Journal JournalConfig `yaml:"journal" koanf:"journal"`
}

// OverlayConfig holds the DOM binding and controller behaviour.
type OverlayConfig struct {
	Selector         string  `yaml:"selector" koanf:"selector"`
	BodySelector     string  `yaml:"body_selector" koanf:"body_selector"`
	TriggerSelector  string  `yaml:"trigger_selector" koanf:"trigger_selector"`
	CloseSelector    string  `yaml:"close_selector" koanf:"close_selector"`
	BackdropSelector string  `yaml:"backdrop_selector" koanf:"backdrop_selector"`
	ContentSelector  string  `yaml:"content_selector" koanf:"content_selector"`
	LoadingClass     string  `yaml:"loading_class" koanf:"loading_class"`
	AnimationMS      int     `yaml:"animation_ms" koanf:"animation_ms"`
	ClearGraceMS     int     `yaml:"clear_grace_ms" koanf:"clear_grace_ms"`
	CacheEnabled     bool    `yaml:"cache_enabled" koanf:"cache_enabled"`
	CacheCapacity    int     `yaml:"cache_capacity" koanf:"cache_capacity"`
	Direction        string  `yaml:"direction" koanf:"direction"`
	SwipeThreshold   float64 `yaml:"swipe_threshold" koanf:"swipe_threshold"`
}

// FetchConfig controls how category content is retrieved.
type FetchConfig struct {
	// Origin is the storefront the overlay may fetch from. Relative trigger
	// URLs resolve against it.
	Origin string `yaml:"origin" koanf:"origin"`
	// HostAPI, when set, selects the host platform API strategy.
	HostAPI        string   `yaml:"host_api" koanf:"host_api"`
	AllowedPaths   []string `yaml:"allowed_paths" koanf:"allowed_paths"`
	TimeoutSeconds int      `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes" koanf:"max_body_bytes"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AllowedOrigins  []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// JournalConfig controls the transition journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
	// RetentionHours drops older entries at startup; 0 keeps everything.
	RetentionHours int `yaml:"retention_hours" koanf:"retention_hours"`
}
