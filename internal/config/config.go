package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/overlaykit/internal/locale"
	"github.com/ziadkadry99/overlaykit/internal/overlay"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: OVERLAYKIT_FETCH__ORIGIN sets fetch.origin.
const EnvPrefix = "OVERLAYKIT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (OVERLAYKIT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	o := c.Overlay
	if o.Selector == "" {
		return fmt.Errorf("overlay.selector is required")
	}
	if o.BodySelector == "" {
		return fmt.Errorf("overlay.body_selector is required")
	}
	if o.TriggerSelector == "" {
		return fmt.Errorf("overlay.trigger_selector is required")
	}
	if o.AnimationMS < 0 {
		return fmt.Errorf("overlay.animation_ms must be non-negative")
	}
	if o.ClearGraceMS < 0 {
		return fmt.Errorf("overlay.clear_grace_ms must be non-negative")
	}
	if o.CacheCapacity < 0 {
		return fmt.Errorf("overlay.cache_capacity must be non-negative")
	}
	if o.SwipeThreshold < 0 {
		return fmt.Errorf("overlay.swipe_threshold must be non-negative")
	}
	if _, err := locale.ParseDirection(o.Direction); err != nil {
		return fmt.Errorf("overlay.direction: %w", err)
	}

	f := c.Fetch
	if f.Origin != "" {
		if err := checkOrigin("fetch.origin", f.Origin); err != nil {
			return err
		}
	}
	if f.HostAPI != "" {
		if err := checkOrigin("fetch.host_api", f.HostAPI); err != nil {
			return err
		}
	}
	for _, p := range f.AllowedPaths {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("fetch.allowed_paths: invalid pattern %q", p)
		}
	}
	if f.TimeoutSeconds < 0 {
		return fmt.Errorf("fetch.timeout_seconds must be non-negative")
	}
	if f.MaxBodyBytes < 0 {
		return fmt.Errorf("fetch.max_body_bytes must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}
	if c.Journal.RetentionHours < 0 {
		return fmt.Errorf("journal.retention_hours must be non-negative")
	}

	return nil
}

func checkOrigin(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s %q must be an absolute http(s) URL", field, raw)
	}
	return nil
}

// ControllerConfig converts the overlay section into controller settings.
// It assumes Validate has passed.
func (c *Config) ControllerConfig() overlay.Config {
	dir, _ := locale.ParseDirection(c.Overlay.Direction)
	return overlay.Config{
		AnimationDuration: time.Duration(c.Overlay.AnimationMS) * time.Millisecond,
		ClearGrace:        time.Duration(c.Overlay.ClearGraceMS) * time.Millisecond,
		CacheEnabled:      c.Overlay.CacheEnabled,
		CacheCapacity:     c.Overlay.CacheCapacity,
		Direction:         dir,
		SwipeThreshold:    c.Overlay.SwipeThreshold,
	}
}

// FetchTimeout returns the per-request timeout; zero disables it.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
