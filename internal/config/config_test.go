package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/overlaykit/internal/locale"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Overlay.Selector != "#category-overlay" {
		t.Errorf("expected default selector %q, got %q", "#category-overlay", cfg.Overlay.Selector)
	}
	if cfg.Overlay.AnimationMS != 300 {
		t.Errorf("expected default animation_ms 300, got %d", cfg.Overlay.AnimationMS)
	}
	if cfg.Overlay.ClearGraceMS != 100 {
		t.Errorf("expected default clear_grace_ms 100, got %d", cfg.Overlay.ClearGraceMS)
	}
	if !cfg.Overlay.CacheEnabled || cfg.Overlay.CacheCapacity != 10 {
		t.Errorf("expected cache enabled with capacity 10, got %v/%d", cfg.Overlay.CacheEnabled, cfg.Overlay.CacheCapacity)
	}
	if cfg.Overlay.SwipeThreshold != 100 {
		t.Errorf("expected default swipe_threshold 100, got %v", cfg.Overlay.SwipeThreshold)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.overlaykit.yml")

	original := DefaultConfig()
	original.Overlay.Direction = "rtl"
	original.Overlay.CacheCapacity = 4
	original.Fetch.Origin = "https://shop.example"
	original.Fetch.AllowedPaths = []string{"/category/**", "/c/*"}
	original.Server.Port = 9090

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Overlay.Direction != "rtl" {
		t.Errorf("direction: got %q, want %q", loaded.Overlay.Direction, "rtl")
	}
	if loaded.Overlay.CacheCapacity != 4 {
		t.Errorf("cache_capacity: got %d, want 4", loaded.Overlay.CacheCapacity)
	}
	if loaded.Fetch.Origin != original.Fetch.Origin {
		t.Errorf("origin: got %q, want %q", loaded.Fetch.Origin, original.Fetch.Origin)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if len(loaded.Fetch.AllowedPaths) != 2 || loaded.Fetch.AllowedPaths[0] != "/category/**" {
		t.Errorf("allowed_paths: got %v", loaded.Fetch.AllowedPaths)
	}
	if loaded.Overlay.BodySelector != "#overlay-body" {
		t.Errorf("body_selector: got %q", loaded.Overlay.BodySelector)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Overlay.CacheCapacity != 10 {
		t.Errorf("expected default capacity, got %d", cfg.Overlay.CacheCapacity)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("overlay:\n  animation_ms: 150\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Overlay.AnimationMS != 150 {
		t.Errorf("animation_ms: got %d, want 150", cfg.Overlay.AnimationMS)
	}
	if cfg.Overlay.ClearGraceMS != 100 {
		t.Errorf("clear_grace_ms should keep its default, got %d", cfg.Overlay.ClearGraceMS)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("OVERLAYKIT_FETCH__ORIGIN", "https://env.example")
	t.Setenv("OVERLAYKIT_OVERLAY__DIRECTION", "rtl")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Fetch.Origin != "https://env.example" {
		t.Errorf("env override failed: got %q", loaded.Fetch.Origin)
	}
	if loaded.Overlay.Direction != "rtl" {
		t.Errorf("env override failed: got %q", loaded.Overlay.Direction)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"OVERLAYKIT_FETCH__ORIGIN":         "fetch.origin",
		"OVERLAYKIT_OVERLAY__CACHE_ENABLED": "overlay.cache_enabled",
		"OVERLAYKIT_SERVER__PORT":           "server.port",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty selector", func(c *Config) { c.Overlay.Selector = "" }},
		{"empty body selector", func(c *Config) { c.Overlay.BodySelector = "" }},
		{"negative animation", func(c *Config) { c.Overlay.AnimationMS = -1 }},
		{"negative grace", func(c *Config) { c.Overlay.ClearGraceMS = -1 }},
		{"negative capacity", func(c *Config) { c.Overlay.CacheCapacity = -1 }},
		{"unknown direction", func(c *Config) { c.Overlay.Direction = "ttb" }},
		{"relative origin", func(c *Config) { c.Fetch.Origin = "/shop" }},
		{"ftp origin", func(c *Config) { c.Fetch.Origin = "ftp://shop.example" }},
		{"bad host api", func(c *Config) { c.Fetch.HostAPI = "not a url" }},
		{"bad glob", func(c *Config) { c.Fetch.AllowedPaths = []string{"/category/[a"} }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"journal without path", func(c *Config) { c.Journal.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestControllerConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Overlay.AnimationMS = 250
	cfg.Overlay.Direction = "RTL"
	cfg.Overlay.CacheEnabled = false

	oc := cfg.ControllerConfig()
	if oc.AnimationDuration != 250*time.Millisecond {
		t.Errorf("AnimationDuration = %v", oc.AnimationDuration)
	}
	if oc.ClearGrace != 100*time.Millisecond {
		t.Errorf("ClearGrace = %v", oc.ClearGrace)
	}
	if oc.Direction != locale.RTL {
		t.Errorf("Direction = %q, want rtl", oc.Direction)
	}
	if oc.CacheEnabled {
		t.Error("CacheEnabled should be false")
	}
	if oc.CacheCapacity != 10 {
		t.Errorf("CacheCapacity = %d", oc.CacheCapacity)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"/category/**", []string{"/category/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
