package cmd

import (
	"fmt"
	"net/http"

	"github.com/ziadkadry99/overlaykit/internal/config"
	"github.com/ziadkadry99/overlaykit/internal/fetch"
	"github.com/ziadkadry99/overlaykit/internal/session"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `overlaykit init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// fetchSetup is the content retrieval stack built from config.
type fetchSetup struct {
	client  *http.Client
	maxBody int64
	guard   *fetch.Guard
	host    fetch.HostClient
	fetcher fetch.Fetcher
}

// newFetchSetup selects the fetch strategy once and wraps it in the URL
// guard.
func newFetchSetup(cfg *config.Config) (*fetchSetup, error) {
	client := &http.Client{Timeout: cfg.FetchTimeout()}

	guard, err := fetch.NewGuard(cfg.Fetch.Origin, cfg.Fetch.AllowedPaths)
	if err != nil {
		return nil, fmt.Errorf("building url guard: %w", err)
	}

	fs := &fetchSetup{client: client, maxBody: cfg.Fetch.MaxBodyBytes, guard: guard}
	if cfg.Fetch.HostAPI != "" {
		api, err := fetch.NewAPIClient(client, cfg.Fetch.MaxBodyBytes).WithBase(cfg.Fetch.HostAPI)
		if err != nil {
			return nil, err
		}
		fs.host = api
	}
	fs.fetcher = fetch.Guarded(fetch.Select(fs.host, client, cfg.Fetch.MaxBodyBytes), guard)
	return fs, nil
}

// strategy names the selected fetch strategy for display.
func (fs *fetchSetup) strategy() string {
	if fs.host != nil {
		return "host api"
	}
	return "page extraction"
}

// clientConfig maps the overlay section onto the client script's binding.
func clientConfig(cfg *config.Config) session.ClientConfig {
	o := cfg.Overlay
	return session.ClientConfig{
		Selector:         o.Selector,
		BodySelector:     o.BodySelector,
		TriggerSelector:  o.TriggerSelector,
		CloseSelector:    o.CloseSelector,
		BackdropSelector: o.BackdropSelector,
		ContentSelector:  o.ContentSelector,
		LoadingClass:     o.LoadingClass,
	}
}
