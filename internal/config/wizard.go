package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to overlaykit! Let's configure your storefront.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Storefront origin.
	originPrompt := promptui.Prompt{
		Label: "Storefront origin (e.g. https://shop.example.com)",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return checkOrigin("origin", strings.TrimSpace(s))
		},
	}
	origin, err := originPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	cfg.Fetch.Origin = strings.TrimSpace(origin)

	// 2. Fetch strategy.
	strategyPrompt := promptui.Select{
		Label: "How should category content be fetched?",
		Items: []string{
			"page: request the category page and extract its main content",
			"host: call the storefront platform's content API",
		},
	}
	strategyIdx, _, err := strategyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fetch strategy: %w", err)
	}
	if strategyIdx == 1 {
		apiPrompt := promptui.Prompt{
			Label: "Host API base URL",
			Validate: func(s string) error {
				return checkOrigin("host api", strings.TrimSpace(s))
			},
		}
		api, err := apiPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("host api: %w", err)
		}
		cfg.Fetch.HostAPI = strings.TrimSpace(api)
	}

	// 3. Text direction.
	dirPrompt := promptui.Select{
		Label: "Storefront text direction",
		Items: []string{"ltr", "rtl"},
	}
	_, dir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}
	cfg.Overlay.Direction = dir

	// 4. Cache capacity.
	capPrompt := promptui.Prompt{
		Label:   "Cached categories per page (0 disables the cache)",
		Default: strconv.Itoa(cfg.Overlay.CacheCapacity),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 0 {
				return fmt.Errorf("enter a non-negative number")
			}
			return nil
		},
	}
	capStr, err := capPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache capacity: %w", err)
	}
	capacity, _ := strconv.Atoi(strings.TrimSpace(capStr))
	cfg.Overlay.CacheCapacity = capacity
	cfg.Overlay.CacheEnabled = capacity > 0

	// 5. Allowed paths.
	pathsPrompt := promptui.Prompt{
		Label:   "Allowed category paths (comma-separated globs, blank allows all)",
		Default: "",
	}
	pathsStr, err := pathsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("allowed paths: %w", err)
	}
	cfg.Fetch.AllowedPaths = splitAndTrim(pathsStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
