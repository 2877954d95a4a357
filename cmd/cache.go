package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

var cacheAddr string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the content caches of a running server",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the content cache of every connected page",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cacheAddr
		if addr == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			addr = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		}

		n, err := clearRemoteCache(cmd.Context(), http.DefaultClient, addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared cache of %d session(s)\n", n)
		return nil
	},
}

// clearRemoteCache calls DELETE /api/cache on the server at addr and
// returns the number of sessions cleared.
func clearRemoteCache(ctx context.Context, client *http.Client, addr string) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	url := strings.TrimSuffix(addr, "/") + "/api/cache"
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("contacting server at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("clearing cache: server returned %s", resp.Status)
	}

	var body struct {
		Sessions int `json:"sessions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}
	return body.Sessions, nil
}

func init() {
	cacheClearCmd.Flags().StringVar(&cacheAddr, "addr", "", "Server base URL (default http://localhost:<server.port>)")
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
