package cmd

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "overlaykit",
	Short: "Server-driven category overlay for storefronts",
	Long: `overlaykit serves a small client script that turns category links into
an in-page overlay. Each page keeps a websocket session with the server,
which fetches category content, caches it per page, and drives the
overlay's open, loading, error and close states.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".overlaykit.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger returns a console logger at debug level under --verbose and a
// JSON logger at info level otherwise.
func newLogger(w io.Writer) zerolog.Logger {
	if verbose {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
