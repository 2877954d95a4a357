package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/overlaykit/internal/config"
	"github.com/ziadkadry99/overlaykit/internal/db"
	"github.com/ziadkadry99/overlaykit/internal/journal"
	"github.com/ziadkadry99/overlaykit/internal/server"
	"github.com/ziadkadry99/overlaykit/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the overlay server",
	Long: `Starts the overlay server: the client script at /overlay.js, the overlay
websocket, the session and cache control API, and the transition journal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		log := newLogger(os.Stderr)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fs, err := newFetchSetup(cfg)
		if err != nil {
			return err
		}

		origins := cfg.Server.AllowedOrigins
		if cfg.Fetch.Origin != "" {
			origins = append(origins, cfg.Fetch.Origin)
		}
		srv := server.New(server.Config{
			Port:           cfg.Server.Port,
			AllowAll:       cfg.Server.AllowAllOrigins,
			AllowedOrigins: origins,
		}, log)

		opts := session.Options{
			Overlay: cfg.ControllerConfig(),
			Fetcher: fs.fetcher,
			Resolve: fs.guard.Resolve,
			Logger:  log,
		}

		if cfg.Journal.Enabled {
			database, rec, err := openJournal(ctx, cfg, srv, log)
			if err != nil {
				return err
			}
			defer database.Close()
			defer rec.Close()
			opts.Observe = rec.Observer
		}

		hub := session.NewHub()
		handler, err := session.NewHandler(ctx, hub, clientConfig(cfg), opts)
		if err != nil {
			return fmt.Errorf("building session handler: %w", err)
		}
		session.RegisterRoutes(srv.Router(), handler)

		if err := srv.Listen(); err != nil {
			return err
		}

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			log.Info().Int("sessions", hub.Len()).Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.Info().
			Str("version", Version).
			Str("strategy", fs.strategy()).
			Str("origin", cfg.Fetch.Origin).
			Bool("journal", cfg.Journal.Enabled).
			Msg("overlaykit server starting")

		return srv.Start()
	},
}

// openJournal opens the journal database, applies retention and mounts the
// journal routes.
func openJournal(ctx context.Context, cfg *config.Config, srv *server.Server, log zerolog.Logger) (*db.DB, *journal.Recorder, error) {
	database, err := db.Open(cfg.Journal.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal: %w", err)
	}

	store := journal.NewStore(database)
	if h := cfg.Journal.RetentionHours; h > 0 {
		n, err := store.DeleteBefore(ctx, time.Now().Add(-time.Duration(h)*time.Hour))
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		log.Debug().Int64("deleted", n).Msg("journal retention applied")
	}

	journal.RegisterRoutes(srv.Router(), store)
	return database, journal.NewRecorder(store, log, journal.DefaultBuffer), nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
