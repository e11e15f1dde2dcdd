package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kelhaddad/folio/internal/app"
	"github.com/kelhaddad/folio/internal/config"
	"github.com/kelhaddad/folio/internal/imageprobe"
	"github.com/kelhaddad/folio/internal/server"
	"github.com/kelhaddad/folio/internal/watch"
)

var (
	servePort    int
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long:  `Starts the folio HTTP server: renders the home, post list, and post detail pages from the data directory and live-reloads connected browsers on data changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		prober, closeCache, err := buildProber(cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg, prober)
		if err != nil {
			return fmt.Errorf("building application: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Port,
			DataDir:  cfg.DataDir,
			AllowAll: cfg.CORSAll,
		}, a)

		if cfg.LiveEdit && !serveNoWatch {
			w, err := watch.New(cfg.DataDir, func() {
				a.Reload(ctx)
				srv.Hub().Broadcast("reload")
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: data watcher unavailable: %v\n", err)
			} else {
				go w.Run(ctx)
			}
		}

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "folio v%s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Data: %s\n", cfg.DataDir)
		fmt.Fprintf(os.Stderr, "  Posts: %d\n", len(a.Posts()))

		return srv.Start()
	},
}

// buildProber assembles the image prober, opening the SQLite outcome
// cache when one is configured. The returned closer is a no-op when the
// cache is disabled.
func buildProber(cfg *config.Config) (*imageprobe.Prober, func(), error) {
	var cache *imageprobe.Cache
	closer := func() {}

	if cfg.ProbeCache != "" {
		c, err := imageprobe.OpenCache(cfg.ProbeCache, time.Duration(cfg.ProbeTTLHours)*time.Hour)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: probe cache unavailable, probing without it: %v\n", err)
		} else {
			cache = c
			closer = func() { c.Close() }
		}
	}

	prober := imageprobe.New(cfg.Placeholder, cfg.DataDir, cache)
	if cfg.ImageTimeoutSec > 0 {
		prober.Timeout = time.Duration(cfg.ImageTimeoutSec) * time.Second
	}
	return prober, closer, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable the data directory watcher")
	rootCmd.AddCommand(serveCmd)
}
