package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/cube-arcade/internal/config"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes"
	"github.com/vovakirdan/cube-arcade/internal/metrics"
	"github.com/vovakirdan/cube-arcade/internal/platform/tui"
	"github.com/vovakirdan/cube-arcade/internal/registry"
)

var (
	flagServeAddr   string
	flagMetricsAddr string
	flagHostKey     string
	flagServeDir    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Cubes SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level picker.
Runs are stored per-server (all users share the same scoreboard).
Prometheus metrics are served on --metrics-addr at /metrics.

Examples:
  cubes serve                            # Listen on serve.addr from the config
  cubes serve --addr :2222               # Listen on port 2222
  cubes serve --metrics-addr ""          # Disable metrics
  cubes serve --host-key ./my_host_key   # Use specific host key

Users can connect with:
  ssh localhost -p 2222`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "SSH server address (default: serve.addr)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Metrics address (default: serve.metrics_addr)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default: serve.host_key)")
	serveCmd.Flags().StringVar(&flagServeDir, "dir", "", "Level directory (default: built-in levels)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("addr") {
		cfg.Serve.Addr = flagServeAddr
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.Serve.MetricsAddr = flagMetricsAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.Serve.HostKey = flagHostKey
	}

	logger := newLogger(os.Stderr)

	dir, err := levelDir(flagServeDir)
	if err != nil {
		return err
	}
	list, err := loadLevels(dir, logger)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no levels found in %s", dir)
	}

	hostKey, err := config.ExpandHome(cfg.Serve.HostKey)
	if err != nil {
		return err
	}

	gameOpts := []cubes.Option{
		cubes.WithLevels(list),
		cubes.WithPlayer(cfg.PlayerKind()),
		cubes.WithTiming(cfg.Timing.StepFrames, cfg.Timing.RemakeFrames),
		cubes.WithObserver(metrics.Observer{}),
		cubes.WithLogger(logger),
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Serve.Addr,
		HostKeyPath: hostKey,
		DBPath:      cfg.Storage.DB,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Levels:      list,
		Logger:      logger,
		NewGame: func(levelID string) registry.Game {
			opts := append([]cubes.Option(nil), gameOpts...)
			return cubes.New(append(opts, cubes.WithStartLevel(levelID))...)
		},
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		return server.Serve(ctx)
	})

	if cfg.Serve.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer := &http.Server{
			Addr:              cfg.Serve.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logger.Info("serving metrics", "address", cfg.Serve.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		})
	}

	fmt.Printf("Starting Cubes SSH server on %s\n", cfg.Serve.Addr)
	fmt.Println("Press Ctrl+C to stop")

	return g.Wait()
}
