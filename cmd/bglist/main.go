package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/bglist/internal/app/games"
	"github.com/preston-bernstein/bglist/internal/config"
	"github.com/preston-bernstein/bglist/internal/display"
	"github.com/preston-bernstein/bglist/internal/logging"
	"github.com/preston-bernstein/bglist/internal/metrics"
	"github.com/preston-bernstein/bglist/internal/providers/bgg"
	"github.com/preston-bernstein/bglist/internal/store"
)

const (
	appName    = "bglist"
	appVersion = "dev"

	metricsShutdownTimeout = 5 * time.Second
)

type runFunc func(ctx context.Context, update bool) error

func newRootCmd(run runFunc) *cobra.Command {
	var update bool

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "List owned board games that have not been rated yet",
		Long:    "bglist prints the unrated games of a BoardGameGeek collection, caching the list in the shared data directory.",
		Version: appVersion,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Past flag parsing, failures are runtime errors; usage would only add noise.
			cmd.SilenceUsage = true
			return run(cmd.Context(), update)
		},
	}
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Initiate sync with BGG data")
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(func(ctx context.Context, update bool) error {
		return runApp(ctx, update, os.Stdout, os.Stderr)
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runApp(ctx context.Context, update bool, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: appName,
		Version: appVersion,
		Writer:  stderr,
	})

	recorder, shutdownMetrics, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		TextfilePath: cfg.Metrics.TextfilePath,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			logging.Warn(logger, "metrics shutdown failed", "error", err)
		}
	}()

	client := bgg.NewClient(bgg.Config{
		Logger:  logger,
		Metrics: recorder,
	})
	svc := games.NewService(client, store.NewFSStore(cfg.DataDir), display.NewPrinter(stdout), logger, recorder)

	return svc.Run(ctx, update)
}
