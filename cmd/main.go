package main

import (
	"context"
	"errors"
	"fmt"
	logByDefault "log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	config "github.com/plugfox/hunchworks-server/internal/config"
	"github.com/plugfox/hunchworks-server/internal/controller"
	"github.com/plugfox/hunchworks-server/internal/httpclient"
	log "github.com/plugfox/hunchworks-server/internal/log"
	"github.com/plugfox/hunchworks-server/internal/metrics"
	"github.com/plugfox/hunchworks-server/internal/server"
	storage "github.com/plugfox/hunchworks-server/internal/storage"
	"github.com/plugfox/hunchworks-server/internal/view"
	"github.com/spf13/cobra"

	// This controls the maxprocs environment variable in container runtimes.
	// see https://martin.baillie.id/wrote/gotchas-in-the-go-network-packages-defaults/#bonus-gomaxprocs-containers-and-the-cfs
	"go.uber.org/automaxprocs/maxprocs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Set the local timezone to UTC
	time.Local = time.UTC

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the hunch HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), configPath, serve)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), configPath, migrateOnly)
		},
	}

	cmd := &cobra.Command{
		Use:          "hunchworks",
		Short:        "Hunchworks server keeps track of hunches",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (defaults to $CONFIG_PATH or config.yml)")
	cmd.AddCommand(serveCmd, migrateCmd)

	return cmd
}

// execute loads the config, sets up logging and runs the action with a context
// cancelled on SIGINT or SIGTERM.
func execute(ctx context.Context, configPath string, action func(context.Context, *config.Config, *slog.Logger) error) error {
	// Initialize the configuration
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.MustLoadConfig()
	}
	if err != nil {
		logByDefault.Printf("Config load error: %v", err)
		return err
	}

	// Logger configuration
	logger := log.New(loggerOptions(cfg)...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := action(ctx, cfg, logger); err != nil {
		logger.ErrorContext(ctx, "an error occurred", slog.String("error", err.Error()))
		return err
	}

	return nil
}

func loggerOptions(cfg *config.Config) []log.Option {
	opts := []log.Option{
		log.WithLevel(cfg.Verbose),
		log.WithSource(),
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		opts = append(opts, log.WithJSON())
	}

	return opts
}

func migrateOnly(ctx context.Context, config *config.Config, logger *slog.Logger) error {
	db, err := storage.New(config, logger)
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("database migration error: %w", err)
	}

	logger.InfoContext(ctx, "Database migrated", slog.String("driver", config.Database.Driver))

	return nil
}

func serve(ctx context.Context, config *config.Config, logger *slog.Logger) error {
	_, err := maxprocs.Set(maxprocs.Logger(func(s string, i ...interface{}) {
		logger.DebugContext(ctx, fmt.Sprintf(s, i...))
	}))
	if err != nil {
		return fmt.Errorf("setting max procs: %w", err)
	}

	// Setup database connection
	db, err := storage.New(config, logger)
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("database migration error: %w", err)
	}

	// Setup InfluxDB metrics (if any)
	var metricsLogger metrics.MetricsLogger
	if config.Metrics.Enabled() {
		// Create a http client, proxied when configured
		httpClient, err := httpclient.NewHTTPClient(&config.Proxy)
		if err != nil {
			return fmt.Errorf("http client setup error: %w", err)
		}

		metricsLogger = metrics.NewMetricsImpl(
			config.Metrics.URL,
			config.Metrics.Token,
			config.Metrics.Org,
			config.Metrics.Bucket,
			map[string]string{"environment": config.Environment},
			httpClient,
			logger,
		)
	} else {
		metricsLogger = metrics.NewMetricsFake()
	}
	defer metricsLogger.Close()

	routes := controller.NewRoutes(config.API.BaseURL)

	views, err := view.New(routes)
	if err != nil {
		return fmt.Errorf("templates setup error: %w", err)
	}

	hunches := controller.NewHunchesController(storage.NewHunchStore(db), routes, logger)

	// Setup API server
	srv := server.New(config, logger, metricsLogger, hunches, views)
	srv.AddHealthCheck(func(ctx context.Context) (bool, map[string]string) {
		if err := db.Ping(ctx); err != nil {
			return false, map[string]string{"database": err.Error()}
		}
		return true, map[string]string{"database": "ok"}
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	metricsLogger.LogEvent("server_started", nil, map[string]interface{}{"port": config.API.Port})
	logger.InfoContext(ctx, "Server started", slog.String("host", config.API.Host), slog.Int("port", config.API.Port))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
		return fmt.Errorf("http server shutdown error: %w", err)
	}

	return nil
}
