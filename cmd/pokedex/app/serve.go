package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/config"
	"github.com/kailas-cloud/pokedex/internal/db"
	dbRedis "github.com/kailas-cloud/pokedex/internal/db/redis"
	logpkg "github.com/kailas-cloud/pokedex/internal/logger"
	"github.com/kailas-cloud/pokedex/internal/metrics"
	"github.com/kailas-cloud/pokedex/internal/repository/rostercache"
	chiTransport "github.com/kailas-cloud/pokedex/internal/transport/chi"
	"github.com/kailas-cloud/pokedex/internal/transport/graphql"
	"github.com/kailas-cloud/pokedex/internal/usecase/health"
	rosteruc "github.com/kailas-cloud/pokedex/internal/usecase/roster"
	"github.com/kailas-cloud/pokedex/internal/version"
)

// createServeCommand creates the serve subcommand
func (a *App) createServeCommand() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the roster HTTP API configured by config/<env>.yaml.

The environment defaults to $ENV, then "local". Values in the file may
reference environment variables as ${VAR} or ${VAR:-default}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if env == "" {
				env = config.GetEnv()
			}
			cfg, err := config.Load(env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, env, &cfg, logger)
		},
	}
	cmd.Flags().StringVar(&env, "env", "", "Config environment (default $ENV or local)")
	return cmd
}

// serve is the composition root of the HTTP API. It blocks until ctx is done.
func serve(ctx context.Context, env string, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting pokedex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source", cfg.Source.Endpoint),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	var store db.Store
	if cfg.Cache.Remote() {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return fmt.Errorf("create %s store: %w", cfg.Cache.Driver, err)
		}
		defer s.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := s.WaitForReady(ctx, readiness); err != nil {
			return fmt.Errorf("cache not ready: %w", err)
		}
		logger.Info("Connected to cache")
		store = s
	}

	// Register source and cache metrics explicitly (no init())
	metrics.RegisterRosterMetrics()

	source, err := graphql.NewClient(&graphql.Config{
		Endpoint:   cfg.Source.Endpoint,
		Timeout:    time.Duration(cfg.Source.TimeoutSec) * time.Second,
		RosterSize: cfg.Source.RosterSize,
		UserAgent:  cfg.Source.UserAgent,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("create source: %w", err)
	}

	// Pass nil interfaces (not typed nil pointers) when no cache server is configured.
	var cachePinger health.CachePinger
	cacheOpts := rostercache.Options{
		TTL:        time.Duration(cfg.Cache.TTLSec) * time.Second,
		KeyPrefix:  cfg.Cache.KeyPrefix,
		RosterSize: source.RosterSize(),
		LocalSize:  cfg.Cache.LocalSize,
		CacheTotal: metrics.RosterCacheTotal,
		Logger:     logger,
	}
	if store != nil {
		cacheOpts.Store = store
		cachePinger = store
	}

	var rosterSource rosteruc.Source = source
	if cfg.Cache.Driver != config.CacheNone {
		rosterSource = rostercache.New(source, cacheOpts)
	}

	rosterSvc := rosteruc.New(rosterSource).
		WithPagination(cfg.Listing.DefaultPageSize, cfg.Listing.MaxPageSize)
	healthSvc := health.New(source, cachePinger)

	server := chiTransport.NewServer(rosterSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
