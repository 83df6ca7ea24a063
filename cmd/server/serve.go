package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"richli-site/internal/config"
	"richli-site/internal/handlers"
	"richli-site/internal/health"
	h "richli-site/internal/http"
	"richli-site/internal/logger"
	"richli-site/internal/middleware"
	"richli-site/internal/monitoring"
	"richli-site/internal/views"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Override port if specified
			if port != 0 {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: ./config.yaml if present)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "server port (overrides config)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	metrics := monitoring.NewMetrics()
	pageHandler := handlers.NewPageHandler(metrics, log)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(views.ImpressumDocument, "Impressum"), log)

	ips, err := middleware.NewClientIP(cfg.Security.TrustedProxies)
	if err != nil {
		return err
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, ips)
	defer limiter.Stop()

	router := h.NewRouter(pageHandler, healthHandler, metrics, cfg.Metrics.Enabled)
	server := h.NewServer(cfg, h.Chain(cfg, router, limiter, ips, log, metrics), log)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		sampler := monitoring.NewHostSampler(metrics, cfg.Monitoring.Interval, log)
		g.Go(func() error { return sampler.Run(ctx) })
	}

	g.Go(func() error {
		log.Info("server running", zap.String("addr", server.Addr), zap.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
