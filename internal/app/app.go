package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/reference"
	registryrepo "github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/registry"
	"github.com/heartmarshall/serviceregistry-backend/internal/adapter/postgres/snapshot"
	"github.com/heartmarshall/serviceregistry-backend/internal/auth"
	"github.com/heartmarshall/serviceregistry-backend/internal/config"
	"github.com/heartmarshall/serviceregistry-backend/internal/metrics"
	"github.com/heartmarshall/serviceregistry-backend/internal/service/registry"
	"github.com/heartmarshall/serviceregistry-backend/internal/transport/middleware"
	"github.com/heartmarshall/serviceregistry-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the validation service and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, ComponentServer)

	build := CurrentBuild()
	logger.Info("starting application",
		slog.Any("build", build),
		slog.String("log_level", cfg.Log.Level),
		slog.Int("min_api_version", cfg.Validation.MinAPIVersion),
		slog.Int("max_api_version", cfg.Validation.MaxAPIVersion),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	refRepo := reference.New(pool)
	svc := registry.NewService(
		logger,
		cfg.Validation,
		registry.Lookups{
			Codes:    refRepo,
			Taxonomy: refRepo,
			Registry: registryrepo.New(pool),
		},
		snapshot.New(pool),
		audit.New(pool),
		postgres.NewTxManager(pool),
		m,
	)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL,
		auth.WithLeeway(cfg.Auth.ClockSkew))

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := rest.NewRouter(rest.RouterDeps{
		Validation:     rest.NewValidationHandler(svc, cfg.Server.MaxBodyBytes, logger),
		Admin:          rest.NewAdminHandler(svc, logger),
		Health:         rest.NewHealthHandler(pool, refRepo, build.String()),
		Auth:           middleware.Auth(jwtManager),
		RateLimit:      limiter.Limit(cfg.Server.RateLimitPerMinute),
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		CORS:           cfg.CORS,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
