// Package app wires the configuration, storage and HTTP layers together and runs the server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/url-analytics/internal/adapter/repository/postgres"
	"github.com/vadimbarashkov/url-analytics/internal/config"
	"github.com/vadimbarashkov/url-analytics/internal/observability"
	"github.com/vadimbarashkov/url-analytics/internal/usecase"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/url-analytics/internal/adapter/delivery/http"
	pgpkg "github.com/vadimbarashkov/url-analytics/pkg/postgres"
)

const shutdownTimeout = 10 * time.Second

// NewHandler builds the instrumented HTTP handler of the service on top of db.
func NewHandler(cfg *config.Config, db *sqlx.DB, logger *httplog.Logger) http.Handler {
	urlRepo := postgres.NewURLRepository(db)
	urlUseCase := usecase.NewURLUseCase(
		urlRepo,
		usecase.WithShortCodeLength(cfg.ShortCodeLength),
		usecase.WithDefaultExpiration(cfg.DefaultExpiration()),
		usecase.WithPasswordProtection(cfg.PasswordProtection),
		usecase.WithReservedCodes(delivery.ReservedPaths...),
	)

	router := delivery.NewRouter(logger, urlUseCase, delivery.NewMetrics(), cfg.BaseURL)

	return delivery.Instrument(router)
}

func Run(ctx context.Context, cfg *config.Config, logger *httplog.Logger) error {
	const op = "app.Run"

	tp, err := observability.NewTracerProvider(ctx, cfg.Tracing.ServiceName, cfg.Env, cfg.Tracing.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("%s: failed to set up tracing: %w", op, err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shutdown tracer provider", slog.Any("err", err))
		}
	}()

	db, err := pgpkg.New(
		ctx,
		cfg.Postgres.DSN(),
		pgpkg.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		pgpkg.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		pgpkg.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		pgpkg.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		pgpkg.WithConnectRetry(5, 2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	version, err := pgpkg.RunMigrations(cfg.MigrationsPath, cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	logger.Info("database ready", slog.Uint64("schema_version", uint64(version)))

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        NewHandler(cfg, db, logger),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		logger.Info("starting server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
