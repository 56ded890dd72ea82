package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"pedidos-backend/internal/api"
	"pedidos-backend/internal/auth"
	"pedidos-backend/internal/config"
	"pedidos-backend/internal/database"
	"pedidos-backend/internal/logger"
	"pedidos-backend/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.New(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// run serves until ctx is cancelled, then shuts the server down.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	e, closeDB, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Bool("lock_api", cfg.LockAPI).Msg("starting pedidos backend")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer opens the store, seeds the default users and builds the echo
// instance. The returned func closes the store.
func newServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*echo.Echo, func(), error) {
	// Initialize database
	log.Info().Str("path", cfg.Database.Path).Msg("opening database")
	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	closeDB := func() { db.Close() }

	// Create the default users if no users exist
	authSvc := auth.NewService(database.NewUserRepo(db), log)
	if _, err := authSvc.EnsureDefaultUsers(ctx,
		auth.DefaultUser{Name: cfg.Seed.AdminName, Password: cfg.Seed.AdminPassword, IsAdmin: true},
		auth.DefaultUser{Name: cfg.Seed.UserName, Password: cfg.Seed.UserPassword},
	); err != nil {
		log.Warn().Err(err).Msg("failed to create default users")
	}

	e, err := api.NewServer(api.Options{
		Log:     log,
		DB:      db,
		Orders:  database.NewOrderRepo(db),
		Catalog: database.NewCatalogRepo(db),
		Auth:    authSvc,
		Metrics: metrics.New(),
		Session: auth.SessionConfig{
			Name:     cfg.Session.Name,
			Secret:   cfg.Session.Secret,
			Lifetime: cfg.Session.Lifetime,
			Secure:   cfg.Session.Secure,
		},
		RecentWindow: cfg.Database.RecentWindow,
		Prices:       cfg.Prices,
		LockAPI:      cfg.LockAPI,
	})
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("build server: %w", err)
	}
	return e, closeDB, nil
}
