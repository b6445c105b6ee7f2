// Package authserver initializes and runs the identity authority: it opens
// the user store, applies migrations, connects the OTP delivery stream, and
// serves the public and internal HTTP APIs with graceful shutdown.
package authserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/2003dinijay/ChatStack/internal/authserver/config"
	"github.com/2003dinijay/ChatStack/internal/authserver/migrations"
	"github.com/2003dinijay/ChatStack/internal/authserver/repositories/users"
	"github.com/2003dinijay/ChatStack/internal/authserver/rest"
	"github.com/2003dinijay/ChatStack/internal/authserver/services"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/messaging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewDefault("authserver")

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	stream := messaging.NewRedisStream(
		messaging.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		cfg.OtpStream, messaging.DefaultGroup, logger)

	repo := users.NewPostgresRepository(db)
	auth := services.NewAuthService(repo, stream, logger, []byte(cfg.JWTSecret),
		cfg.TokenValidity, cfg.OtpValidity, cfg.ResetOtpValidity)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: rest.NewServer(auth, logger, []byte(cfg.JWTSecret)).Router(),
	}

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then shuts down draining in-flight requests.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	return app.db.Close()
}
