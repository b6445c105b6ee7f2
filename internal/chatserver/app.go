// Package chatserver initializes and runs the chat service: posts and
// comments on postgres, author enrichment through the identity authority,
// and presigned S3 URLs for post images.
package chatserver

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

	"github.com/2003dinijay/ChatStack/internal/chatserver/config"
	"github.com/2003dinijay/ChatStack/internal/chatserver/migrations"
	"github.com/2003dinijay/ChatStack/internal/chatserver/repositories/comments"
	"github.com/2003dinijay/ChatStack/internal/chatserver/repositories/posts"
	"github.com/2003dinijay/ChatStack/internal/chatserver/rest"
	"github.com/2003dinijay/ChatStack/internal/chatserver/services"
	"github.com/2003dinijay/ChatStack/internal/identityclient"
	"github.com/2003dinijay/ChatStack/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewDefault("chatserver")

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	identity := identityclient.New(cfg.AuthBaseURL, logger)

	postRepo := posts.NewPostgresRepository(db)
	commentRepo := comments.NewPostgresRepository(db)

	postService := services.NewPostService(postRepo, identity, logger)
	commentService := services.NewCommentService(commentRepo, postRepo, identity, logger)
	mediaService := services.NewMediaService(cfg)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: rest.NewServer(postService, commentService, mediaService, logger, []byte(cfg.JWTSecret)).Router(),
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
