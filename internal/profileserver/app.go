// Package profileserver initializes and runs the profile service: profiles
// on MongoDB joined at read time with identities from the authority.
package profileserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/2003dinijay/ChatStack/internal/identityclient"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/profileserver/config"
	"github.com/2003dinijay/ChatStack/internal/profileserver/repositories/profiles"
	"github.com/2003dinijay/ChatStack/internal/profileserver/rest"
	"github.com/2003dinijay/ChatStack/internal/profileserver/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	client *mongo.Client
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewDefault("profileserver")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo init error: %w", err)
	}

	repo := profiles.NewMongoRepository(client.Database(cfg.MongoDatabase))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongo index error: %w", err)
	}

	identity := identityclient.New(cfg.AuthBaseURL, logger)
	service := services.NewProfileService(repo, identity, logger)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: rest.NewServer(service, logger, []byte(cfg.JWTSecret)).Router(),
	}

	return &App{config: cfg, logger: logger, client: client, server: server}, nil
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

	return app.client.Disconnect(shutdownCtx)
}
