package emailworker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/2003dinijay/ChatStack/internal/emailworker/config"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/messaging"
)

type App struct {
	logger logging.Logger
	worker *Worker
}

func NewApp(cfg *config.Config) *App {
	logger := logging.NewDefault("emailworker")

	stream := messaging.NewRedisStream(
		messaging.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
		cfg.OtpStream, cfg.OtpGroup, logger)

	return &App{
		logger: logger,
		worker: NewWorker(stream, NewSMTPMailer(cfg), logger),
	}
}

// Run consumes until a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	err := app.worker.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}

	app.logger.Info(ctx, "shutting down")
	return nil
}
