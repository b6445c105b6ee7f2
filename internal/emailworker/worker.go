// Package emailworker consumes OTP delivery requests and sends them by mail.
// Delivery is at-least-once: a failed send leaves the message pending and it
// is retried, so a user may occasionally receive the same code twice. That is
// harmless, the code stays valid until consumed or replaced.
package emailworker

import (
	"context"

	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/messaging"
)

type Worker struct {
	consumer messaging.Consumer
	mailer   Mailer
	logger   logging.Logger
}

func NewWorker(consumer messaging.Consumer, mailer Mailer, logger logging.Logger) *Worker {
	return &Worker{consumer: consumer, mailer: mailer, logger: logger}
}

// Run consumes until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info(ctx, "email worker started")
	return w.consumer.Consume(ctx, w.handle)
}

// handle processes one delivery request. The returned error is the signal to
// the messaging layer: nil acknowledges, non-nil leaves the message pending
// for redelivery. A malformed type is the one case that is acknowledged
// anyway, since retrying it can never succeed.
func (w *Worker) handle(ctx context.Context, msg messaging.OtpDelivery) error {
	subject, body, err := renderOtpEmail(msg.Type, msg.Otp)
	if err != nil {
		w.logger.Error(ctx, "dropping malformed delivery request", "id", msg.ID, "error", err)
		return nil
	}

	if err := w.mailer.Send(ctx, msg.Email, subject, body); err != nil {
		w.logger.Warn(ctx, "send failed, leaving message for retry", "id", msg.ID, "email", msg.Email, "error", err)
		return err
	}

	w.logger.Info(ctx, "otp email sent", "id", msg.ID, "email", msg.Email, "type", string(msg.Type))
	return nil
}
