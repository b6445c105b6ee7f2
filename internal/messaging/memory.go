package messaging

import (
	"context"

	"github.com/google/uuid"
)

// Memory is a channel-backed Publisher/Consumer used by tests and local
// single-process runs. It follows the same at-least-once semantics as the
// Redis backend: a handler error re-enqueues the message.
type Memory struct {
	ch chan OtpDelivery
}

func NewMemory(buffer int) *Memory {
	return &Memory{ch: make(chan OtpDelivery, buffer)}
}

func (m *Memory) Publish(ctx context.Context, msg OtpDelivery) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	select {
	case m.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Memory) Consume(ctx context.Context, h Handler) error {
	for {
		select {
		case msg := <-m.ch:
			if err := h(ctx, msg); err != nil {
				// Redeliver, unless shutdown raced the requeue.
				select {
				case m.ch <- msg:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
