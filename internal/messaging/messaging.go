// Package messaging models the asynchronous channel between the identity
// authority and the email worker as an abstract Publisher/Consumer pair.
//
// Delivery contract: at-least-once. A message is acknowledged only after the
// handler returns nil; a handler error leaves it pending for redelivery.
// Handlers must therefore be safe to invoke more than once for the same
// logical request, and must not rely on ordering across messages.
package messaging

import "context"

// DeliveryType selects the template used by the email worker.
type DeliveryType string

const (
	TypeVerify DeliveryType = "VERIFY"
	TypeReset  DeliveryType = "RESET"
)

// OtpDelivery is the single message shape carried by the channel.
type OtpDelivery struct {
	ID    string       `json:"id"`
	Type  DeliveryType `json:"type"`
	Email string       `json:"email"`
	Otp   string       `json:"otp"`
}

// Publisher enqueues OTP delivery requests.
type Publisher interface {
	Publish(ctx context.Context, msg OtpDelivery) error
}

// Handler processes one delivery request. Returning an error triggers
// redelivery under the at-least-once contract.
type Handler func(ctx context.Context, msg OtpDelivery) error

// Consumer delivers messages to a handler until the context is cancelled.
type Consumer interface {
	Consume(ctx context.Context, h Handler) error
}
