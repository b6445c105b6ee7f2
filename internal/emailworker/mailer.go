package emailworker

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/2003dinijay/ChatStack/internal/emailworker/config"
)

// Mailer sends one rendered message.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers through a plain SMTP endpoint.
type SMTPMailer struct {
	config *config.Config
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.config.From); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{gomail.WithPort(m.config.SMTPPort)}
	if m.config.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.config.SMTPUsername),
			gomail.WithPassword(m.config.SMTPPassword))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	client, err := gomail.NewClient(m.config.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client error: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}

	return nil
}
