package emailworker

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/2003dinijay/ChatStack/internal/messaging"
)

var otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; border: 1px solid #ddd; padding: 20px; border-radius: 10px;">
  <h2 style="color: #4A90E2;">{{.Subject}}</h2>
  <p>{{.Message}}</p>
  <h1 style="background: #f4f4f4; padding: 10px; display: inline-block; letter-spacing: 5px;">{{.Otp}}</h1>
  <p>This code will expire in {{.Expiry}}.</p>
  <hr style="border: none; border-top: 1px solid #eee;" />
  <small>If you didn't request this, please ignore this email.</small>
</div>
`))

type templateData struct {
	Subject string
	Message string
	Otp     string
	Expiry  string
}

// renderOtpEmail picks subject and copy by delivery type and renders the
// HTML body. The stated expiry matches the validity windows the authority
// applies when issuing each kind of code.
func renderOtpEmail(deliveryType messaging.DeliveryType, otp string) (subject, body string, err error) {
	data := templateData{Otp: otp}

	switch deliveryType {
	case messaging.TypeReset:
		data.Subject = "Password Reset OTP"
		data.Message = "Use the following OTP to reset your password:"
		data.Expiry = "5 minutes"
	case messaging.TypeVerify:
		data.Subject = "Account Verification OTP"
		data.Message = "Welcome! Use the following OTP to verify your account:"
		data.Expiry = "15 minutes"
	default:
		return "", "", fmt.Errorf("unknown delivery type: %q", deliveryType)
	}

	var buf bytes.Buffer
	if err := otpTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("error rendering template: %w", err)
	}

	return data.Subject, buf.String(), nil
}
