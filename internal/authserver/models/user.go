package models

import "time"

// User is an identity record. OtpCode and OtpExpiresAt are nil when no
// challenge is pending; Enabled flips to true exactly once, when the
// verification code is consumed.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Enabled      bool
	OtpCode      *string
	OtpExpiresAt *time.Time
	CreatedAt    time.Time
}
