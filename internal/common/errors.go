// Package common defines shared constants and sentinel errors used across
// ChatStack services. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Input errors, recoverable by the caller correcting the request.
	ErrValidation = errors.New("validation error")

	// OTP lifecycle errors. Kept distinct from ErrValidation so that clients
	// can offer "resend" (expired) vs "retype" (mismatch).
	ErrOtpExpired  = errors.New("verification code expired")
	ErrOtpMismatch = errors.New("invalid verification code")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid token")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")
)
