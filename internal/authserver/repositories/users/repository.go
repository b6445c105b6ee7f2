// Package users persists identity records.
package users

import (
	"context"
	"time"

	"github.com/2003dinijay/ChatStack/internal/authserver/models"
)

// Repository is the storage contract of the identity authority. The
// conditional operations (ConsumeOtp, ResetPassword) are the concurrency
// barrier: each performs a single guarded UPDATE so that at most one caller
// can succeed for a given code.
type Repository interface {
	// Create inserts a new user and returns it with the assigned id.
	// A username or email collision yields common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByIDs returns the users whose ids are present; unknown ids are
	// silently skipped and order is not guaranteed.
	GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// SetOtp stores a fresh challenge for the user, replacing any pending
	// one. Returns common.ErrNotFound when no such user exists.
	SetOtp(ctx context.Context, email, code string, expiresAt time.Time) error

	// ConsumeOtp atomically enables the account and clears the challenge,
	// but only when the stored code matches and has not expired. It reports
	// whether a row was updated; a second call with the same code finds the
	// challenge already cleared and reports false.
	ConsumeOtp(ctx context.Context, email, code string, now time.Time) (bool, error)

	// ResetPassword atomically replaces the password hash and clears the
	// challenge under the same guard as ConsumeOtp.
	ResetPassword(ctx context.Context, email, code string, now time.Time, passwordHash string) (bool, error)
}
