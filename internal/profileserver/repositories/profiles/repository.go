// Package profiles persists user profiles.
package profiles

import (
	"context"

	"github.com/2003dinijay/ChatStack/internal/profileserver/models"
)

type Repository interface {
	// Get returns the profile of a user, or common.ErrNotFound.
	Get(ctx context.Context, userID int64) (*models.Profile, error)
	// Create inserts an empty profile for the user.
	Create(ctx context.Context, profile *models.Profile) error
	// Update applies the non-nil fields of upd and returns the result.
	Update(ctx context.Context, userID int64, upd *models.Update) (*models.Profile, error)
}
