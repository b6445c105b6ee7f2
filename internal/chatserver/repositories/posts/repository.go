// Package posts persists chat posts.
package posts

import (
	"context"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// List returns posts newest first.
	List(ctx context.Context) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}
