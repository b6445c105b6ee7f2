// Package comments persists post comments.
package comments

import (
	"context"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListByPost returns the comments of a post, oldest first.
	ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
}
