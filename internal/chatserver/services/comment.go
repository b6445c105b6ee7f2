package services

import (
	"context"
	"fmt"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
	"github.com/2003dinijay/ChatStack/internal/chatserver/repositories/comments"
	"github.com/2003dinijay/ChatStack/internal/chatserver/repositories/posts"
	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/enrich"
	"github.com/2003dinijay/ChatStack/internal/logging"
)

type CommentService struct {
	comments comments.Repository
	posts    posts.Repository
	identity IdentityResolver
	logger   logging.Logger
}

func NewCommentService(repo comments.Repository, postRepo posts.Repository,
	identity IdentityResolver, logger logging.Logger) *CommentService {
	return &CommentService{comments: repo, posts: postRepo, identity: identity, logger: logger}
}

// Create adds a comment to an existing post; a missing post is ErrNotFound.
func (s *CommentService) Create(ctx context.Context, authorID, postID int64, content string) (*models.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.comments.Create(ctx, &models.Comment{
		PostID:   postID,
		Content:  content,
		AuthorID: authorID,
	})
}

// ListByPost returns the comments of a post oldest first, authors merged in
// from a single deduplicated batch lookup.
func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]enrich.Entity[*models.Comment], error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	list, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorID := func(c *models.Comment) int64 { return c.AuthorID }
	authors := s.identity.ResolveMany(ctx, enrich.AuthorIDs(list, authorID))

	return enrich.Merge(list, authorID, authors), nil
}

func (s *CommentService) Get(ctx context.Context, id int64) (*enrich.Entity[*models.Comment], error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &enrich.Entity[*models.Comment]{Item: comment, Author: s.identity.Resolve(ctx, comment.AuthorID)}, nil
}

func (s *CommentService) Update(ctx context.Context, callerID, id int64, content string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, fmt.Errorf("only the author may update a comment: %w", common.ErrForbidden)
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, callerID, id int64) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != callerID {
		return fmt.Errorf("only the author may delete a comment: %w", common.ErrForbidden)
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "comment deleted", "id", id, "author", callerID)
	return nil
}
