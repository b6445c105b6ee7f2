// Package services contains the business logic of the chat service. Author
// details are resolved through the identity authority at read time and merged
// in fail-soft: an unreachable authority degrades the feed to anonymous
// authors, it never fails the request.
package services

import (
	"context"
	"fmt"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
	"github.com/2003dinijay/ChatStack/internal/chatserver/repositories/posts"
	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/enrich"
	"github.com/2003dinijay/ChatStack/internal/identityclient"
	"github.com/2003dinijay/ChatStack/internal/logging"
)

// IdentityResolver is the slice of the identity client the services need.
type IdentityResolver interface {
	Resolve(ctx context.Context, id int64) *identityclient.UserSummary
	ResolveMany(ctx context.Context, ids []int64) map[int64]identityclient.UserSummary
}

type PostService struct {
	posts    posts.Repository
	identity IdentityResolver
	logger   logging.Logger
}

func NewPostService(repo posts.Repository, identity IdentityResolver, logger logging.Logger) *PostService {
	return &PostService{posts: repo, identity: identity, logger: logger}
}

func (s *PostService) Create(ctx context.Context, authorID int64, title, content string, imageKey *string) (*models.Post, error) {
	return s.posts.Create(ctx, &models.Post{
		Title:    title,
		Content:  content,
		ImageKey: imageKey,
		AuthorID: authorID,
	})
}

// Feed returns all posts newest first with authors merged in. Author ids are
// deduplicated into a single batch lookup regardless of feed length.
func (s *PostService) Feed(ctx context.Context) ([]enrich.Entity[*models.Post], error) {
	list, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	authorID := func(p *models.Post) int64 { return p.AuthorID }
	authors := s.identity.ResolveMany(ctx, enrich.AuthorIDs(list, authorID))

	return enrich.Merge(list, authorID, authors), nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*enrich.Entity[*models.Post], error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &enrich.Entity[*models.Post]{Item: post, Author: s.identity.Resolve(ctx, post.AuthorID)}, nil
}

// Update replaces the mutable fields of a post. Only the author may update;
// anyone else gets ErrForbidden even when the post exists.
func (s *PostService) Update(ctx context.Context, callerID, id int64, title, content string, imageKey *string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, fmt.Errorf("only the author may update a post: %w", common.ErrForbidden)
	}

	post.Title = title
	post.Content = content
	post.ImageKey = imageKey

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) Delete(ctx context.Context, callerID, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		return fmt.Errorf("only the author may delete a post: %w", common.ErrForbidden)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info(ctx, "post deleted", "id", id, "author", callerID)
	return nil
}
