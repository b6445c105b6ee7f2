// Package services contains the business logic of the profile service.
package services

import (
	"context"
	"errors"

	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/identityclient"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/profileserver/models"
	"github.com/2003dinijay/ChatStack/internal/profileserver/repositories/profiles"
)

// IdentityResolver is the slice of the identity client the service needs.
type IdentityResolver interface {
	Resolve(ctx context.Context, id int64) *identityclient.UserSummary
}

// View is a profile joined with its identity. Identity is nil when the
// authority could not resolve the user; the profile half is still served.
type View struct {
	Profile  *models.Profile
	Identity *identityclient.UserSummary
}

type ProfileService struct {
	profiles profiles.Repository
	identity IdentityResolver
	logger   logging.Logger
}

func NewProfileService(repo profiles.Repository, identity IdentityResolver, logger logging.Logger) *ProfileService {
	return &ProfileService{profiles: repo, identity: identity, logger: logger}
}

// Get returns the profile of a user, creating an empty one on first read so
// that every authenticated user always has a profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*View, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		profile = &models.Profile{UserID: userID}
		if err := s.profiles.Create(ctx, profile); err != nil && !errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		s.logger.Info(ctx, "profile created", "user_id", userID)
		// A conflict means a concurrent first read created it; re-read.
		if profile, err = s.profiles.Get(ctx, userID); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &View{Profile: profile, Identity: s.identity.Resolve(ctx, userID)}, nil
}

// Update applies the whitelisted fields and returns the fresh view.
func (s *ProfileService) Update(ctx context.Context, userID int64, upd *models.Update) (*View, error) {
	// First write before first read still works: make sure the row exists.
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.Update(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	return &View{Profile: profile, Identity: s.identity.Resolve(ctx, userID)}, nil
}
