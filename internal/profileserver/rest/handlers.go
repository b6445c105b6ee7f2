package rest

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/httpx"
	"github.com/2003dinijay/ChatStack/internal/profileserver/models"
	"github.com/2003dinijay/ChatStack/internal/profileserver/services"
	"github.com/2003dinijay/ChatStack/internal/token"
)

// updateRequest holds the whitelisted mutable fields; anything else in the
// body is rejected by the strict decoder.
type updateRequest struct {
	Bio         *string            `json:"bio"`
	AvatarURL   *string            `json:"avatarUrl"`
	Address     *string            `json:"address"`
	SocialLinks *map[string]string `json:"socialLinks"`
}

func (r updateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Bio, validation.Length(0, 1000)),
		validation.Field(&r.AvatarURL, is.URL),
		validation.Field(&r.Address, validation.Length(0, 500)),
	)
}

type profileResponse struct {
	UserID      int64             `json:"userId"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	Bio         string            `json:"bio"`
	AvatarURL   string            `json:"avatarUrl"`
	Address     string            `json:"address"`
	SocialLinks map[string]string `json:"socialLinks"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toProfileResponse(v *services.View) profileResponse {
	resp := profileResponse{
		UserID:      v.Profile.UserID,
		Bio:         v.Profile.Bio,
		AvatarURL:   v.Profile.AvatarURL,
		Address:     v.Profile.Address,
		SocialLinks: v.Profile.SocialLinks,
		CreatedAt:   v.Profile.CreatedAt,
		UpdatedAt:   v.Profile.UpdatedAt,
	}
	if v.Identity != nil {
		resp.Username = v.Identity.Username
		resp.Email = v.Identity.Email
	}
	return resp
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, common.ErrUnauthorized)
		return
	}

	view, err := s.profiles.Get(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(view))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, common.ErrUnauthorized)
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	view, err := s.profiles.Update(r.Context(), userID, &models.Update{
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Address:     req.Address,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfileResponse(view))
}
