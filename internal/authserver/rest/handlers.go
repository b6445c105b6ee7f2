package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/httpx"
	"github.com/2003dinijay/ChatStack/internal/identityclient"
	"github.com/2003dinijay/ChatStack/internal/token"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "id", user.ID, "username", user.Username)
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	tokenString, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token:    tokenString,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := s.auth.Verify(r.Context(), req.Email, req.Code); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "account verified"})
}

func (s *Server) handleResendOtp(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := s.auth.ResendOtp(r.Context(), req.Email); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "verification code sent"})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := s.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "password reset code sent"})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := s.auth.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "password updated"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := token.UserID(r.Context())
	if !ok {
		httpx.WriteError(w, common.ErrUnauthorized)
		return
	}

	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, common.ErrValidation)
		return
	}

	user, err := s.auth.GetUser(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identityclient.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Enabled:  user.Enabled,
	})
}

// handleBatch resolves a set of user ids to summaries. Unknown ids are
// silently dropped from the result rather than failing the whole batch.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}

	result, err := s.auth.GetUsers(r.Context(), req.IDs)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	summaries := make([]identityclient.UserSummary, 0, len(result))
	for _, u := range result {
		summaries = append(summaries, identityclient.UserSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Enabled:  u.Enabled,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleUsernameExists(w http.ResponseWriter, r *http.Request) {
	exists, err := s.auth.UsernameExists(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func (s *Server) handleEmailExists(w http.ResponseWriter, r *http.Request) {
	exists, err := s.auth.EmailExists(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, existsResponse{Exists: exists})
}
