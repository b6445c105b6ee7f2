// Package rest exposes the profile endpoints. Both operate on the caller's
// own profile, identified by the bearer token.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/profileserver/models"
	"github.com/2003dinijay/ChatStack/internal/profileserver/services"
	"github.com/2003dinijay/ChatStack/internal/token"
)

type Profiles interface {
	Get(ctx context.Context, userID int64) (*services.View, error)
	Update(ctx context.Context, userID int64, upd *models.Update) (*services.View, error)
}

type Server struct {
	profiles  Profiles
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(profiles Profiles, logger logging.Logger, jwtSecret []byte) *Server {
	return &Server{profiles: profiles, logger: logger, jwtSecret: jwtSecret}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Group(func(r chi.Router) {
		r.Use(token.Middleware(s.jwtSecret))
		r.Get("/profiles/me", s.handleGet)
		r.Put("/profiles/me", s.handleUpdate)
	})

	return r
}
