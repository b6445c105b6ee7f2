// Package rest exposes the identity authority over HTTP: the public account
// lifecycle endpoints and the internal service-to-service user lookup API.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/2003dinijay/ChatStack/internal/authserver/models"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/token"
)

// Auth is the slice of the service layer the handlers need.
type Auth interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Verify(ctx context.Context, email, code string) error
	ResendOtp(ctx context.Context, email string) error
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUsers(ctx context.Context, ids []int64) ([]*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Server struct {
	auth      Auth
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(auth Auth, logger logging.Logger, jwtSecret []byte) *Server {
	return &Server{auth: auth, logger: logger, jwtSecret: jwtSecret}
}

// Router wires the public and internal endpoints. The internal API carries no
// authentication of its own; it is expected to be reachable only from the
// private network.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/verify", s.handleVerify)
	r.Post("/resendOtp", s.handleResendOtp)
	r.Post("/forgotPassword", s.handleForgotPassword)
	r.Post("/resetPassword", s.handleResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(token.Middleware(s.jwtSecret))
		r.Get("/me", s.handleMe)
	})

	r.Route("/internal/users", func(r chi.Router) {
		r.Get("/{id}", s.handleGetUser)
		r.Post("/batch", s.handleBatch)
		r.Get("/exists/username/{username}", s.handleUsernameExists)
		r.Get("/exists/email/{email}", s.handleEmailExists)
	})

	return r
}
