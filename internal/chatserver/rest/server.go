// Package rest exposes posts, comments, and media URLs over HTTP. Reads are
// public; writes require a bearer token verified locally against the shared
// secret, without calling the identity authority.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
	"github.com/2003dinijay/ChatStack/internal/enrich"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/token"
)

type Posts interface {
	Create(ctx context.Context, authorID int64, title, content string, imageKey *string) (*models.Post, error)
	Feed(ctx context.Context) ([]enrich.Entity[*models.Post], error)
	Get(ctx context.Context, id int64) (*enrich.Entity[*models.Post], error)
	Update(ctx context.Context, callerID, id int64, title, content string, imageKey *string) (*models.Post, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type Comments interface {
	Create(ctx context.Context, authorID, postID int64, content string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]enrich.Entity[*models.Comment], error)
	Get(ctx context.Context, id int64) (*enrich.Entity[*models.Comment], error)
	Update(ctx context.Context, callerID, id int64, content string) (*models.Comment, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type Media interface {
	GetUploadURL(ctx context.Context) (string, string, error)
	GetDownloadURL(ctx context.Context, key string) (string, error)
}

type Server struct {
	posts     Posts
	comments  Comments
	media     Media
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(posts Posts, comments Comments, media Media, logger logging.Logger, jwtSecret []byte) *Server {
	return &Server{posts: posts, comments: comments, media: media, logger: logger, jwtSecret: jwtSecret}
}

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

	r.Get("/posts", s.handleFeed)
	r.Get("/posts/{id}", s.handleGetPost)
	r.Get("/posts/{id}/comments", s.handleListComments)
	r.Get("/comments/{id}", s.handleGetComment)

	r.Group(func(r chi.Router) {
		r.Use(token.Middleware(s.jwtSecret))

		r.Post("/posts", s.handleCreatePost)
		r.Put("/posts/{id}", s.handleUpdatePost)
		r.Delete("/posts/{id}", s.handleDeletePost)

		r.Post("/posts/{id}/comments", s.handleCreateComment)
		r.Put("/comments/{id}", s.handleUpdateComment)
		r.Delete("/comments/{id}", s.handleDeleteComment)

		r.Post("/media/uploadUrl", s.handleUploadURL)
		r.Get("/media/downloadUrl", s.handleDownloadURL)
	})

	return r
}
