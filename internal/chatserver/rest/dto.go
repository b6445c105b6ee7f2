package rest

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
	"github.com/2003dinijay/ChatStack/internal/enrich"
	"github.com/2003dinijay/ChatStack/internal/identityclient"
)

type postRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageKey *string `json:"imageKey"`
}

func (r postRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required, validation.Length(1, 10000)),
	)
}

type commentRequest struct {
	Content string `json:"content"`
}

func (r commentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 5000)),
	)
}

// authorView is the enriched author; it renders as null when the identity
// authority could not resolve the id.
type authorView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func toAuthorView(u *identityclient.UserSummary) *authorView {
	if u == nil {
		return nil
	}
	return &authorView{ID: u.ID, Username: u.Username}
}

type postResponse struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	ImageKey  *string     `json:"imageKey"`
	AuthorID  int64       `json:"authorId"`
	Author    *authorView `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func toPostResponse(p *models.Post, author *identityclient.UserSummary) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageKey:  p.ImageKey,
		AuthorID:  p.AuthorID,
		Author:    toAuthorView(author),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostResponses(entities []enrich.Entity[*models.Post]) []postResponse {
	result := make([]postResponse, 0, len(entities))
	for _, e := range entities {
		result = append(result, toPostResponse(e.Item, e.Author))
	}
	return result
}

type commentResponse struct {
	ID        int64       `json:"id"`
	PostID    int64       `json:"postId"`
	Content   string      `json:"content"`
	AuthorID  int64       `json:"authorId"`
	Author    *authorView `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func toCommentResponse(c *models.Comment, author *identityclient.UserSummary) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		Author:    toAuthorView(author),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentResponses(entities []enrich.Entity[*models.Comment]) []commentResponse {
	result := make([]commentResponse, 0, len(entities))
	for _, e := range entities {
		result = append(result, toCommentResponse(e.Item, e.Author))
	}
	return result
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type downloadURLResponse struct {
	URL string `json:"url"`
}
