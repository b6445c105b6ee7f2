package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2003dinijay/ChatStack/internal/chatserver/models"
	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/enrich"
	"github.com/2003dinijay/ChatStack/internal/identityclient"
	"github.com/2003dinijay/ChatStack/internal/logging"
	"github.com/2003dinijay/ChatStack/internal/token"
)

type stubPosts struct {
	feed      []enrich.Entity[*models.Post]
	updateErr error
	deleteErr error
}

func (s *stubPosts) Create(_ context.Context, authorID int64, title, content string, imageKey *string) (*models.Post, error) {
	return &models.Post{ID: 1, Title: title, Content: content, ImageKey: imageKey, AuthorID: authorID}, nil
}

func (s *stubPosts) Feed(context.Context) ([]enrich.Entity[*models.Post], error) {
	return s.feed, nil
}

func (s *stubPosts) Get(context.Context, int64) (*enrich.Entity[*models.Post], error) {
	if len(s.feed) == 0 {
		return nil, common.ErrNotFound
	}
	return &s.feed[0], nil
}

func (s *stubPosts) Update(_ context.Context, _, id int64, title, content string, imageKey *string) (*models.Post, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Post{ID: id, Title: title, Content: content, ImageKey: imageKey}, nil
}

func (s *stubPosts) Delete(context.Context, int64, int64) error { return s.deleteErr }

type stubComments struct {
	list      []enrich.Entity[*models.Comment]
	createErr error
}

func (s *stubComments) Create(_ context.Context, authorID, postID int64, content string) (*models.Comment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Comment{ID: 5, PostID: postID, Content: content, AuthorID: authorID}, nil
}

func (s *stubComments) ListByPost(context.Context, int64) ([]enrich.Entity[*models.Comment], error) {
	return s.list, nil
}

func (s *stubComments) Get(context.Context, int64) (*enrich.Entity[*models.Comment], error) {
	if len(s.list) == 0 {
		return nil, common.ErrNotFound
	}
	return &s.list[0], nil
}

func (s *stubComments) Update(_ context.Context, _, id int64, content string) (*models.Comment, error) {
	return &models.Comment{ID: id, Content: content}, nil
}

func (s *stubComments) Delete(context.Context, int64, int64) error { return nil }

type stubMedia struct{}

func (stubMedia) GetUploadURL(context.Context) (string, string, error) {
	return "posts/key", "https://s3.example.com/put", nil
}

func (stubMedia) GetDownloadURL(_ context.Context, key string) (string, error) {
	return "https://s3.example.com/get/" + key, nil
}

const testSecret = "testsecret"

func newTestServer(posts Posts, comments Comments) http.Handler {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(posts, comments, stubMedia{}, logger, []byte(testSecret)).Router()
}

func bearer(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := token.Issue(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doReq(h http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestFeedIsPublic(t *testing.T) {
	alice := &identityclient.UserSummary{ID: 7, Username: "alice"}
	h := newTestServer(&stubPosts{feed: []enrich.Entity[*models.Post]{
		{Item: &models.Post{ID: 2, Title: "second", AuthorID: 7}, Author: alice},
		{Item: &models.Post{ID: 1, Title: "first", AuthorID: 8}, Author: nil},
	}}, &stubComments{})

	w := doReq(h, http.MethodGet, "/posts", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []postResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.NotNil(t, resp[0].Author)
	assert.Equal(t, "alice", resp[0].Author.Username)
	assert.Nil(t, resp[1].Author, "unresolved author renders as null")
}

func TestCreatePostRequiresToken(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{})

	w := doReq(h, http.MethodPost, "/posts", "", map[string]string{
		"title": "t", "content": "c",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePost(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{})

	w := doReq(h, http.MethodPost, "/posts", bearer(t, 7), map[string]string{
		"title": "hello", "content": "body",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp postResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.AuthorID)
}

func TestCreatePostValidation(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{})

	w := doReq(h, http.MethodPost, "/posts", bearer(t, 7), map[string]string{"title": "no content"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePostForbidden(t *testing.T) {
	h := newTestServer(&stubPosts{updateErr: common.ErrForbidden}, &stubComments{})

	w := doReq(h, http.MethodPut, "/posts/1", bearer(t, 8), map[string]string{
		"title": "t", "content": "c",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateCommentUnknownPost(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{createErr: common.ErrNotFound})

	w := doReq(h, http.MethodPost, "/posts/99/comments", bearer(t, 7), map[string]string{
		"content": "hello",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCommentsIsPublic(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{list: []enrich.Entity[*models.Comment]{
		{Item: &models.Comment{ID: 5, PostID: 1, Content: "hi", AuthorID: 7}},
	}})

	w := doReq(h, http.MethodGet, "/posts/1/comments", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []commentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "hi", resp[0].Content)
}

func TestUploadURL(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{})

	w := doReq(h, http.MethodPost, "/media/uploadUrl", bearer(t, 7), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"posts/key","url":"https://s3.example.com/put"}`, w.Body.String())
}

func TestDownloadURLRequiresKey(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{})

	w := doReq(h, http.MethodGet, "/media/downloadUrl", bearer(t, 7), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBadPathID(t *testing.T) {
	h := newTestServer(&stubPosts{}, &stubComments{})

	w := doReq(h, http.MethodGet, "/posts/abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
