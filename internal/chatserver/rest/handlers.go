package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/2003dinijay/ChatStack/internal/common"
	"github.com/2003dinijay/ChatStack/internal/httpx"
	"github.com/2003dinijay/ChatStack/internal/token"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, common.ErrValidation
	}
	return id, nil
}

func callerID(r *http.Request) (int64, error) {
	id, ok := token.UserID(r.Context())
	if !ok {
		return 0, common.ErrUnauthorized
	}
	return id, nil
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.posts.Feed(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPostResponses(feed))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	entity, err := s.posts.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(entity.Item, entity.Author))
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req postRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	post, err := s.posts.Create(r.Context(), caller, req.Title, req.Content, req.ImageKey)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	s.logger.Info(r.Context(), "post created", "id", post.ID, "author", caller)
	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post, nil))
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req postRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	post, err := s.posts.Update(r.Context(), caller, id, req.Title, req.Content, req.ImageKey)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post, nil))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := s.posts.Delete(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "post deleted"})
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	list, err := s.comments.ListByPost(r.Context(), postID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCommentResponses(list))
}

func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	entity, err := s.comments.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCommentResponse(entity.Item, entity.Author))
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req commentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	comment, err := s.comments.Create(r.Context(), caller, postID, req.Content)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCommentResponse(comment, nil))
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	var req commentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}

	comment, err := s.comments.Update(r.Context(), caller, id, req.Content)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCommentResponse(comment, nil))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	if err := s.comments.Delete(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "comment deleted"})
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.media.GetUploadURL(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}

func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		httpx.WriteError(w, common.ErrValidation)
		return
	}

	url, err := s.media.GetDownloadURL(r.Context(), key)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, downloadURLResponse{URL: url})
}
