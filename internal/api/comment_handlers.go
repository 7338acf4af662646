package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conduitapp/conduit-server/internal/http/response"
	"github.com/conduitapp/conduit-server/internal/service"
)

// commentEnvelope wraps single-comment request and response bodies.
type commentEnvelope[T any] struct {
	Comment T `json:"comment"`
}

// commentsEnvelope wraps comment listing bodies.
type commentsEnvelope struct {
	Comments []service.CommentResponse `json:"comments"`
}

// handleCreateComment adds a comment to an article.
// POST /api/articles/{slug}/comments
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var body commentEnvelope[service.CreateCommentRequest]
	if !s.decodeBody(w, r, &body) {
		return
	}

	resp, err := s.commentService.Create(r.Context(), viewerFrom(r.Context()), slug, body.Comment)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, commentEnvelope[*service.CommentResponse]{Comment: resp}, s.logger)
}

// handleListComments returns an article's comments in display order.
// GET /api/articles/{slug}/comments
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	comments, err := s.commentService.ListForArticle(r.Context(), viewerFrom(r.Context()), slug)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, commentsEnvelope{Comments: comments}, s.logger)
}

// handleDeleteComment removes a comment from an article.
// DELETE /api/articles/{slug}/comments/{id}
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	commentID := chi.URLParam(r, "id")

	if err := s.commentService.Delete(r.Context(), viewerFrom(r.Context()), slug, commentID); err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.Message(w, http.StatusOK, "Comment successfully deleted!!!", s.logger)
}
