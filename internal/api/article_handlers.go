package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/conduitapp/conduit-server/internal/http/response"
	"github.com/conduitapp/conduit-server/internal/service"
)

// articleEnvelope wraps article request and response bodies.
type articleEnvelope[T any] struct {
	Article T `json:"article"`
}

// handleListArticles returns a filtered page of articles.
// GET /api/articles?limit=&offset=&tag=&author=&favorited=
func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := service.ListArticlesRequest{
		Tag:       query.Get("tag"),
		Author:    query.Get("author"),
		Favorited: query.Get("favorited"),
		Limit:     queryInt(query.Get("limit")),
		Offset:    queryInt(query.Get("offset")),
	}

	resp, err := s.articleService.List(r.Context(), viewerFrom(r.Context()), req)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, resp, s.logger)
}

// handleFeed returns a page of articles from authors the viewer follows.
// GET /api/articles/feed?limit=&offset=
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	resp, err := s.articleService.Feed(r.Context(), viewerFrom(r.Context()),
		queryInt(query.Get("limit")), queryInt(query.Get("offset")))
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, resp, s.logger)
}

// handleCreateArticle publishes a new article.
// POST /api/articles
func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var body articleEnvelope[service.CreateArticleRequest]
	if !s.decodeBody(w, r, &body) {
		return
	}

	resp, err := s.articleService.Create(r.Context(), viewerFrom(r.Context()), body.Article)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusCreated, articleEnvelope[*service.ArticleResponse]{Article: resp}, s.logger)
}

// handleGetArticle returns one article by slug.
// GET /api/articles/{slug}
func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	resp, err := s.articleService.Get(r.Context(), slug, viewerFrom(r.Context()))
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, articleEnvelope[*service.ArticleResponse]{Article: resp}, s.logger)
}

// handleUpdateArticle applies a partial update to an article.
// PUT /api/articles/{slug}
func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var body articleEnvelope[service.UpdateArticleRequest]
	if !s.decodeBody(w, r, &body) {
		return
	}

	resp, err := s.articleService.Update(r.Context(), viewerFrom(r.Context()), slug, body.Article)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, articleEnvelope[*service.ArticleResponse]{Article: resp}, s.logger)
}

// handleDeleteArticle removes an article and its comments.
// DELETE /api/articles/{slug}
func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := s.articleService.Delete(r.Context(), viewerFrom(r.Context()), slug); err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.Message(w, http.StatusOK, "Article successfully deleted!!!", s.logger)
}

// handleFavorite marks an article as a favorite of the viewer.
// POST /api/articles/{slug}/favorite
func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	resp, err := s.articleService.Favorite(r.Context(), viewerFrom(r.Context()), slug)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, articleEnvelope[*service.ArticleResponse]{Article: resp}, s.logger)
}

// handleUnfavorite removes an article from the viewer's favorites.
// DELETE /api/articles/{slug}/favorite
func (s *Server) handleUnfavorite(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	resp, err := s.articleService.Unfavorite(r.Context(), viewerFrom(r.Context()), slug)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, articleEnvelope[*service.ArticleResponse]{Article: resp}, s.logger)
}

// queryInt parses a query parameter as a non-negative int. Absent or
// malformed values come back as zero, which services treat as defaults.
func queryInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
