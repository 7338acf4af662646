package api

import (
	"net/http"

	"github.com/conduitapp/conduit-server/internal/http/response"
)

// tagsEnvelope wraps the tag listing body.
type tagsEnvelope struct {
	Tags []string `json:"tags"`
}

// handleListTags returns the distinct tags across all articles.
// GET /api/tags
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tagService.List(r.Context())
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, tagsEnvelope{Tags: tags}, s.logger)
}
