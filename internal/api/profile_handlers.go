package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/conduitapp/conduit-server/internal/http/response"
	"github.com/conduitapp/conduit-server/internal/service"
)

// profileEnvelope wraps profile response bodies.
type profileEnvelope struct {
	Profile *service.ProfileResponse `json:"profile"`
}

// handleGetProfile returns a public profile as seen by the viewer.
// GET /api/profiles/{username}
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := s.profileService.Get(r.Context(), username, viewerFrom(r.Context()))
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, profileEnvelope{Profile: profile}, s.logger)
}

// handleFollow adds the named user to the viewer's following set.
// POST /api/profiles/{username}/follow
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := s.profileService.Follow(r.Context(), viewerFrom(r.Context()), username)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, profileEnvelope{Profile: profile}, s.logger)
}

// handleUnfollow removes the named user from the viewer's following set.
// DELETE /api/profiles/{username}/follow
func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := s.profileService.Unfollow(r.Context(), viewerFrom(r.Context()), username)
	if err != nil {
		s.respondError(w, err, errKeyMessage)
		return
	}

	response.JSON(w, http.StatusOK, profileEnvelope{Profile: profile}, s.logger)
}
