package api

import (
	"net/http"

	"github.com/conduitapp/conduit-server/internal/http/response"
	"github.com/conduitapp/conduit-server/internal/service"
)

// userEnvelope wraps account request and response bodies.
type userEnvelope[T any] struct {
	User T `json:"user"`
}

// handleRegister creates a new account.
// POST /api/users
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body userEnvelope[service.RegisterRequest]
	if !s.decodeBody(w, r, &body) {
		return
	}

	resp, err := s.userService.Register(r.Context(), body.User)
	if err != nil {
		s.respondError(w, err, errKeyError)
		return
	}

	response.JSON(w, http.StatusCreated, userEnvelope[*service.UserResponse]{User: resp}, s.logger)
}

// handleLogin authenticates an account. The success body is the bare
// user-response object with no envelope, matching the public contract.
// POST /api/users/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body userEnvelope[service.LoginRequest]
	if !s.decodeBody(w, r, &body) {
		return
	}

	resp, err := s.userService.Login(r.Context(), body.User)
	if err != nil {
		s.respondError(w, err, errKeyError)
		return
	}

	response.JSON(w, http.StatusOK, resp, s.logger)
}

// handleGetCurrentUser returns the viewer's own account.
// GET /api/user
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.userService.GetCurrent(r.Context(), viewerFrom(r.Context()))
	if err != nil {
		s.respondError(w, err, errKeyError)
		return
	}

	response.JSON(w, http.StatusOK, userEnvelope[*service.UserResponse]{User: resp}, s.logger)
}

// handleUpdateUser applies a partial update to the viewer's account.
// PUT /api/user
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var body userEnvelope[service.UpdateUserRequest]
	if !s.decodeBody(w, r, &body) {
		return
	}

	resp, err := s.userService.Update(r.Context(), viewerFrom(r.Context()), body.User)
	if err != nil {
		s.respondError(w, err, errKeyError)
		return
	}

	response.JSON(w, http.StatusOK, userEnvelope[*service.UserResponse]{User: resp}, s.logger)
}
