package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/conduitapp/conduit-server/internal/domain"
	"github.com/conduitapp/conduit-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyViewer contextKey = "viewer"

// authScheme is the fixed Authorization scheme keyword. The public API uses
// "Token", not the standard "Bearer".
const authScheme = "Token "

// requireAuth validates the access token and attaches the viewer identity.
// A missing or malformed header is 401; a present-but-invalid token is 403.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, authScheme) {
			response.Message(w, http.StatusUnauthorized, "Unauthorized", s.logger)
			return
		}

		claims, err := s.tokenService.VerifyAccessToken(strings.TrimPrefix(authHeader, authScheme))
		if err != nil {
			response.Message(w, http.StatusForbidden, "Forbidden", s.logger)
			return
		}

		viewer := domain.AuthenticatedViewer(claims.User.ID, claims.User.Email)
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
	})
}

// optionalAuth attaches the viewer identity when a token is present. Absence
// means anonymous; a present-but-invalid token is still rejected with 403,
// never downgraded to anonymous.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, authScheme) {
			next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), domain.Anonymous())))
			return
		}

		claims, err := s.tokenService.VerifyAccessToken(strings.TrimPrefix(authHeader, authScheme))
		if err != nil {
			response.Message(w, http.StatusForbidden, "Forbidden", s.logger)
			return
		}

		viewer := domain.AuthenticatedViewer(claims.User.ID, claims.User.Email)
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
	})
}

// withViewer stores the viewer identity in the context.
func withViewer(ctx context.Context, viewer domain.Viewer) context.Context {
	return context.WithValue(ctx, contextKeyViewer, viewer)
}

// viewerFrom extracts the viewer identity from the request context.
// Requests that passed through neither auth middleware are anonymous.
func viewerFrom(ctx context.Context) domain.Viewer {
	if viewer, ok := ctx.Value(contextKeyViewer).(domain.Viewer); ok {
		return viewer
	}
	return domain.Anonymous()
}
