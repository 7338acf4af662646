// Package api provides the HTTP API server and handlers for the Conduit application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/conduitapp/conduit-server/internal/auth"
	"github.com/conduitapp/conduit-server/internal/http/response"
	"github.com/conduitapp/conduit-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tokenService   *auth.TokenService
	userService    *service.UserService
	profileService *service.ProfileService
	articleService *service.ArticleService
	commentService *service.CommentService
	tagService     *service.TagService
	allowedOrigins []string
	router         *chi.Mux
	logger         *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	tokenService *auth.TokenService,
	userService *service.UserService,
	profileService *service.ProfileService,
	articleService *service.ArticleService,
	commentService *service.CommentService,
	tagService *service.TagService,
	allowedOrigins []string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		tokenService:   tokenService,
		userService:    userService,
		profileService: profileService,
		articleService: articleService,
		commentService: commentService,
		tagService:     tagService,
		allowedOrigins: allowedOrigins,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleHello)

	s.router.Route("/api", func(r chi.Router) {
		// Accounts.
		r.Post("/users", s.handleRegister)
		r.Post("/users/login", s.handleLogin)
		r.With(s.requireAuth).Get("/user", s.handleGetCurrentUser)
		r.With(s.requireAuth).Put("/user", s.handleUpdateUser)

		// Profiles.
		r.Route("/profiles", func(r chi.Router) {
			r.With(s.optionalAuth).Get("/{username}", s.handleGetProfile)
			r.With(s.requireAuth).Post("/{username}/follow", s.handleFollow)
			r.With(s.requireAuth).Delete("/{username}/follow", s.handleUnfollow)
		})

		// Articles, favorites and comments.
		r.Route("/articles", func(r chi.Router) {
			r.With(s.requireAuth).Get("/feed", s.handleFeed)
			r.With(s.optionalAuth).Get("/", s.handleListArticles)
			r.With(s.requireAuth).Post("/", s.handleCreateArticle)
			r.Get("/{slug}", s.handleGetArticle)
			r.With(s.requireAuth).Put("/{slug}", s.handleUpdateArticle)
			r.With(s.requireAuth).Delete("/{slug}", s.handleDeleteArticle)
			r.With(s.requireAuth).Post("/{slug}/favorite", s.handleFavorite)
			r.With(s.requireAuth).Delete("/{slug}/favorite", s.handleUnfavorite)
			r.With(s.requireAuth).Post("/{slug}/comments", s.handleCreateComment)
			r.With(s.optionalAuth).Get("/{slug}/comments", s.handleListComments)
			r.With(s.requireAuth).Delete("/{slug}/comments/{id}", s.handleDeleteComment)
		})

		// Tags.
		r.Get("/tags", s.handleListTags)
	})

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Endpoint not found", s.logger)
	})
}

// handleHello serves the root greeting.
func (s *Server) handleHello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello World!"))
}
