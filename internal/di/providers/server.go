package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/conduitapp/conduit-server/internal/api"
	"github.com/conduitapp/conduit-server/internal/auth"
	"github.com/conduitapp/conduit-server/internal/config"
	"github.com/conduitapp/conduit-server/internal/logger"
	"github.com/conduitapp/conduit-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	tokenService := do.MustInvoke[*auth.TokenService](i)
	userService := do.MustInvoke[*service.UserService](i)
	profileService := do.MustInvoke[*service.ProfileService](i)
	articleService := do.MustInvoke[*service.ArticleService](i)
	commentService := do.MustInvoke[*service.CommentService](i)
	tagService := do.MustInvoke[*service.TagService](i)

	handler := api.NewServer(
		tokenService,
		userService,
		profileService,
		articleService,
		commentService,
		tagService,
		cfg.CORS.AllowedOrigins,
		log.Logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
