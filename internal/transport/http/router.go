package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vidora/internal/handler"
	"vidora/internal/httputil"
	authmw "vidora/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	VideoHandler   *handler.VideoHandler
	CommentHandler *handler.CommentHandler
	ChannelHandler *handler.ChannelHandler
	MediaHandler   *handler.MediaHandler
	JWTSecret      string
	UserLoader     authmw.UserLoader
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	r.Get("/videos", cfg.VideoHandler.List)
	r.Get("/videos/search", cfg.VideoHandler.Search)
	r.Get("/videos/{id}", cfg.VideoHandler.GetByID)
	r.Get("/videos/{id}/comments", cfg.CommentHandler.List)
	r.Get("/channels/{id}", cfg.ChannelHandler.GetByID)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.JWTSecret, cfg.UserLoader))

		r.Get("/me", cfg.AuthHandler.Me)

		r.Post("/videos", cfg.VideoHandler.Create)
		r.Patch("/videos/{id}", cfg.VideoHandler.Update)
		r.Delete("/videos/{id}", cfg.VideoHandler.Delete)

		r.Post("/videos/{id}/comments", cfg.CommentHandler.Create)
		r.Put("/videos/{id}/comments/{commentId}", cfg.CommentHandler.Update)
		r.Delete("/videos/{id}/comments/{commentId}", cfg.CommentHandler.Delete)

		r.Post("/channels", cfg.ChannelHandler.Create)
		r.Get("/channels/me", cfg.ChannelHandler.Mine)
		r.Patch("/channels/{id}", cfg.ChannelHandler.Update)
		r.Post("/channels/{id}/subscribe", cfg.ChannelHandler.Subscribe)
		r.Delete("/channels/{id}/subscribe", cfg.ChannelHandler.Unsubscribe)

		// Media endpoints (server-side uploads to R2)
		r.Post("/media/avatar", cfg.MediaHandler.UploadAvatar)
		r.Post("/media/thumbnail", cfg.MediaHandler.UploadThumbnail)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, fmt.Sprintf("No route for %s %s", r.Method, r.URL.Path))
	})

	return r
}

// corsMiddleware allows browser clients on other origins to call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
