package api

import (
	"net/http"

	"github.com/Umar7799/user-managment/internal/api/handlers"
	"github.com/Umar7799/user-managment/internal/api/middleware"
	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/config"
	"github.com/Umar7799/user-managment/internal/repository"
	"github.com/Umar7799/user-managment/internal/service"
	"github.com/Umar7799/user-managment/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, hub *websocket.Hub, repos *repository.Repositories, tokens *auth.TokenService, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	usersHandler := handlers.NewUsersHandler(services.User)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens, log)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Every listing or mutating route runs the full guard:
		// token verification, then a live blocked-status check.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))
			r.Use(middleware.RequireActive(repos.User))

			r.Get("/users", usersHandler.List)
			r.Put("/users/block/{id}", usersHandler.Block)
			r.Put("/users/unblock/{id}", usersHandler.Unblock)
			r.Delete("/users/delete/{id}", usersHandler.Delete)
		})

		// WebSocket endpoint authenticates via query parameter
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
