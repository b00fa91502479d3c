package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Umar7799/user-managment/internal/api"
	"github.com/Umar7799/user-managment/internal/auth"
	"github.com/Umar7799/user-managment/internal/config"
	"github.com/Umar7799/user-managment/internal/logger"
	"github.com/Umar7799/user-managment/internal/repository/postgres"
	"github.com/Umar7799/user-managment/internal/service"
	"github.com/Umar7799/user-managment/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("unknown")
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.Environment)

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize token service
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize WebSocket hub
	hub := websocket.NewHub(repos.User, log)
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, tokens, hub, log)

	// Initialize router
	router := api.NewRouter(services, hub, repos, tokens, cfg, log)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	hub.Stop()
	log.Info().Msg("server stopped")
}
