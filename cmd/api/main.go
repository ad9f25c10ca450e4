package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/lingomate/lingomate-go/internal/config"
	"github.com/lingomate/lingomate-go/internal/handler"
	"github.com/lingomate/lingomate-go/internal/middleware"
	"github.com/lingomate/lingomate-go/internal/repository"
	"github.com/lingomate/lingomate-go/internal/service"
	"github.com/lingomate/lingomate-go/internal/stream"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx := context.Background()
	client, err := repository.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("mongodb disconnect failed", "error", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		slog.Error("creating indexes failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)

	streamClient, err := stream.NewClient(cfg.StreamAPIKey, cfg.StreamAPISecret)
	if err != nil {
		slog.Error("stream client init failed", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(userRepo, streamClient, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, requestRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.JWTExpiry, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(streamClient)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/auth/signup", authHandler.HandleSignup)
			r.Post("/auth/login", authHandler.HandleLogin)
		})

		r.Post("/auth/logout", authHandler.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(cfg.JWTSecret))

			r.Post("/auth/onboarding", authHandler.HandleOnboarding)
			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/users", userHandler.HandleRecommended)
			r.Get("/users/friends", userHandler.HandleFriends)
			r.Post("/users/friend-request/{id}", userHandler.HandleSendFriendRequest)
			r.Put("/users/friend-request/{id}/accept", userHandler.HandleAcceptFriendRequest)
			r.Get("/users/friend-requests", userHandler.HandleFriendRequests)
			r.Get("/users/outgoing-friend-requests", userHandler.HandleOutgoingRequests)

			r.Get("/chat/token", chatHandler.HandleToken)
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
