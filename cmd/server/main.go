package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"taskboard/internal/auth"
	"taskboard/internal/authz"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository/postgres"
	"taskboard/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	userRepo := postgres.NewUserRepository(pool, logger)
	columnRepo := postgres.NewColumnRepository(pool, logger)
	cardRepo := postgres.NewCardRepository(pool, logger)
	commentRepo := postgres.NewCommentRepository(pool, logger)

	// Token service signs with the process-wide secret; the secret is
	// validated at config load and never changes afterwards.
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))

	// Create services
	authService := service.NewAuthService(userRepo, tokenService, logger)
	userService := service.NewUserService(userRepo, logger)
	columnService := service.NewColumnService(columnRepo, cardRepo, logger)
	cardService := service.NewCardService(cardRepo, commentRepo, logger)
	commentService := service.NewCommentService(commentRepo, logger)

	// Ownership resolver and per-route guard
	resolver := authz.NewResolver(columnRepo, cardRepo, commentRepo, logger)
	guard := handler.NewGuard(resolver)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, columnService, logger)
	columnHandler := handler.NewColumnHandler(columnService, logger)
	cardHandler := handler.NewCardHandler(cardService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Auth routes (public)
	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// User routes
	mux.HandleFunc("GET /users/{id}", userHandler.Get)
	mux.HandleFunc("PATCH /users/{id}", guard.Own(
		authz.Binding{Type: authz.ResourceSelf, IDParam: "id"},
		userHandler.Update,
	))
	mux.HandleFunc("GET /users/{userId}/columns", userHandler.ListColumns)
	mux.HandleFunc("GET /users/{userId}/columns/{columnId}", userHandler.GetColumn)
	mux.HandleFunc("PATCH /users/{userId}/columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId", SecondaryParam: "userId"},
		columnHandler.Update,
	))
	mux.HandleFunc("DELETE /users/{userId}/columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId", SecondaryParam: "userId"},
		columnHandler.Delete,
	))

	// Column routes
	mux.HandleFunc("POST /columns", columnHandler.Create)
	mux.HandleFunc("GET /columns", columnHandler.List)
	mux.HandleFunc("GET /columns/{columnId}", columnHandler.Get)
	mux.HandleFunc("GET /columns/{columnId}/cards", columnHandler.ListCards)
	mux.HandleFunc("PATCH /columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId"},
		columnHandler.Update,
	))
	mux.HandleFunc("DELETE /columns/{columnId}", guard.Own(
		authz.Binding{Type: authz.ResourceColumn, IDParam: "columnId"},
		columnHandler.Delete,
	))

	// Card routes, flat and nested under their column
	mux.HandleFunc("POST /cards", cardHandler.Create)
	mux.HandleFunc("GET /cards", cardHandler.List)
	mux.HandleFunc("GET /cards/{cardId}/comments", cardHandler.ListComments)
	cardUpdate := guard.Own(authz.Binding{Type: authz.ResourceCard, IDParam: "cardId"}, cardHandler.Update)
	cardDelete := guard.Own(authz.Binding{Type: authz.ResourceCard, IDParam: "cardId"}, cardHandler.Delete)
	mux.HandleFunc("PATCH /cards/{cardId}", cardUpdate)
	mux.HandleFunc("DELETE /cards/{cardId}", cardDelete)
	mux.HandleFunc("PATCH /columns/{columnId}/cards/{cardId}", cardUpdate)
	mux.HandleFunc("DELETE /columns/{columnId}/cards/{cardId}", cardDelete)

	// Comment routes
	mux.HandleFunc("POST /comments", commentHandler.Create)
	mux.HandleFunc("GET /comments", commentHandler.List)
	mux.HandleFunc("GET /comments/{commentId}", commentHandler.Get)
	mux.HandleFunc("DELETE /comments/{commentId}", guard.Own(
		authz.Binding{Type: authz.ResourceComment, IDParam: "commentId"},
		commentHandler.Delete,
	))

	// Build middleware chain; applied in reverse order (they wrap each
	// other): CORS → RequestID → Recovery → Auth → Routes
	var h http.Handler = mux
	h = middleware.Authenticate(tokenService, userRepo, logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
