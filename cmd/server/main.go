package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/ideaprism/mafia-growth-academy/internal/config"
	"github.com/ideaprism/mafia-growth-academy/internal/database"
	"github.com/ideaprism/mafia-growth-academy/internal/handlers"
	"github.com/ideaprism/mafia-growth-academy/internal/logging"
	"github.com/ideaprism/mafia-growth-academy/internal/middleware"
	"github.com/ideaprism/mafia-growth-academy/internal/services"
	"github.com/ideaprism/mafia-growth-academy/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Optional .env for local development; absence is not an error.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Debug {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
		logger.Debug("Debug logging enabled", map[string]interface{}{
			"env": cfg.Server.Environment,
		})
	}

	logger.Info("Starting challenge tracker server...")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.Connect(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize the record store and services
	recordStore := store.New(store.NewRedisKV(redisDB.Client), cfg.Storage.KeyPrefix)

	userService := services.NewUserService(recordStore)
	imageService := services.NewImageService()
	challengeService := services.NewChallengeService(recordStore, imageService)
	reactionService := services.NewReactionService(recordStore)
	progressService := services.NewProgressService(recordStore)

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer bootCancel()

	if cfg.Admin.Name != "" && cfg.Admin.Group != "" {
		if _, err := userService.EnsureAdmin(bootCtx, cfg.Admin.Name, cfg.Admin.Group); err != nil {
			logger.Warn("Admin bootstrap failed", map[string]interface{}{"error": err.Error()})
		}
	}
	if cfg.Storage.SeedSampleData {
		if err := services.SeedSampleData(bootCtx, recordStore, time.Now); err != nil {
			logger.Warn("Sample data seeding failed", map[string]interface{}{"error": err.Error()})
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(redisDB)
	authHandler := handlers.NewAuthHandler(userService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	reactionHandler := handlers.NewReactionHandler(reactionService)
	progressHandler := handlers.NewProgressHandler(progressService)
	adminHandler := handlers.NewAdminHandler(userService, progressService)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(userService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Environment == "production")
	requestLogger := middleware.NewRequestLogger(logger)
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	loginRateLimiter := middleware.NewRateLimiter(redisDB.Client, cfg.Server.LoginRateLimit, 1*time.Hour, "ratelimit:login:", func(r *http.Request) string {
		return middleware.GetClientIP(r)
	}, true)

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/login", loginRateLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Category and challenge endpoints
	mux.HandleFunc("GET /api/categories", challengeHandler.GetCategories)
	mux.HandleFunc("POST /api/challenges", challengeHandler.Create)
	mux.HandleFunc("GET /api/challenges", challengeHandler.List)
	mux.HandleFunc("PUT /api/challenges/{id}", challengeHandler.Update)
	mux.HandleFunc("DELETE /api/challenges/{id}", challengeHandler.Delete)

	// Reaction endpoints
	mux.HandleFunc("POST /api/challenges/{id}/react", reactionHandler.Toggle)
	mux.HandleFunc("GET /api/challenges/{id}/reactions", reactionHandler.GetReactions)
	mux.HandleFunc("GET /api/reactions/emojis", reactionHandler.GetAllowedEmojis)

	// Progress and ranking endpoints
	mux.HandleFunc("GET /api/progress/{userId}", progressHandler.UserProgress)
	mux.HandleFunc("GET /api/progress/{userId}/percentage", progressHandler.UserProgressPercentage)
	mux.HandleFunc("GET /api/stats/monthly", progressHandler.MonthlyStats)
	mux.HandleFunc("GET /api/rankings/category/{category}", progressHandler.CategoryRanking)
	mux.HandleFunc("GET /api/rankings/overall", progressHandler.OverallRanking)

	// Admin endpoints
	mux.HandleFunc("GET /api/admin/users", adminHandler.ListUsers)
	mux.HandleFunc("POST /api/admin/users", adminHandler.CreateUser)
	mux.HandleFunc("DELETE /api/admin/users/{id}", adminHandler.DeleteUser)
	mux.HandleFunc("GET /api/admin/stats", adminHandler.Stats)

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = sessionMiddleware.Load(handler)
	handler = corsMiddleware.Handler(handler)
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
