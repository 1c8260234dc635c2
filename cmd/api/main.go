package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tunedeck/backend/internal/config"
	"github.com/tunedeck/backend/internal/handlers"
	"github.com/tunedeck/backend/internal/middleware"
	"github.com/tunedeck/backend/internal/models"
	"github.com/tunedeck/backend/internal/services"
	"github.com/tunedeck/backend/pkg/logger"
	"github.com/tunedeck/backend/pkg/oidc"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize logging
	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogOutputPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	defer logger.Sync()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		logger.L().Fatal("failed to initialize database", zap.Error(err))
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		logger.L().Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize the credential verifier and warm its key cache
	verifier := oidc.NewVerifier(oidc.Config{
		IssuerURL:       cfg.OIDCIssuerURL,
		Audience:        cfg.OIDCAudience,
		JWKSURL:         cfg.OIDCJWKSURL,
		RefreshInterval: cfg.OIDCRefreshInterval,
	})
	if err := verifier.Refresh(context.Background()); err != nil {
		logger.L().Warn("initial JWKS fetch failed, keys will be fetched lazily", zap.Error(err))
	}

	// Initialize services
	userService := services.NewUserService(db)
	videoService := services.NewVideoService(cfg)
	musicService := services.NewMusicService(db)
	playlistService := services.NewPlaylistService(db, musicService)
	favoriteService := services.NewFavoriteService(db)
	shareService := services.NewShareService(cfg)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(videoService)
	musicHandler := handlers.NewMusicHandler(musicService)
	playlistHandler := handlers.NewPlaylistHandler(playlistService, shareService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	userHandler := handlers.NewUserHandler(userService)

	handlers.RegisterRoutes(router,
		middleware.Auth(verifier, userService),
		searchHandler, musicHandler, playlistHandler, favoriteHandler, userHandler,
	)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.L().Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.L().Info("server exited")
}
