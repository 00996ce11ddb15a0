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
	"go.uber.org/zap"

	"github.com/natkip/CSC3916-Assignment3/internal/api"
	"github.com/natkip/CSC3916-Assignment3/internal/api/auth"
	"github.com/natkip/CSC3916-Assignment3/internal/api/movie"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/config"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/jwt"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/logger"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/redis"
	"github.com/natkip/CSC3916-Assignment3/internal/repository"
	"github.com/natkip/CSC3916-Assignment3/internal/service"
)

func main() {
	// Load configuration; the process refuses to start without the
	// database URL and the signing secret.
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Movie API")

	// Open the database
	db, err := repository.Open(cfg.Database.URL)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis (optional)
	if err := redis.Init(cfg); err != nil {
		zap.L().Warn("Redis initialization failed, signin throttling will be disabled",
			zap.Error(err))
	} else {
		defer redis.Close()
	}

	// Wire repositories, services and handlers once at startup
	users := repository.NewUserRepository(db)
	movies := repository.NewMovieRepository(db)

	tokens := jwt.NewManager(cfg.JWT.SecretKey, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	authService := service.NewAuthService(users, tokens, cfg.Auth.MaxSigninAttempts, cfg.Auth.LockoutMinutes)
	movieService := service.NewMovieService(movies)

	authHandler := auth.NewHandler(authService, tokens)
	movieHandler := movie.NewHandler(movieService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	api.SetupRouter(r, authHandler, movieHandler)

	srv := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zap.L().Info("Listening", zap.String("addr", cfg.ServerAddr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}
