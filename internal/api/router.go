package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/natkip/CSC3916-Assignment3/internal/api/auth"
	"github.com/natkip/CSC3916-Assignment3/internal/api/movie"
)

var limiter = rate.NewLimiter(50, 100)

// RateLimitMiddleware rejects requests above the global rate limit
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetupRouter configures all routes
func SetupRouter(r *gin.Engine, authHandler *auth.Handler, movieHandler *movie.Handler) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
	}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(RateLimitMiddleware())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Movie API is running",
		})
	})

	// Auth routes (no authentication required)
	r.POST("/signup", authHandler.Signup)
	r.POST("/signin", authHandler.Signin)

	// Movie routes, all behind the token check
	movies := r.Group("/movies")
	movies.Use(authHandler.Middleware())
	{
		movies.GET("", movieHandler.List)
		movies.POST("", movieHandler.Create)
		movies.GET("/:title", movieHandler.Get)
		movies.PUT("/:title", movieHandler.Update)
		movies.DELETE("/:title", movieHandler.Delete)
	}
}
