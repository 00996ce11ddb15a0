package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/jwt"
	"github.com/natkip/CSC3916-Assignment3/internal/service"
)

// Handler serves the signup/signin endpoints and gates protected routes
type Handler struct {
	auth   *service.AuthService
	tokens *jwt.Manager
}

// NewHandler creates an auth handler
func NewHandler(auth *service.AuthService, tokens *jwt.Manager) *Handler {
	return &Handler{auth: auth, tokens: tokens}
}

// Signup handles user registration
func (h *Handler) Signup(c *gin.Context) {
	var req model.UserSignup
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	user, err := h.auth.Signup(req.Name, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"detail": "Username already exists"})
			return
		}
		zap.L().Error("signup failed", zap.String("username", req.Username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user.Info()})
}

// Signin handles user login
func (h *Handler) Signin(c *gin.Context) {
	var req model.UserSignin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	token, err := h.auth.Signin(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password"})
		case errors.Is(err, service.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "Too many failed signin attempts, try again later"})
		default:
			zap.L().Error("signin failed", zap.String("username", req.Username), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Middleware validates the bearer token on protected routes
func (h *Handler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header missing"})
			c.Abort()
			return
		}

		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
