package movie

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
	"github.com/natkip/CSC3916-Assignment3/internal/service"
)

// Handler serves the movie CRUD endpoints
type Handler struct {
	movies *service.MovieService
}

// NewHandler creates a movie handler
func NewHandler(movies *service.MovieService) *Handler {
	return &Handler{movies: movies}
}

// List returns all movies
func (h *Handler) List(c *gin.Context) {
	movies, err := h.movies.List()
	if err != nil {
		zap.L().Error("failed to list movies", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies})
}

// Create inserts a new movie
func (h *Handler) Create(c *gin.Context) {
	var req model.MovieCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	created, err := h.movies.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		zap.L().Error("failed to create movie", zap.String("title", req.Title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"movie": created})
}

// Get returns a single movie by title
func (h *Handler) Get(c *gin.Context) {
	title := c.Param("title")

	movie, err := h.movies.Get(title)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Movie not found"})
			return
		}
		zap.L().Error("failed to get movie", zap.String("title", title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movie": movie})
}

// Update applies a partial update to a movie by title
func (h *Handler) Update(c *gin.Context) {
	title := c.Param("title")

	var req model.MovieUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	updated, err := h.movies.Update(title, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPayload):
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Movie not found"})
		default:
			zap.L().Error("failed to update movie", zap.String("title", title), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"movie": updated})
}

// Delete removes a movie by title. Deleting an unknown title answers
// 200 with deleted=false so the operation is safe to retry.
func (h *Handler) Delete(c *gin.Context) {
	title := c.Param("title")

	deleted, err := h.movies.Delete(title)
	if err != nil {
		zap.L().Error("failed to delete movie", zap.String("title", title), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
