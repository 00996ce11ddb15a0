package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natkip/CSC3916-Assignment3/internal/api/auth"
	"github.com/natkip/CSC3916-Assignment3/internal/api/movie"
	"github.com/natkip/CSC3916-Assignment3/internal/model"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/jwt"
	"github.com/natkip/CSC3916-Assignment3/internal/service"
)

// stub stores; the routing tests only care about whether a request
// gets past the middleware at all.
type stubUserStore struct{}

func (stubUserStore) Create(user model.User) (model.User, error) {
	user.ID = 1
	return user, nil
}
func (stubUserStore) FindByUsername(string) (*model.User, error) { return nil, nil }
func (stubUserStore) Exists(string) (bool, error)                { return false, nil }

type stubMovieStore struct {
	inserted int
}

func (s *stubMovieStore) FindAll() ([]model.Movie, error)          { return nil, nil }
func (s *stubMovieStore) FindByTitle(string) (*model.Movie, error) { return nil, nil }
func (s *stubMovieStore) DeleteByTitle(string) (bool, error)       { return false, nil }
func (s *stubMovieStore) UpdateByTitle(string, model.MovieUpdate) (*model.Movie, error) {
	return nil, nil
}
func (s *stubMovieStore) Insert(m model.Movie) (model.Movie, error) {
	s.inserted++
	m.ID = s.inserted
	return m, nil
}

func newTestRouter(store *stubMovieStore) (*gin.Engine, *jwt.Manager) {
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", time.Hour)
	authHandler := auth.NewHandler(service.NewAuthService(stubUserStore{}, tokens, 0, 0), tokens)
	movieHandler := movie.NewHandler(service.NewMovieService(store))

	r := gin.New()
	SetupRouter(r, authHandler, movieHandler)
	return r, tokens
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(&stubMovieStore{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMoviesRequireAuth(t *testing.T) {
	store := &stubMovieStore{}
	r, _ := newTestRouter(store)

	body, _ := json.Marshal(gin.H{
		"title":       "Inception",
		"releaseDate": 2010,
		"genre":       "Science Fiction",
		"actors":      []gin.H{{"actorName": "A", "characterName": "X"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, store.inserted, "no record may be created without auth")
}

func TestMoviesWithToken(t *testing.T) {
	store := &stubMovieStore{}
	r, tokens := newTestRouter(store)

	token, err := tokens.Issue(1, "alice")
	require.NoError(t, err)

	body, _ := json.Marshal(gin.H{
		"title":       "Inception",
		"releaseDate": 2010,
		"genre":       "Science Fiction",
		"actors":      []gin.H{{"actorName": "A", "characterName": "X"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "JWT "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, store.inserted)
}

func TestSignupAndSigninAreOpen(t *testing.T) {
	r, _ := newTestRouter(&stubMovieStore{})

	body, _ := json.Marshal(gin.H{"username": "alice", "password": "p4ssword"})
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// No Authorization header needed
	assert.Equal(t, http.StatusCreated, w.Code)
}
