package movie

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
	"github.com/natkip/CSC3916-Assignment3/internal/service"
)

// MockMovieStore is a mock implementation of service.MovieStore
type MockMovieStore struct {
	mock.Mock
}

func (m *MockMovieStore) FindAll() ([]model.Movie, error) {
	args := m.Called()
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *MockMovieStore) FindByTitle(title string) (*model.Movie, error) {
	args := m.Called(title)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieStore) Insert(movie model.Movie) (model.Movie, error) {
	args := m.Called(movie)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *MockMovieStore) UpdateByTitle(title string, update model.MovieUpdate) (*model.Movie, error) {
	args := m.Called(title, update)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieStore) DeleteByTitle(title string) (bool, error) {
	args := m.Called(title)
	return args.Bool(0), args.Error(1)
}

func setupRouter(store service.MovieStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(service.NewMovieService(store))

	r := gin.New()
	r.GET("/movies", handler.List)
	r.POST("/movies", handler.Create)
	r.GET("/movies/:title", handler.Get)
	r.PUT("/movies/:title", handler.Update)
	r.DELETE("/movies/:title", handler.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func inception() model.Movie {
	return model.Movie{
		ID:          1,
		Title:       "Inception",
		ReleaseDate: 2010,
		Genre:       "Science Fiction",
		Actors: []model.Actor{
			{ActorName: "Leonardo DiCaprio", CharacterName: "Cobb"},
			{ActorName: "Joseph Gordon-Levitt", CharacterName: "Arthur"},
			{ActorName: "Elliot Page", CharacterName: "Ariadne"},
		},
	}
}

func TestListMovies(t *testing.T) {
	store := new(MockMovieStore)
	store.On("FindAll").Return([]model.Movie{inception()}, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Movies []model.Movie `json:"movies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Movies, 1)
	assert.Equal(t, "Inception", resp.Movies[0].Title)
}

func TestCreateMovie(t *testing.T) {
	store := new(MockMovieStore)
	store.On("Insert", mock.Anything).Return(inception(), nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodPost, "/movies", gin.H{
		"title":       "Inception",
		"releaseDate": 2010,
		"genre":       "Science Fiction",
		"actors": []gin.H{
			{"actorName": "Leonardo DiCaprio", "characterName": "Cobb"},
			{"actorName": "Joseph Gordon-Levitt", "characterName": "Arthur"},
			{"actorName": "Elliot Page", "characterName": "Ariadne"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Movie model.Movie `json:"movie"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Movie.ID)
}

func TestCreateMovieInvalidPayload(t *testing.T) {
	store := new(MockMovieStore)
	r := setupRouter(store)

	w := doJSON(r, http.MethodPost, "/movies", gin.H{
		"title":       "Inception",
		"releaseDate": 1800,
		"genre":       "Science Fiction",
		"actors":      []gin.H{{"actorName": "A", "characterName": "X"}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "between 1900 and 2100")
	store.AssertNotCalled(t, "Insert", mock.Anything)
}

func TestGetMovie(t *testing.T) {
	m := inception()
	store := new(MockMovieStore)
	store.On("FindByTitle", "Inception").Return(&m, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodGet, "/movies/Inception", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Science Fiction")
}

func TestGetMovieNotFound(t *testing.T) {
	store := new(MockMovieStore)
	store.On("FindByTitle", "Unknown").Return(nil, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodGet, "/movies/Unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMovieInvalidGenre(t *testing.T) {
	store := new(MockMovieStore)
	r := setupRouter(store)

	w := doJSON(r, http.MethodPut, "/movies/Inception", gin.H{"genre": "Not-A-Genre"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	// The stored record is never touched
	store.AssertNotCalled(t, "UpdateByTitle", mock.Anything, mock.Anything)
}

func TestUpdateMovieNotFound(t *testing.T) {
	store := new(MockMovieStore)
	store.On("UpdateByTitle", "Unknown", mock.Anything).Return(nil, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodPut, "/movies/Unknown", gin.H{"genre": "Drama"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateMovie(t *testing.T) {
	updated := inception()
	updated.Genre = "Thriller"
	store := new(MockMovieStore)
	store.On("UpdateByTitle", "Inception", mock.Anything).Return(&updated, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodPut, "/movies/Inception", gin.H{"genre": "Thriller"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thriller")
}

func TestUpdateMovieEmptyPayload(t *testing.T) {
	store := new(MockMovieStore)
	r := setupRouter(store)

	w := doJSON(r, http.MethodPut, "/movies/Inception", gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "nothing to update")
}

func TestDeleteMovie(t *testing.T) {
	store := new(MockMovieStore)
	store.On("DeleteByTitle", "Inception").Return(true, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodDelete, "/movies/Inception", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

func TestDeleteMovieAbsent(t *testing.T) {
	store := new(MockMovieStore)
	store.On("DeleteByTitle", "Unknown").Return(false, nil)
	r := setupRouter(store)

	w := doJSON(r, http.MethodDelete, "/movies/Unknown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":false`)
}
