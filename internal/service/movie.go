package service

import (
	"errors"
	"fmt"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
)

var (
	// ErrInvalidPayload wraps every domain-rule violation on a movie
	// payload. Use errors.Is to detect it; the message carries the rule.
	ErrInvalidPayload = errors.New("invalid movie payload")
	ErrMovieNotFound  = errors.New("movie not found")
)

// MovieStore is the persistence interface the movie service consumes
type MovieStore interface {
	FindAll() ([]model.Movie, error)
	FindByTitle(title string) (*model.Movie, error)
	Insert(movie model.Movie) (model.Movie, error)
	UpdateByTitle(title string, update model.MovieUpdate) (*model.Movie, error)
	DeleteByTitle(title string) (bool, error)
}

// MovieService validates movie payloads and drives the store
type MovieService struct {
	movies MovieStore
}

// NewMovieService creates a movie service
func NewMovieService(movies MovieStore) *MovieService {
	return &MovieService{movies: movies}
}

// List returns all movies
func (s *MovieService) List() ([]model.Movie, error) {
	movies, err := s.movies.FindAll()
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return movies, nil
}

// Get returns the movie with the given title
func (s *MovieService) Get(title string) (*model.Movie, error) {
	movie, err := s.movies.FindByTitle(title)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	return movie, nil
}

// Create validates a new movie and inserts it
func (s *MovieService) Create(req model.MovieCreate) (model.Movie, error) {
	if err := validateNewMovie(req); err != nil {
		return model.Movie{}, err
	}

	return s.movies.Insert(model.Movie{
		Title:       req.Title,
		ReleaseDate: *req.ReleaseDate,
		Genre:       req.Genre,
		Actors:      req.Actors,
	})
}

// Update validates a partial update and applies it to the movie with
// the given title.
func (s *MovieService) Update(title string, req model.MovieUpdate) (*model.Movie, error) {
	if err := validateMovieUpdate(req); err != nil {
		return nil, err
	}

	movie, err := s.movies.UpdateByTitle(title, req)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	return movie, nil
}

// Delete removes the movie with the given title. Deleting an unknown
// title reports deleted=false rather than an error so retries are safe.
func (s *MovieService) Delete(title string) (bool, error) {
	return s.movies.DeleteByTitle(title)
}

// validateNewMovie checks a create payload. Validation is pure and
// fail-fast: the first rule violated wins, in field order.
func validateNewMovie(req model.MovieCreate) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidPayload)
	}
	if req.ReleaseDate == nil {
		return fmt.Errorf("%w: releaseDate is required", ErrInvalidPayload)
	}
	if err := validateReleaseDate(*req.ReleaseDate); err != nil {
		return err
	}
	if req.Genre != "" {
		if err := validateGenre(req.Genre); err != nil {
			return err
		}
	}
	// The create path only requires a non-empty cast; the three-actor
	// minimum is enforced on updates. Kept as-is for compatibility even
	// though the asymmetry looks unintentional.
	if len(req.Actors) == 0 {
		return fmt.Errorf("%w: actors must not be empty", ErrInvalidPayload)
	}
	return nil
}

// validateMovieUpdate checks a partial update payload
func validateMovieUpdate(req model.MovieUpdate) error {
	if req.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidPayload)
	}
	if req.ReleaseDate != nil {
		if err := validateReleaseDate(*req.ReleaseDate); err != nil {
			return err
		}
	}
	if req.Genre != nil {
		if err := validateGenre(*req.Genre); err != nil {
			return err
		}
	}
	if req.Actors != nil && len(req.Actors) < 3 {
		return fmt.Errorf("%w: at least 3 actors are required", ErrInvalidPayload)
	}
	return nil
}

func validateReleaseDate(year int) error {
	if year < model.MinReleaseYear || year > model.MaxReleaseYear {
		return fmt.Errorf("%w: releaseDate must be between %d and %d",
			ErrInvalidPayload, model.MinReleaseYear, model.MaxReleaseYear)
	}
	return nil
}

func validateGenre(genre string) error {
	if !model.IsValidGenre(genre) {
		return fmt.Errorf("%w: genre must be one of the accepted genres", ErrInvalidPayload)
	}
	return nil
}
