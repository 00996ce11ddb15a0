package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/jwt"
	"github.com/natkip/CSC3916-Assignment3/internal/pkg/redis"
	"github.com/natkip/CSC3916-Assignment3/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTooManyAttempts    = errors.New("too many failed signin attempts")
)

// UserStore is the persistence interface the auth service consumes
type UserStore interface {
	Create(user model.User) (model.User, error)
	FindByUsername(username string) (*model.User, error)
	Exists(username string) (bool, error)
}

// AuthService handles signup and signin
type AuthService struct {
	users  UserStore
	tokens *jwt.Manager

	// Failed-signin throttle, backed by Redis when available.
	maxAttempts   int
	lockoutWindow time.Duration
}

// NewAuthService creates an auth service
func NewAuthService(users UserStore, tokens *jwt.Manager, maxAttempts, lockoutMinutes int) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		maxAttempts:   maxAttempts,
		lockoutWindow: time.Duration(lockoutMinutes) * time.Minute,
	}
}

// Signup creates a new user with a hashed password
func (s *AuthService) Signup(name, username, password string) (model.User, error) {
	exists, err := s.users.Exists(username)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.users.Create(model.User{
		Name:     name,
		Username: username,
		Password: string(hash),
	})
	if err != nil {
		// The store enforces uniqueness too; a concurrent signup can
		// slip past the existence check above.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}

	return user, nil
}

// Signin authenticates a user and returns a signed token, already
// prefixed with the "JWT " header scheme so clients can echo it back
// verbatim in the Authorization header.
func (s *AuthService) Signin(username, password string) (string, error) {
	if redis.Enabled() && s.maxAttempts > 0 {
		failures, err := redis.FailedSignins(username)
		if err == nil && failures >= s.maxAttempts {
			return "", ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", s.failedSignin(username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", s.failedSignin(username)
	}

	if redis.Enabled() {
		redis.ClearFailedSignins(username)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	return jwt.HeaderScheme + " " + token, nil
}

func (s *AuthService) failedSignin(username string) error {
	if redis.Enabled() {
		redis.RecordFailedSignin(username, s.lockoutWindow)
	}
	return ErrInvalidCredentials
}
