package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
)

// ErrDuplicateUsername is returned by Create when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// UserRepository persists account records
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository on top of db
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The password must already be hashed.
func (r *UserRepository) Create(user model.User) (model.User, error) {
	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO users (name, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, user.Name, user.Username, user.Password, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return model.User{}, ErrDuplicateUsername
		}
		return model.User{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.User{}, err
	}

	user.ID = int(id)
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

// FindByUsername returns the user with the given username, or nil when
// no such user exists.
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	query := `
		SELECT id, name, username, password_hash, created_at, updated_at
		FROM users WHERE username = ?
	`

	user := &model.User{}
	var name sql.NullString

	err := r.db.QueryRow(query, username).Scan(
		&user.ID, &name, &user.Username, &user.Password,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if name.Valid {
		user.Name = name.String
	}

	return user, nil
}

// Exists checks if a user exists by username
func (r *UserRepository) Exists(username string) (bool, error) {
	query := `SELECT 1 FROM users WHERE username = ?`
	var exists int
	err := r.db.QueryRow(query, username).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
