package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/natkip/CSC3916-Assignment3/internal/model"
)

// MovieRepository persists movie records. Title is a natural key rather
// than a unique one: lookups, updates and deletes by title act on the
// first match (lowest id).
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a movie repository on top of db
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// FindAll returns every movie with its cast, ordered by id
func (r *MovieRepository) FindAll() ([]model.Movie, error) {
	query := `
		SELECT m.id, m.title, m.release_date, m.genre, a.actor_name, a.character_name
		FROM movies m
		LEFT JOIN movie_actors a ON a.movie_id = m.id
		ORDER BY m.id, a.position
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []model.Movie
	var current *model.Movie
	for rows.Next() {
		var (
			id, releaseDate          int
			title, genre             string
			actorName, characterName sql.NullString
		)
		if err := rows.Scan(&id, &title, &releaseDate, &genre, &actorName, &characterName); err != nil {
			return nil, err
		}

		if current == nil || current.ID != id {
			movies = append(movies, model.Movie{
				ID:          id,
				Title:       title,
				ReleaseDate: releaseDate,
				Genre:       genre,
				Actors:      []model.Actor{},
			})
			current = &movies[len(movies)-1]
		}
		if actorName.Valid {
			current.Actors = append(current.Actors, model.Actor{
				ActorName:     actorName.String,
				CharacterName: characterName.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// FindByTitle returns the first movie with the given title, or nil when
// no such movie exists.
func (r *MovieRepository) FindByTitle(title string) (*model.Movie, error) {
	query := `
		SELECT id, title, release_date, genre
		FROM movies WHERE title = ?
		ORDER BY id LIMIT 1
	`

	movie := &model.Movie{}
	err := r.db.QueryRow(query, title).Scan(
		&movie.ID, &movie.Title, &movie.ReleaseDate, &movie.Genre,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	movie.Actors, err = r.findActors(movie.ID)
	if err != nil {
		return nil, err
	}

	return movie, nil
}

// Insert creates a movie together with its cast
func (r *MovieRepository) Insert(movie model.Movie) (model.Movie, error) {
	now := time.Now().Format(time.RFC3339)

	err := withTx(r.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			`INSERT INTO movies (title, release_date, genre, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			movie.Title, movie.ReleaseDate, movie.Genre, now, now,
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		movie.ID = int(id)

		return insertActors(tx, movie.ID, movie.Actors)
	})
	if err != nil {
		return model.Movie{}, err
	}

	if movie.Actors == nil {
		movie.Actors = []model.Actor{}
	}
	return movie, nil
}

// UpdateByTitle applies a partial update to the first movie with the
// given title and returns the merged record, or nil when no movie
// matches. A non-nil actors slice replaces the stored cast wholesale.
func (r *MovieRepository) UpdateByTitle(title string, update model.MovieUpdate) (*model.Movie, error) {
	existing, err := r.FindByTitle(title)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	now := time.Now().Format(time.RFC3339)

	err = withTx(r.db, func(tx *sql.Tx) error {
		sets := []string{"updated_at = ?"}
		args := []interface{}{now}

		if update.ReleaseDate != nil {
			sets = append(sets, "release_date = ?")
			args = append(args, *update.ReleaseDate)
		}
		if update.Genre != nil {
			sets = append(sets, "genre = ?")
			args = append(args, *update.Genre)
		}
		args = append(args, existing.ID)

		query := "UPDATE movies SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}

		if update.Actors != nil {
			if _, err := tx.Exec(`DELETE FROM movie_actors WHERE movie_id = ?`, existing.ID); err != nil {
				return err
			}
			return insertActors(tx, existing.ID, update.Actors)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if update.ReleaseDate != nil {
		existing.ReleaseDate = *update.ReleaseDate
	}
	if update.Genre != nil {
		existing.Genre = *update.Genre
	}
	if update.Actors != nil {
		existing.Actors = update.Actors
	}
	return existing, nil
}

// DeleteByTitle removes the first movie with the given title. Deleting
// an absent title is a no-op, not an error.
func (r *MovieRepository) DeleteByTitle(title string) (bool, error) {
	query := `
		DELETE FROM movies WHERE id IN (
			SELECT id FROM movies WHERE title = ? ORDER BY id LIMIT 1
		)
	`

	result, err := r.db.Exec(query, title)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *MovieRepository) findActors(movieID int) ([]model.Actor, error) {
	rows, err := r.db.Query(
		`SELECT actor_name, character_name FROM movie_actors WHERE movie_id = ? ORDER BY position`,
		movieID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actors := []model.Actor{}
	for rows.Next() {
		var actor model.Actor
		if err := rows.Scan(&actor.ActorName, &actor.CharacterName); err != nil {
			return nil, err
		}
		actors = append(actors, actor)
	}
	return actors, rows.Err()
}

func insertActors(tx *sql.Tx, movieID int, actors []model.Actor) error {
	for i, actor := range actors {
		_, err := tx.Exec(
			`INSERT INTO movie_actors (movie_id, position, actor_name, character_name) VALUES (?, ?, ?, ?)`,
			movieID, i, actor.ActorName, actor.CharacterName,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
