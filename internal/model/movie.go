package model

// Release years outside this window are rejected by the movie service.
const (
	MinReleaseYear = 1900
	MaxReleaseYear = 2100
)

// Genres is the fixed set of accepted movie genres. Matching is case-exact.
var Genres = []string{
	"Action",
	"Adventure",
	"Comedy",
	"Drama",
	"Fantasy",
	"Horror",
	"Mystery",
	"Thriller",
	"Western",
	"Science Fiction",
}

// IsValidGenre reports whether g is one of the accepted genres.
func IsValidGenre(g string) bool {
	for _, genre := range Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Actor is a single cast entry on a movie
type Actor struct {
	ActorName     string `json:"actorName" db:"actor_name"`
	CharacterName string `json:"characterName" db:"character_name"`
}

// Movie represents a movie record. Title acts as the natural key for
// lookup, update and delete; it is not unique in the store, so those
// operations work on the first match (lowest id).
type Movie struct {
	ID          int     `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	ReleaseDate int     `json:"releaseDate" db:"release_date"`
	Genre       string  `json:"genre" db:"genre"`
	Actors      []Actor `json:"actors"`
	CreatedAt   string  `json:"-" db:"created_at"`
	UpdatedAt   string  `json:"-" db:"updated_at"`
}

// MovieCreate represents a movie create request
type MovieCreate struct {
	Title       string  `json:"title"`
	ReleaseDate *int    `json:"releaseDate"`
	Genre       string  `json:"genre"`
	Actors      []Actor `json:"actors"`
}

// MovieUpdate represents a partial movie update request. Nil fields are
// left untouched; a non-nil actors slice replaces the cast wholesale.
type MovieUpdate struct {
	ReleaseDate *int    `json:"releaseDate"`
	Genre       *string `json:"genre"`
	Actors      []Actor `json:"actors"`
}

// Empty reports whether the update touches nothing.
func (u MovieUpdate) Empty() bool {
	return u.ReleaseDate == nil && u.Genre == nil && u.Actors == nil
}
