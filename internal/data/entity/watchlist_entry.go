package entity

import (
	"github.com/google/uuid"
)

// WatchlistEntry bookmarks a movie for a user; at most one row per
// (user, movie) pair, enforced by a unique constraint
type WatchlistEntry struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
}
