package entity

import (
	"github.com/google/uuid"
)

// Review holds one user's review of one movie; resubmission updates the
// existing row instead of creating a second one
type Review struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
	Rating  int       `db:"rating"` // 1-5
	Text    string    `db:"review_text"`
}
