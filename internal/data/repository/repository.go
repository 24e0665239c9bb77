package repository

import (
	"flix/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Movie     MovieRepository
	Watchlist WatchlistRepository
	Review    ReviewRepository
	Session   SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Movie:     NewMovieRepository(db, log),
		Watchlist: NewWatchlistRepository(db, log),
		Review:    NewReviewRepository(db, log),
		Session:   NewSessionRepository(db, log),
	}
}
