package wire

import (
	"flix/internal/adaptor"
	"flix/internal/data/repository"
	"flix/pkg/middleware"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWatchlist(
	r chi.Router,
	watchlistHandler *adaptor.WatchlistHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, config.Session.Secret, log)

	r.With(auth).Post("/toggle_watchlist/{id}", watchlistHandler.Toggle)
	r.With(auth).Get("/watchlist", watchlistHandler.List)
}
