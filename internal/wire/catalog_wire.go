package wire

import (
	"flix/internal/adaptor"
	"flix/internal/data/repository"
	"flix/pkg/middleware"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/", catalogHandler.Landing)
	r.Get("/api/movies", catalogHandler.Search)

	// Detail is public; an attached session adds watchlist membership
	r.With(middleware.OptionalAuth(repo.Session, repo.User, config.Session.Secret, log)).
		Get("/movie/{id}", catalogHandler.Detail)
}
