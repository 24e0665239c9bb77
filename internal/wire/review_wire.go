package wire

import (
	"flix/internal/adaptor"
	"flix/internal/data/repository"
	"flix/pkg/middleware"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(middleware.AuthSession(repo.Session, repo.User, config.Session.Secret, log)).
		Post("/submit_review/{id}", reviewHandler.Submit)
}
