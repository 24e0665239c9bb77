package wire

import (
	"flix/internal/adaptor"
	"flix/internal/data/repository"
	"flix/pkg/middleware"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)

	// Logout reads the session when present but never fails without one
	r.With(middleware.OptionalAuth(repo.Session, repo.User, config.Session.Secret, log)).
		Get("/logout", authHandler.Logout)
}
