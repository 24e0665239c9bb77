package wire

import (
	"flix/internal/adaptor"
	"flix/internal/data/entity"
	"flix/internal/data/repository"
	"flix/pkg/middleware"
	"flix/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, config.Session.Secret, log)
	admin := middleware.RequireRole(string(entity.RoleAdmin), log)

	r.With(auth, admin).Post("/admin/add", adminHandler.AddMovie)
	r.With(auth, admin).Post("/admin/edit/{id}", adminHandler.EditMovie)
}
