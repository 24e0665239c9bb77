package usecase

import (
	"flix/internal/data/repository"
	"flix/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Catalog   CatalogService
	Watchlist WatchlistService
	Review    ReviewService
	Admin     AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		Catalog:   NewCatalogService(repo, log),
		Watchlist: NewWatchlistService(repo, log),
		Review:    NewReviewService(repo, log),
		Admin:     NewAdminService(repo, log),
	}
}
