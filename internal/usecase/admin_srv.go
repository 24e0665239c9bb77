package usecase

import (
	"context"
	"fmt"
	"time"

	"flix/internal/data/entity"
	"flix/internal/data/repository"
	"flix/internal/dto/request"
	"flix/internal/dto/response"
	"flix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService mutates the catalog. Route guards enforce the admin role
// before these are reachable.
type AdminService interface {
	AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	EditMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:    req.Title,
		Synopsis: req.Synopsis,
		Poster:   req.Poster,
		Year:     req.Year,
		Genre:    req.Genre,
		Duration: req.Duration,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("%w: create movie", ErrPersistence)
	}

	s.log.Info("Movie added",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// EditMovie overwrites all mutable fields in place
func (s *adminService) EditMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Edit movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie", ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie for edit", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("%w: get movie", ErrPersistence)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie", ErrNotFound)
	}

	movie.Title = req.Title
	movie.Synopsis = req.Synopsis
	movie.Poster = req.Poster
	movie.Year = req.Year
	movie.Genre = req.Genre
	movie.Duration = req.Duration
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("%w: update movie", ErrPersistence)
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}
