package usecase

import (
	"context"
	"fmt"

	"flix/internal/data/repository"
	"flix/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WatchlistService interface {
	Toggle(ctx context.Context, userID uuid.UUID, movieID string) (*response.ToggleWatchlistResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]response.MovieResponse, error)
}

type watchlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWatchlistService(repo *repository.Repository, log *zap.Logger) WatchlistService {
	return &watchlistService{
		repo: repo,
		log:  log.With(zap.String("service", "watchlist")),
	}
}

func (s *watchlistService) Toggle(ctx context.Context, userID uuid.UUID, movieID string) (*response.ToggleWatchlistResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie", ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie for toggle", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("%w: get movie", ErrPersistence)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie", ErrNotFound)
	}

	// The repository runs the read-then-write as one transaction; a failure
	// rolls back and nothing half-applied survives
	added, err := s.repo.Watchlist.Toggle(ctx, userID, id)
	if err != nil {
		if isUniqueViolation(err) {
			// Two concurrent toggles for the same pair; the second writer
			// loses to the unique constraint
			return nil, fmt.Errorf("%w: watchlist entry", ErrConflict)
		}
		s.log.Error("Failed to toggle watchlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("%w: toggle watchlist", ErrPersistence)
	}

	state := "removed"
	if added {
		state = "added"
	}

	s.log.Info("Watchlist toggled",
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movieID),
		zap.String("state", state),
	)

	return &response.ToggleWatchlistResponse{
		State:      state,
		MovieTitle: movie.Title,
	}, nil
}

func (s *watchlistService) List(ctx context.Context, userID uuid.UUID) ([]response.MovieResponse, error) {
	movies, err := s.repo.Watchlist.ListMoviesByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list watchlist", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("%w: list watchlist", ErrPersistence)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	return movieResponses, nil
}
