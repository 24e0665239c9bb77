package usecase

import (
	"context"
	"fmt"
	"math"

	"flix/internal/data/repository"
	"flix/internal/dto/request"
	"flix/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListGenres(ctx context.Context) ([]string, error)
	SearchMovies(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	// GetMovieDetail attaches watchlist membership only when callerID is
	// non-nil
	GetMovieDetail(ctx context.Context, movieID string, callerID *uuid.UUID) (*response.MovieDetailResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) ListGenres(ctx context.Context) ([]string, error) {
	genres, err := s.repo.Movie.DistinctGenres(ctx)
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("%w: list genres", ErrPersistence)
	}

	return genres, nil
}

func (s *catalogService) SearchMovies(ctx context.Context, req *request.SearchRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}

	movies, err := s.repo.Movie.Search(ctx, req.Query, req.Genre, request.SearchPageSize, req.Offset())
	if err != nil {
		s.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("query", req.Query),
			zap.String("genre", req.Genre),
			zap.Int("page", req.Page),
		)
		return nil, fmt.Errorf("%w: search movies", ErrPersistence)
	}

	total, err := s.repo.Movie.CountSearch(ctx, req.Query, req.Genre)
	if err != nil {
		s.log.Error("Failed to count search results", zap.Error(err))
		return nil, fmt.Errorf("%w: count movies", ErrPersistence)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies searched",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(movieResponses, req.Page, request.SearchPageSize, total), nil
}

func (s *catalogService) GetMovieDetail(ctx context.Context, movieID string, callerID *uuid.UUID) (*response.MovieDetailResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie", ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("%w: get movie", ErrPersistence)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie", ErrNotFound)
	}

	avg, count, err := s.repo.Review.AverageRating(ctx, id)
	if err != nil {
		s.log.Error("Failed to get rating stats", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("%w: rating stats", ErrPersistence)
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get reviews", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("%w: get reviews", ErrPersistence)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	detail := &response.MovieDetailResponse{
		MovieResponse: response.MovieToResponse(movie),
		ReviewCount:   count,
		Reviews:       reviewResponses,
	}

	// "No ratings yet" stays null rather than 0.0
	if count > 0 {
		rounded := math.Round(avg*10) / 10
		detail.AverageRating = &rounded
	}

	if callerID != nil {
		entry, err := s.repo.Watchlist.FindByUserAndMovie(ctx, *callerID, id)
		if err != nil {
			s.log.Error("Failed to check watchlist membership",
				zap.Error(err),
				zap.String("user_id", callerID.String()),
				zap.String("movie_id", movieID),
			)
			return nil, fmt.Errorf("%w: check watchlist", ErrPersistence)
		}
		onWatchlist := entry != nil
		detail.OnWatchlist = &onWatchlist
	}

	return detail, nil
}
