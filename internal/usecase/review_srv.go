package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flix/internal/data/entity"
	"flix/internal/data/repository"
	"flix/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewOutcome tells the caller whether their submission created a new
// review or overwrote an existing one
type ReviewOutcome string

const (
	ReviewCreated ReviewOutcome = "created"
	ReviewUpdated ReviewOutcome = "updated"
)

type ReviewService interface {
	Submit(ctx context.Context, userID uuid.UUID, movieID string, req *request.ReviewRequest) (ReviewOutcome, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// Submit upserts the caller's review keyed on (user, movie): rating, text
// and timestamp of a resubmission win over the stored row.
func (s *reviewService) Submit(ctx context.Context, userID uuid.UUID, movieID string, req *request.ReviewRequest) (ReviewOutcome, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", fmt.Errorf("%w: review text is required", ErrValidation)
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return "", fmt.Errorf("%w: movie", ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie for review", zap.Error(err), zap.String("movie_id", movieID))
		return "", fmt.Errorf("%w: get movie", ErrPersistence)
	}
	if movie == nil {
		return "", fmt.Errorf("%w: movie", ErrNotFound)
	}

	existing, err := s.repo.Review.FindByUserAndMovie(ctx, userID, id)
	if err != nil {
		s.log.Error("Failed to check existing review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
		)
		return "", fmt.Errorf("%w: check existing review", ErrPersistence)
	}

	now := time.Now()

	if existing != nil {
		existing.Rating = req.Rating
		existing.Text = req.Text
		existing.UpdatedAt = now

		if err := s.repo.Review.Update(ctx, existing); err != nil {
			s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", existing.ID.String()))
			return "", fmt.Errorf("%w: update review", ErrPersistence)
		}

		s.log.Info("Review updated",
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
			zap.Int("rating", req.Rating),
		)
		return ReviewUpdated, nil
	}

	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:  userID,
		MovieID: id,
		Rating:  req.Rating,
		Text:    req.Text,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		// Duplicate-submit race: the existence check passed for both
		// writers, the unique constraint rejected the slower one
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: you have already reviewed this movie", ErrConflict)
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID),
		)
		return "", fmt.Errorf("%w: create review", ErrPersistence)
	}

	s.log.Info("Review created",
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movieID),
		zap.Int("rating", req.Rating),
	)
	return ReviewCreated, nil
}
