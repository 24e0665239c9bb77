package response

import (
	"flix/internal/data/entity"
	"flix/internal/data/repository"
)

type MovieResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Synopsis string `json:"synopsis,omitempty"`
	Poster   string `json:"poster,omitempty"`
	Year     int    `json:"year"`
	Genre    string `json:"genre,omitempty"`
	Duration string `json:"duration,omitempty"`
}

type MovieDetailResponse struct {
	MovieResponse
	// AverageRating is nil when the movie has no reviews yet
	AverageRating *float64         `json:"average_rating"`
	ReviewCount   int64            `json:"review_count"`
	Reviews       []ReviewResponse `json:"reviews"`
	// OnWatchlist is present only when the caller is authenticated
	OnWatchlist *bool `json:"on_watchlist,omitempty"`
}

type ReviewResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:       movie.ID.String(),
		Title:    movie.Title,
		Synopsis: movie.Synopsis,
		Poster:   movie.Poster,
		Year:     movie.Year,
		Genre:    movie.Genre,
		Duration: movie.Duration,
	}
}

func ReviewToResponse(review *repository.ReviewWithAuthor) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		Username:  review.Username,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: review.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: review.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
