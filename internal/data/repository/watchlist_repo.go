package repository

import (
	"context"
	"fmt"
	"time"

	"flix/internal/data/entity"
	"flix/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WatchlistRepository interface {
	// Toggle flips membership for the (user, movie) pair inside a single
	// transaction; returns true when the entry was added, false when removed
	Toggle(ctx context.Context, userID, movieID uuid.UUID) (bool, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.WatchlistEntry, error)
	ListMoviesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Movie, error)
}

type watchlistRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWatchlistRepository(db database.PgxIface, log *zap.Logger) WatchlistRepository {
	return &watchlistRepository{
		db:  db,
		log: log.With(zap.String("repository", "watchlist")),
	}
}

func (r *watchlistRepository) Toggle(ctx context.Context, userID, movieID uuid.UUID) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin watchlist toggle",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID.String()),
		)
		return false, fmt.Errorf("begin watchlist toggle: %w", err)
	}
	// Rollback is a no-op after a successful commit
	defer tx.Rollback(ctx)

	var entryID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM watchlist_entries WHERE user_id = $1 AND movie_id = $2 FOR UPDATE`,
		userID, movieID,
	).Scan(&entryID)

	switch {
	case err == pgx.ErrNoRows:
		_, err = tx.Exec(ctx,
			`INSERT INTO watchlist_entries (id, user_id, movie_id, created_at)
			 VALUES ($1, $2, $3, $4)`,
			uuid.New(), userID, movieID, time.Now(),
		)
		if err != nil {
			r.log.Error("Failed to add watchlist entry",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("movie_id", movieID.String()),
			)
			return false, fmt.Errorf("add watchlist entry: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return false, fmt.Errorf("commit watchlist add: %w", err)
		}
		return true, nil

	case err != nil:
		r.log.Error("Failed to look up watchlist entry",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID.String()),
		)
		return false, fmt.Errorf("find watchlist entry: %w", err)

	default:
		_, err = tx.Exec(ctx, `DELETE FROM watchlist_entries WHERE id = $1`, entryID)
		if err != nil {
			r.log.Error("Failed to remove watchlist entry",
				zap.Error(err),
				zap.String("entry_id", entryID.String()),
			)
			return false, fmt.Errorf("remove watchlist entry: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return false, fmt.Errorf("commit watchlist remove: %w", err)
		}
		return false, nil
	}
}

func (r *watchlistRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.WatchlistEntry, error) {
	query := `
		SELECT id, user_id, movie_id, created_at
		FROM watchlist_entries
		WHERE user_id = $1 AND movie_id = $2
		LIMIT 1
	`

	var entry entity.WatchlistEntry
	err := r.db.QueryRow(ctx, query, userID, movieID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.MovieID,
		&entry.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find watchlist entry",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find watchlist entry for user %s movie %s: %w",
			userID.String(), movieID.String(), err)
	}

	return &entry, nil
}

// ListMoviesByUser returns the user's watchlist movies, most recently added
// first; the inner join naturally excludes entries whose movie is gone
func (r *watchlistRepository) ListMoviesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Movie, error) {
	query := `
		SELECT m.id, m.title, m.synopsis, m.poster, m.year, m.genre, m.duration,
		       m.created_at, m.updated_at
		FROM watchlist_entries w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list watchlist",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list watchlist for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Synopsis,
			&movie.Poster,
			&movie.Year,
			&movie.Genre,
			&movie.Duration,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan watchlist movie row", zap.Error(err))
			return nil, fmt.Errorf("scan watchlist movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate watchlist rows: %w", err)
	}

	return movies, nil
}
