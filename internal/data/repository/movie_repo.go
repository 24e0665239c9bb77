package repository

import (
	"context"
	"fmt"
	"strings"

	"flix/internal/data/entity"
	"flix/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Search(ctx context.Context, query, genre string, limit, offset int) ([]*entity.Movie, error)
	CountSearch(ctx context.Context, query, genre string) (int64, error)
	DistinctGenres(ctx context.Context) ([]string, error)
	FindByTitle(ctx context.Context, title string) (*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, synopsis, poster, year, genre, duration,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Synopsis,
		movie.Poster,
		movie.Year,
		movie.Genre,
		movie.Duration,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, synopsis, poster, year, genre, duration, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
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

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return &movie, nil
}

func (r *movieRepository) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	query := `
		SELECT id, title, synopsis, poster, year, genre, duration, created_at, updated_at
		FROM movies
		WHERE title = $1
		LIMIT 1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, title).Scan(
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

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by title",
			zap.Error(err),
			zap.String("title", title),
		)
		return nil, fmt.Errorf("find movie by title %s: %w", title, err)
	}

	return &movie, nil
}

// Search filters by case-insensitive title substring and exact genre,
// newest release year first with id as the stable tiebreak
func (r *movieRepository) Search(ctx context.Context, query, genre string, limit, offset int) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, title, synopsis, poster, year, genre, duration, created_at, updated_at
		FROM movies
		WHERE 1=1
	`)

	args := []interface{}{}
	argCount := 1

	if query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND title ILIKE $%d", argCount))
		args = append(args, "%"+query+"%")
		argCount++
	}

	if genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND genre = $%d", argCount))
		args = append(args, genre)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY year DESC, id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("query", query),
			zap.String("genre", genre),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("search movies: %w", err)
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
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountSearch(ctx context.Context, query, genre string) (int64, error) {
	sql := `SELECT COUNT(*) FROM movies WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if query != "" {
		sql += fmt.Sprintf(" AND title ILIKE $%d", argCount)
		args = append(args, "%"+query+"%")
		argCount++
	}

	if genre != "" {
		sql += fmt.Sprintf(" AND genre = $%d", argCount)
		args = append(args, genre)
	}

	var total int64
	err := r.db.QueryRow(ctx, sql, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.String("query", query),
			zap.String("genre", genre),
		)
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

// DistinctGenres returns the non-empty genre labels, sorted ascending
func (r *movieRepository) DistinctGenres(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT genre
		FROM movies
		WHERE genre <> ''
		ORDER BY genre ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, synopsis = $3, poster = $4, year = $5, genre = $6,
		    duration = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Synopsis,
		movie.Poster,
		movie.Year,
		movie.Genre,
		movie.Duration,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s not found", movie.ID.String())
	}

	return nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count all movies", zap.Error(err))
		return 0, fmt.Errorf("count all movies: %w", err)
	}

	return count, nil
}
