package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"flix/internal/data/entity"
	"flix/internal/data/repository"
	"flix/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// In-memory fakes behind the repository interfaces. They mimic the store's
// uniqueness constraints so the race-translation paths are testable.

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return uniqueViolation()
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIdentity(_ context.Context, identity string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == identity || u.Email == identity {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeMovieRepo struct {
	movies []*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{}
}

func (f *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	clone := *movie
	f.movies = append(f.movies, &clone)
	return nil
}

func (f *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	for _, m := range f.movies {
		if m.ID == id {
			clone := *m
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	for _, m := range f.movies {
		if m.Title == title {
			clone := *m
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	for i, m := range f.movies {
		if m.ID == movie.ID {
			clone := *movie
			f.movies[i] = &clone
			return nil
		}
	}
	return uniqueViolation()
}

func (f *fakeMovieRepo) matches(m *entity.Movie, query, genre string) bool {
	if query != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(query)) {
		return false
	}
	if genre != "" && m.Genre != genre {
		return false
	}
	return true
}

func (f *fakeMovieRepo) Search(_ context.Context, query, genre string, limit, offset int) ([]*entity.Movie, error) {
	var hits []*entity.Movie
	for _, m := range f.movies {
		if f.matches(m, query, genre) {
			hits = append(hits, m)
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Year != hits[j].Year {
			return hits[i].Year > hits[j].Year
		}
		return hits[i].ID.String() < hits[j].ID.String()
	})

	if offset >= len(hits) {
		return nil, nil
	}
	hits = hits[offset:]
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]*entity.Movie, len(hits))
	for i, m := range hits {
		clone := *m
		out[i] = &clone
	}
	return out, nil
}

func (f *fakeMovieRepo) CountSearch(_ context.Context, query, genre string) (int64, error) {
	var total int64
	for _, m := range f.movies {
		if f.matches(m, query, genre) {
			total++
		}
	}
	return total, nil
}

func (f *fakeMovieRepo) DistinctGenres(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var genres []string
	for _, m := range f.movies {
		if m.Genre != "" && !seen[m.Genre] {
			seen[m.Genre] = true
			genres = append(genres, m.Genre)
		}
	}
	sort.Strings(genres)
	return genres, nil
}

func (f *fakeMovieRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.movies)), nil
}

type pairKey struct {
	user  uuid.UUID
	movie uuid.UUID
}

type fakeWatchlistRepo struct {
	entries map[pairKey]*entity.WatchlistEntry
	movies  *fakeMovieRepo

	// forceToggleErr makes the next Toggle fail with this error
	forceToggleErr error
}

func newFakeWatchlistRepo(movies *fakeMovieRepo) *fakeWatchlistRepo {
	return &fakeWatchlistRepo{
		entries: make(map[pairKey]*entity.WatchlistEntry),
		movies:  movies,
	}
}

func (f *fakeWatchlistRepo) Toggle(_ context.Context, userID, movieID uuid.UUID) (bool, error) {
	if f.forceToggleErr != nil {
		err := f.forceToggleErr
		f.forceToggleErr = nil
		return false, err
	}

	key := pairKey{user: userID, movie: movieID}
	if _, ok := f.entries[key]; ok {
		delete(f.entries, key)
		return false, nil
	}

	f.entries[key] = &entity.WatchlistEntry{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     userID,
		MovieID:    movieID,
	}
	return true, nil
}

func (f *fakeWatchlistRepo) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*entity.WatchlistEntry, error) {
	if e, ok := f.entries[pairKey{user: userID, movie: movieID}]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeWatchlistRepo) ListMoviesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Movie, error) {
	var owned []*entity.WatchlistEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			owned = append(owned, e)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	var movies []*entity.Movie
	for _, e := range owned {
		movie, _ := f.movies.FindByID(ctx, e.MovieID)
		if movie != nil {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

type fakeReviewRepo struct {
	reviews map[pairKey]*entity.Review
	users   *fakeUserRepo

	// forceCreateErr makes the next Create fail with this error
	forceCreateErr error
}

func newFakeReviewRepo(users *fakeUserRepo) *fakeReviewRepo {
	return &fakeReviewRepo{
		reviews: make(map[pairKey]*entity.Review),
		users:   users,
	}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	if f.forceCreateErr != nil {
		err := f.forceCreateErr
		f.forceCreateErr = nil
		return err
	}

	key := pairKey{user: review.UserID, movie: review.MovieID}
	if _, ok := f.reviews[key]; ok {
		return uniqueViolation()
	}

	clone := *review
	f.reviews[key] = &clone
	return nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for key, r := range f.reviews {
		if r.ID == review.ID {
			clone := *review
			f.reviews[key] = &clone
			return nil
		}
	}
	return uniqueViolation()
}

func (f *fakeReviewRepo) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	if r, ok := f.reviews[pairKey{user: userID, movie: movieID}]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*repository.ReviewWithAuthor, error) {
	var rows []*repository.ReviewWithAuthor
	for _, r := range f.reviews {
		if r.MovieID != movieID {
			continue
		}
		username := ""
		if user, _ := f.users.FindByID(ctx, r.UserID); user != nil {
			username = user.Username
		}
		rows = append(rows, &repository.ReviewWithAuthor{Review: *r, Username: username})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func (f *fakeReviewRepo) AverageRating(_ context.Context, movieID uuid.UUID) (float64, int64, error) {
	var sum, count int64
	for _, r := range f.reviews {
		if r.MovieID == movieID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (f *fakeReviewRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.reviews)), nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	clone := *session
	f.sessions[session.Token.String()] = &clone
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	s, ok := f.sessions[token]
	if !ok || s.RevokedAt != nil || s.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	if s, ok := f.sessions[token]; ok && s.RevokedAt == nil {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

// testEnv bundles a repository aggregate over fakes plus the pieces the
// services need
type testEnv struct {
	repo      *repository.Repository
	users     *fakeUserRepo
	movies    *fakeMovieRepo
	watchlist *fakeWatchlistRepo
	reviews   *fakeReviewRepo
	sessions  *fakeSessionRepo
	config    *utils.Config
	log       *zap.Logger
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	movies := newFakeMovieRepo()
	watchlist := newFakeWatchlistRepo(movies)
	reviews := newFakeReviewRepo(users)
	sessions := newFakeSessionRepo()

	return &testEnv{
		repo: &repository.Repository{
			User:      users,
			Movie:     movies,
			Watchlist: watchlist,
			Review:    reviews,
			Session:   sessions,
		},
		users:     users,
		movies:    movies,
		watchlist: watchlist,
		reviews:   reviews,
		sessions:  sessions,
		config: &utils.Config{
			Session: utils.SessionConfig{
				Secret:   "test-secret",
				TTLHours: 1,
			},
		},
		log: zap.NewNop(),
	}
}

func (e *testEnv) addUser(username, email, password string, role entity.UserRole) *entity.User {
	hash, _ := utils.HashPassword(password)
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	e.users.Create(context.Background(), user)
	return user
}

func (e *testEnv) addMovie(title, genre string, year int) *entity.Movie {
	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title: title,
		Genre: genre,
		Year:  year,
	}
	e.movies.Create(context.Background(), movie)
	return movie
}
