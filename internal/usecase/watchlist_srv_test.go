package usecase

import (
	"context"
	"errors"
	"testing"

	"flix/internal/data/entity"

	"github.com/google/uuid"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	movie := env.addMovie("Inception", "Sci-Fi", 2010)
	svc := NewWatchlistService(env.repo, env.log)

	resp, err := svc.Toggle(context.Background(), user.ID, movie.ID.String())
	if err != nil {
		t.Fatalf("first Toggle() error = %v", err)
	}
	if resp.State != "added" {
		t.Errorf("first toggle state = %q, want added", resp.State)
	}
	if resp.MovieTitle != "Inception" {
		t.Errorf("MovieTitle = %q, want Inception", resp.MovieTitle)
	}

	resp, err = svc.Toggle(context.Background(), user.ID, movie.ID.String())
	if err != nil {
		t.Fatalf("second Toggle() error = %v", err)
	}
	if resp.State != "removed" {
		t.Errorf("second toggle state = %q, want removed", resp.State)
	}

	// A toggle pair lands back where it started
	entry, _ := env.watchlist.FindByUserAndMovie(context.Background(), user.ID, movie.ID)
	if entry != nil {
		t.Error("entry still present after add+remove pair")
	}
}

func TestToggleUnknownMovie(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	svc := NewWatchlistService(env.repo, env.log)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := svc.Toggle(context.Background(), user.ID, id)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Toggle(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestToggleRaceSurfacesConflict(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	movie := env.addMovie("Inception", "Sci-Fi", 2010)
	svc := NewWatchlistService(env.repo, env.log)

	env.watchlist.forceToggleErr = uniqueViolation()

	_, err := svc.Toggle(context.Background(), user.ID, movie.ID.String())
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Toggle() error = %v, want ErrConflict", err)
	}
}

func TestTogglePersistenceFailure(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	movie := env.addMovie("Inception", "Sci-Fi", 2010)
	svc := NewWatchlistService(env.repo, env.log)

	env.watchlist.forceToggleErr = errors.New("connection reset")

	_, err := svc.Toggle(context.Background(), user.ID, movie.ID.String())
	if !errors.Is(err, ErrPersistence) {
		t.Errorf("Toggle() error = %v, want ErrPersistence", err)
	}
}

func TestListNewestFirstAndSkipsDeletedMovies(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("alice", "alice@example.com", "secret1", entity.RoleMember)
	first := env.addMovie("Inception", "Sci-Fi", 2010)
	second := env.addMovie("Frozen", "Animation", 2013)
	svc := NewWatchlistService(env.repo, env.log)

	if _, err := svc.Toggle(context.Background(), user.ID, first.ID.String()); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Toggle(context.Background(), user.ID, second.ID.String()); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	// Bump the second entry so ordering is deterministic
	entry, _ := env.watchlist.FindByUserAndMovie(context.Background(), user.ID, second.ID)
	stored := env.watchlist.entries[pairKey{user: user.ID, movie: second.ID}]
	stored.CreatedAt = entry.CreatedAt.Add(1e9)

	movies, err := svc.List(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("List() returned %d movies, want 2", len(movies))
	}
	if movies[0].Title != "Frozen" || movies[1].Title != "Inception" {
		t.Errorf("order = [%s, %s], want [Frozen, Inception]", movies[0].Title, movies[1].Title)
	}

	// Remove the movie behind an entry; listing must silently skip it
	for i, m := range env.movies.movies {
		if m.ID == first.ID {
			env.movies.movies = append(env.movies.movies[:i], env.movies.movies[i+1:]...)
			break
		}
	}

	movies, err = svc.List(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("List() after delete error = %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Frozen" {
		t.Errorf("List() after delete = %v, want just Frozen", movies)
	}
}
