package usecase

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Service error classes. Handlers map these to HTTP statuses; everything
// not wrapped in one of them is treated as an internal failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrPersistence        = errors.New("persistence failure")
)

// isUniqueViolation reports whether err is a unique-constraint rejection
// from postgres (SQLSTATE 23505), e.g. a lost duplicate-write race
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
