package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// errUniqueViolation marks a violated UNIQUE constraint. Repositories
	// translate it to a domain error (e.g. [ErrEmailAlreadyExists]).
	errUniqueViolation = errors.New("unique constraint violation")

	// errInvalidIdentifier marks a value Postgres could not parse into the
	// column type, typically a malformed uuid.
	errInvalidIdentifier = errors.New("invalid identifier")
)

// postgresError returns the SQLSTATE code of err, or "" when err is not a
// PostgreSQL driver error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// classifyError wraps err with the store sentinel matching its SQLSTATE
// code. See https://www.postgresql.org/docs/current/errcodes-appendix.html.
//
//   - 23505 unique_violation → errUniqueViolation
//   - 22P02 invalid_text_representation → errInvalidIdentifier
//   - class 08 connection exceptions, 57P03 → [ErrStoreUnavailable]
//   - anything else → [ErrExecutingQuery]
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	code := postgresError(err)
	switch {
	case code == pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %w", errUniqueViolation, err)
	case code == pgerrcode.InvalidTextRepresentation:
		return fmt.Errorf("%w: %w", errInvalidIdentifier, err)
	case pgerrcode.IsConnectionException(code), code == pgerrcode.CannotConnectNow:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
