package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user insert or update violates
	// the unique email constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookNotFound is returned when no book matches the given id.
	ErrBookNotFound = errors.New("book not found")

	// ErrContentNotFound is returned when no stored file matches the given
	// name or key.
	ErrContentNotFound = errors.New("content not found")
)

// Low-level storage operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level or bucket operation fails before any
// domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrStoreUnavailable is returned when the database cannot be reached.
	ErrStoreUnavailable = errors.New("store is unavailable")

	// ErrContentStorage is returned when reading or writing the content
	// bucket fails.
	ErrContentStorage = errors.New("content storage error")
)
