package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection.
func NewUserRepository(db *DB) UserRepository {
	db.logger.Debug().Msg("creating user repository")
	return &userRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Name, &user.Email, &user.Password, &user.Books, &user.Suspended)
	return user, err
}

// userError translates a driver error of a single-user statement.
func userError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}

	err = classifyError(err)
	switch {
	case errors.Is(err, errUniqueViolation):
		return fmt.Errorf("%w: %w", ErrEmailAlreadyExists, err)
	case errors.Is(err, errInvalidIdentifier):
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	default:
		return err
	}
}

// CreateUser persists a new user and returns the canonical database
// representation of the account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, userError(err)
	}

	return created, nil
}

// FindUserByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	if !utils.IsUUID(id) {
		return models.User{}, ErrUserNotFound
	}

	return r.findUser(ctx, "*userRepository.FindUserByID", map[string]any{"id": id})
}

// FindUserByEmail returns the user with the given email or [ErrUserNotFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", map[string]any{"email": email})
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where map[string]any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserQuery(ctx, where)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error selecting user")
		}
		return models.User{}, userError(err)
	}

	return user, nil
}

// FindUsersByIDs returns the users matching ids. Malformed and unknown ids
// are skipped.
func (r *userRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	log := logger.FromContext(ctx)

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if utils.IsUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []models.User{}, nil
	}

	query, args, err := buildSelectUsersByIDsQuery(ctx, valid)
	if err != nil {
		return nil, err
	}

	users, err := r.queryUsers(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUsersByIDs").Msg("error selecting users")
		return nil, err
	}

	return users, nil
}

// ListUsers returns one page of non-suspended users and the number of users
// matching the filter regardless of pagination.
func (r *userRepository) ListUsers(ctx context.Context, params models.ListParams) ([]models.User, int, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountUsersQuery(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error counting users")
		return nil, 0, classifyError(err)
	}

	query, args, err := buildListUsersQuery(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	users, err := r.queryUsers(ctx, query, args)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) queryUsers(ctx context.Context, query string, args []any) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser changes the non-nil fields of update and returns the updated
// user. An empty update returns the current user unchanged.
func (r *userRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if !utils.IsUUID(id) {
		return models.User{}, ErrUserNotFound
	}
	if update.IsEmpty() {
		return r.FindUserByID(ctx, id)
	}

	query, args, err := buildUpdateUserQuery(ctx, id, update)
	if err != nil {
		return models.User{}, err
	}

	updated, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		}
		return models.User{}, userError(err)
	}

	return updated, nil
}

// DeleteUser removes the user. Books authored by the user are left intact.
func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	if !utils.IsUUID(id) {
		return ErrUserNotFound
	}

	query, args, err := buildDeleteUserQuery(ctx, id)
	if err != nil {
		return err
	}

	return r.execAffectingUser(ctx, "*userRepository.DeleteUser", query, args)
}

// AddBookRef adds bookID to the user's book set.
func (r *userRepository) AddBookRef(ctx context.Context, userID, bookID string) error {
	if !utils.IsUUID(userID) {
		return ErrUserNotFound
	}

	query, args, err := buildAddBookRefQuery(ctx, userID, bookID)
	if err != nil {
		return err
	}

	return r.execAffectingUser(ctx, "*userRepository.AddBookRef", query, args)
}

// RemoveBookRef removes bookID from the user's book set.
func (r *userRepository) RemoveBookRef(ctx context.Context, userID, bookID string) error {
	if !utils.IsUUID(userID) {
		return ErrUserNotFound
	}

	query, args, err := buildRemoveBookRefQuery(ctx, userID, bookID)
	if err != nil {
		return err
	}

	return r.execAffectingUser(ctx, "*userRepository.RemoveBookRef", query, args)
}

// execAffectingUser runs a statement targeting a single user and reports
// [ErrUserNotFound] when no row was affected.
func (r *userRepository) execAffectingUser(ctx context.Context, funcName, query string, args []any) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing statement")
		return userError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// RebuildBookRefs recomputes every user's book set from the books table.
func (r *userRepository) RebuildBookRefs(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, rebuildBookRefs)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RebuildBookRefs").Msg("error rebuilding book references")
		return 0, classifyError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}
