package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/models"
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id",
	"first_name",
	"last_name",
	"name",
	"email",
	"password",
	"books",
	"suspended",
}

var bookColumns = []string{
	"id",
	"name",
	"pages",
	"price",
	"author_id",
	"COALESCE(original_filename, '') AS original_filename",
	"COALESCE(file_id, '') AS file_id",
}

// userSortColumns maps allowed user sort fields to their columns.
var userSortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
}

// bookSortColumns maps allowed book sort fields to their columns.
var bookSortColumns = map[string]string{
	"name":  "name",
	"pages": "pages",
	"price": "price",
}

// rebuildBookRefs recomputes users.books from books.author_id for every user
// whose stored set differs from the computed one.
const rebuildBookRefs = `UPDATE users AS u
SET books = r.refs
FROM (
    SELECT usr.id, COALESCE(jsonb_agg(b.id::text ORDER BY b.id) FILTER (WHERE b.id IS NOT NULL), '[]'::jsonb) AS refs
    FROM users AS usr
    LEFT JOIN books AS b ON b.author_id = usr.id
    GROUP BY usr.id
) AS r
WHERE u.id = r.id AND NOT (u.books @> r.refs AND r.refs @> u.books)`

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// likePattern turns a search key into a case-insensitive substring pattern
// matching the key literally.
func likePattern(key string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(key)
	return "%" + escaped + "%"
}

func orderClauses(column string, descending bool) []string {
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return []string{column + " " + direction, "id ASC"}
}

func toSQL(ctx context.Context, funcName string, builder sq.Sqlizer) (string, []any, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error building query")
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(ctx context.Context, user models.User) (string, []any, error) {
	builder := psql.Insert(user.TableName()).
		Columns("id", "first_name", "last_name", "email", "password", "books", "suspended").
		Values(user.ID, user.FirstName, user.LastName, user.Email, user.Password, sq.Expr("'[]'::jsonb"), user.Suspended).
		Suffix(returning(userColumns))

	return toSQL(ctx, "buildInsertUserQuery", builder)
}

func buildSelectUserQuery(ctx context.Context, where sq.Eq) (string, []any, error) {
	builder := psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where)

	return toSQL(ctx, "buildSelectUserQuery", builder)
}

func buildSelectUsersByIDsQuery(ctx context.Context, ids []string) (string, []any, error) {
	builder := psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": ids}).
		OrderBy("id ASC")

	return toSQL(ctx, "buildSelectUsersByIDsQuery", builder)
}

// legacyNameInUse matches rows whose first and last names are derived from
// the legacy combined name (see models.User.Names).
var legacyNameInUse = sq.Expr("(first_name = '' OR last_name = '')")

func userFilter(params models.ListParams) sq.Sqlizer {
	filter := sq.And{sq.Eq{"suspended": false}}
	if params.SearchKey != "" {
		pattern := likePattern(params.SearchKey)
		filter = append(filter, sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
			sq.ILike{"email": pattern},
			// legacy name only counts while it is the source of the names
			sq.And{legacyNameInUse, sq.ILike{"name": pattern}},
		})
	}

	return filter
}

func buildListUsersQuery(ctx context.Context, params models.ListParams) (string, []any, error) {
	column, ok := userSortColumns[params.Sort]
	if !ok {
		column = userSortColumns["firstName"]
	}

	builder := psql.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(userFilter(params)).
		OrderBy(orderClauses(column, params.Descending())...).
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset))

	return toSQL(ctx, "buildListUsersQuery", builder)
}

func buildCountUsersQuery(ctx context.Context, params models.ListParams) (string, []any, error) {
	builder := psql.Select("COUNT(*)").
		From(models.User{}.TableName()).
		Where(userFilter(params))

	return toSQL(ctx, "buildCountUsersQuery", builder)
}

func buildUpdateUserQuery(ctx context.Context, id string, update models.UserUpdate) (string, []any, error) {
	set := make(map[string]any, 5)
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}
	if update.Suspended != nil {
		set["suspended"] = *update.Suspended
	}

	builder := psql.Update(models.User{}.TableName()).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns))

	return toSQL(ctx, "buildUpdateUserQuery", builder)
}

func buildDeleteUserQuery(ctx context.Context, id string) (string, []any, error) {
	builder := psql.Delete(models.User{}.TableName()).Where(sq.Eq{"id": id})

	return toSQL(ctx, "buildDeleteUserQuery", builder)
}

func buildAddBookRefQuery(ctx context.Context, userID, bookID string) (string, []any, error) {
	builder := psql.Update(models.User{}.TableName()).
		Set("books", sq.Expr("CASE WHEN books @> to_jsonb(?::text) THEN books ELSE books || to_jsonb(?::text) END", bookID, bookID)).
		Where(sq.Eq{"id": userID})

	return toSQL(ctx, "buildAddBookRefQuery", builder)
}

func buildRemoveBookRefQuery(ctx context.Context, userID, bookID string) (string, []any, error) {
	builder := psql.Update(models.User{}.TableName()).
		Set("books", sq.Expr("books - ?::text", bookID)).
		Where(sq.Eq{"id": userID})

	return toSQL(ctx, "buildRemoveBookRefQuery", builder)
}

// ── books ─────────────────────────────────────────────────────────────────────

func buildInsertBookQuery(ctx context.Context, book models.Book) (string, []any, error) {
	builder := psql.Insert(book.TableName()).
		Columns("id", "name", "pages", "price", "author_id").
		Values(book.ID, book.Name, book.Pages, book.Price, book.AuthorID).
		Suffix(returning(bookColumns))

	return toSQL(ctx, "buildInsertBookQuery", builder)
}

func buildSelectBookByIDQuery(ctx context.Context, id string) (string, []any, error) {
	builder := psql.Select(bookColumns...).
		From(models.Book{}.TableName()).
		Where(sq.Eq{"id": id})

	return toSQL(ctx, "buildSelectBookByIDQuery", builder)
}

func buildSelectBookByFilenameQuery(ctx context.Context, filename string) (string, []any, error) {
	builder := psql.Select(bookColumns...).
		From(models.Book{}.TableName()).
		Where(sq.Eq{"original_filename": filename}).
		Where(sq.NotEq{"file_id": nil}).
		OrderBy("id ASC").
		Limit(1)

	return toSQL(ctx, "buildSelectBookByFilenameQuery", builder)
}

func filterBooks(builder sq.SelectBuilder, params models.ListParams) sq.SelectBuilder {
	if params.SearchKey == "" {
		return builder
	}
	return builder.Where(sq.ILike{"name": likePattern(params.SearchKey)})
}

func buildListBooksQuery(ctx context.Context, params models.ListParams) (string, []any, error) {
	column, ok := bookSortColumns[params.Sort]
	if !ok {
		column = bookSortColumns["name"]
	}

	builder := filterBooks(psql.Select(bookColumns...).From(models.Book{}.TableName()), params).
		OrderBy(orderClauses(column, params.Descending())...).
		Limit(uint64(params.Limit)).
		Offset(uint64(params.Offset))

	return toSQL(ctx, "buildListBooksQuery", builder)
}

func buildCountBooksQuery(ctx context.Context, params models.ListParams) (string, []any, error) {
	builder := filterBooks(psql.Select("COUNT(*)").From(models.Book{}.TableName()), params)

	return toSQL(ctx, "buildCountBooksQuery", builder)
}

func buildUpdateBookQuery(ctx context.Context, book models.Book) (string, []any, error) {
	builder := psql.Update(book.TableName()).
		SetMap(map[string]any{
			"name":      book.Name,
			"pages":     book.Pages,
			"price":     book.Price,
			"author_id": book.AuthorID,
		}).
		Where(sq.Eq{"id": book.ID}).
		Suffix(returning(bookColumns))

	return toSQL(ctx, "buildUpdateBookQuery", builder)
}

func buildDeleteBookQuery(ctx context.Context, id string) (string, []any, error) {
	builder := psql.Delete(models.Book{}.TableName()).
		Where(sq.Eq{"id": id}).
		Suffix(returning(bookColumns))

	return toSQL(ctx, "buildDeleteBookQuery", builder)
}

func buildAttachContentQuery(ctx context.Context, id, filename, fileID string) (string, []any, error) {
	builder := psql.Update(models.Book{}.TableName()).
		SetMap(map[string]any{
			"file_id":           fileID,
			"original_filename": filename,
		}).
		Where(sq.Eq{"id": id}).
		Suffix(returning(bookColumns))

	return toSQL(ctx, "buildAttachContentQuery", builder)
}
