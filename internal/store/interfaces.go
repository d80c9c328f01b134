package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"io"

	"github.com/MKhiriev/go-bookshelf/models"
)

// UserRepository persists users in the "users" table.
//
// Lookups by id return [ErrUserNotFound] when no row matches, including ids
// that are not well-formed UUIDs.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// FindUsersByIDs returns the users matching ids. Unknown ids are skipped.
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// ListUsers returns one page of non-suspended users and the total number
	// of users matching the search key.
	ListUsers(ctx context.Context, params models.ListParams) ([]models.User, int, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// AddBookRef adds bookID to the user's book set. Adding an id already in
	// the set is a no-op.
	AddBookRef(ctx context.Context, userID, bookID string) error
	// RemoveBookRef removes bookID from the user's book set.
	RemoveBookRef(ctx context.Context, userID, bookID string) error
	// RebuildBookRefs recomputes every user's book set from the books table
	// and returns the number of users whose set changed.
	RebuildBookRefs(ctx context.Context) (int64, error)
}

// BookRepository persists books in the "books" table.
type BookRepository interface {
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
	FindBookByID(ctx context.Context, id string) (models.Book, error)
	// FindBookByFilename returns the first book (ordered by id) whose
	// uploaded content has the given original filename.
	FindBookByFilename(ctx context.Context, filename string) (models.Book, error)
	ListBooks(ctx context.Context, params models.ListParams) ([]models.Book, int, error)
	UpdateBook(ctx context.Context, book models.Book) (models.Book, error)
	// DeleteBook removes the book and returns it as it was before deletion.
	DeleteBook(ctx context.Context, id string) (models.Book, error)
	// AttachContent records the uploaded file of a book.
	AttachContent(ctx context.Context, id, filename, fileID string) (models.Book, error)
}

// ContentStorage is the bucket holding uploaded book files. Content is
// streamed in both directions.
type ContentStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	// Download opens the stored content. Implementations may report a
	// missing key lazily, on the first Read.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
