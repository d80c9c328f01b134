package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=UserServiceWrapper,BookServiceWrapper

import (
	"context"

	"github.com/MKhiriev/go-bookshelf/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.UserRequest) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	CurrentUser(ctx context.Context, userID string) (models.User, error)
}

type UserService interface {
	ListUsers(ctx context.Context, params models.ListParams) (models.UserPage, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, request models.UserRequest) (models.User, error)
	UpdateUser(ctx context.Context, id string, request models.UserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	// SetSuspended marks the user as suspended or restores it. Repeating the
	// same call is a no-op.
	SetSuspended(ctx context.Context, id string, suspended bool) (models.User, error)
}

type BookService interface {
	ListBooks(ctx context.Context, params models.ListParams) (models.BookPage, error)
	GetBook(ctx context.Context, id string) (models.Book, error)
	CreateBook(ctx context.Context, request models.BookRequest) (models.Book, error)
	UpdateBook(ctx context.Context, id string, request models.BookRequest) (models.Book, error)
	DeleteBook(ctx context.Context, id string) error
	// ReconcileAuthors rebuilds every user's book set from the books' author
	// references and returns the number of users that changed.
	ReconcileAuthors(ctx context.Context) (int64, error)
}

type ContentService interface {
	// Upload streams content into the bucket and attaches it to the book.
	Upload(ctx context.Context, bookID string, content models.Content) (models.Book, error)
	// Download opens the content uploaded under filename. The caller must
	// close the returned body.
	Download(ctx context.Context, filename string) (models.Content, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.AppBuildInfo
}

// UserServiceWrapper defines middleware composition for UserService.
// Implementations wrap an existing UserService to add behavior such as
// validating.
type UserServiceWrapper interface {
	Wrap(UserService) UserService // returns a decorated UserService applying additional behavior
}

// BookServiceWrapper defines middleware composition for BookService.
type BookServiceWrapper interface {
	Wrap(BookService) BookService
}

// IDGenerator produces identifiers for new records and uploaded content.
type IDGenerator interface {
	Generate() string
}
