// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the go-bookshelf REST API.
//
// The primary abstraction is [ServerAdapter], which hides request building,
// token handling and response decoding from callers. The package ships an
// HTTP implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error responses are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrNotFound] for 404, [ErrUnauthorized]
// for 401). The message sent by the server is kept in the error text.
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-bookshelf/models"
)

// ServerAdapter defines communication with the go-bookshelf server.
// Every method except Register, Login and Download requires a token, set
// either explicitly via SetToken or implicitly by Register or Login.
type ServerAdapter interface {
	// SetToken stores the token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the token currently stored in the adapter, or an empty
	// string if no token has been set yet.
	Token() string

	// Register creates an account and stores the issued token.
	Register(ctx context.Context, request models.UserRequest) (models.AuthResponse, error)

	// Login authenticates with email and password and stores the issued token.
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// Me returns the user the stored token was issued to.
	Me(ctx context.Context) (models.User, error)

	ListUsers(ctx context.Context, params models.ListParams) (models.UserPage, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, request models.UserRequest) (models.User, error)
	UpdateUser(ctx context.Context, id string, request models.UserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// SetSuspended suspends the user when suspended is true and restores it
	// otherwise.
	SetSuspended(ctx context.Context, id string, suspended bool) (models.User, error)

	ListBooks(ctx context.Context, params models.ListParams) (models.BookPage, error)
	GetBook(ctx context.Context, id string) (models.Book, error)
	CreateBook(ctx context.Context, request models.BookRequest) (models.Book, error)
	UpdateBook(ctx context.Context, id string, request models.BookRequest) (models.Book, error)
	DeleteBook(ctx context.Context, id string) error

	// Upload attaches the content of r to the book under filename.
	Upload(ctx context.Context, bookID, filename string, r io.Reader) (models.UploadResponse, error)

	// Download copies the file uploaded under filename to w and returns the
	// number of bytes written.
	Download(ctx context.Context, filename string, w io.Writer) (int64, error)
}
