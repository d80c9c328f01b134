package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail    = errors.New("email is required")
	ErrEmptyPassword = errors.New("password is required")

	ErrEmptyBookName   = errors.New("book name is required")
	ErrNegativePages   = errors.New("pages cannot be negative")
	ErrTooManyPages    = errors.New("pages exceed the supported maximum")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidAuthorID = errors.New("invalid author id")
)
