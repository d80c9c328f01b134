package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bookshelf/internal/validators"
	"github.com/MKhiriev/go-bookshelf/models"
)

// UserValidationService validates user requests before they reach the
// wrapped UserService.
type UserValidationService struct {
	UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *UserValidationService) CreateUser(ctx context.Context, request models.UserRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, request, validators.FieldEmail, validators.FieldPassword); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.UserService.CreateUser(ctx, request)
}

// UpdateUser validates only the fields present on request.
func (v *UserValidationService) UpdateUser(ctx context.Context, id string, request models.UserRequest) (models.User, error) {
	if fields := validators.PresentUserFields(request); len(fields) > 0 {
		if err := v.validator.Validate(ctx, request, fields...); err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}

	return v.UserService.UpdateUser(ctx, id, request)
}

func (v *UserValidationService) Wrap(inner UserService) UserService {
	v.UserService = inner
	return v
}

// BookValidationService validates book requests before they reach the
// wrapped BookService.
type BookValidationService struct {
	BookService
	validator validators.Validator
}

func NewBookValidationService() BookServiceWrapper {
	return &BookValidationService{
		validator: validators.NewBookValidator(),
	}
}

func (v *BookValidationService) CreateBook(ctx context.Context, request models.BookRequest) (models.Book, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.BookService.CreateBook(ctx, request)
}

func (v *BookValidationService) UpdateBook(ctx context.Context, id string, request models.BookRequest) (models.Book, error) {
	if err := v.validator.Validate(ctx, request); err != nil {
		return models.Book{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.BookService.UpdateBook(ctx, id, request)
}

func (v *BookValidationService) Wrap(inner BookService) BookService {
	v.BookService = inner
	return v
}
