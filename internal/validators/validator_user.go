package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-bookshelf/models"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate checks user requests and login credentials. Without fields both
// email and password are required.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserRequest:
		return v.validateUserRequest(ctx, value, fields...)
	case *models.UserRequest:
		return v.validateUserRequest(ctx, *value, fields...)

	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUserRequest(_ context.Context, request models.UserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if isBlank(request.Email) {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if request.Password == nil || *request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateCredentials(_ context.Context, credentials models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(credentials.Email) == "" {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if credentials.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// PresentUserFields returns the validated fields set on an update request,
// so that absent fields are left out of validation.
func PresentUserFields(request models.UserRequest) []string {
	fields := make([]string, 0, 2)
	if request.Email != nil {
		fields = append(fields, FieldEmail)
	}
	if request.Password != nil {
		fields = append(fields, FieldPassword)
	}
	return fields
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
