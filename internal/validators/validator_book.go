// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"math"
	"strings"

	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
)

const (
	FieldName   = "name"
	FieldPages  = "pages"
	FieldPrice  = "price"
	FieldAuthor = "author"

	// MaxPages is the largest page count the books.pages integer column holds.
	MaxPages = math.MaxInt32
)

type BookValidator struct {
}

func NewBookValidator() Validator {
	return &BookValidator{}
}

func (v *BookValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.BookRequest:
		return v.validateBookRequest(ctx, value, fields...)
	case *models.BookRequest:
		return v.validateBookRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *BookValidator) validateBookRequest(_ context.Context, request models.BookRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPages, FieldPrice, FieldAuthor}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(request.Name) == "" {
				return ErrEmptyBookName
			}
		case FieldPages:
			if request.Pages < 0 {
				return ErrNegativePages
			}
			if request.Pages > MaxPages {
				return ErrTooManyPages
			}
		case FieldPrice:
			if request.Price < 0 || math.IsNaN(request.Price) || math.IsInf(request.Price, 0) {
				return ErrNegativePrice
			}
		case FieldAuthor:
			if !utils.IsUUID(request.Author) {
				return ErrInvalidAuthorID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
