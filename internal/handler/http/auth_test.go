// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/service"
	"github.com/MKhiriev/go-bookshelf/internal/store"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHandlerWithAuth builds a Handler with the given AuthService fake.
func newHandlerWithAuth(auth *fakeAuthService) *Handler {
	svcs := newFakeServices()
	svcs.AuthService = auth
	return newTestHandlerWith(svcs)
}

var registeredUser = models.User{ID: testUserID, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"}

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	var got models.UserRequest
	h := newHandlerWithAuth(&fakeAuthService{
		registerUserFn: func(_ context.Context, request models.UserRequest) (models.User, error) {
			got = request
			return registeredUser, nil
		},
	})

	rr := serve(t, h, http.MethodPost, "/auth/register",
		`{"firstName":"Ann","lastName":"Lee","email":"ann@example.com","password":"s3cret"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, testToken, rr.Header().Get(authTokenHeader))

	resp := decodeBody[models.AuthResponse](t, rr)
	assert.Equal(t, testToken, resp.Token)
	assert.Equal(t, testUserID, resp.User.ID)
	assert.Equal(t, "ann@example.com", resp.User.Email)

	require.NotNil(t, got.Email)
	require.NotNil(t, got.Password)
	assert.Equal(t, "ann@example.com", *got.Email)
	assert.Equal(t, "s3cret", *got.Password)
	assert.NotContains(t, rr.Body.String(), "s3cret")
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		registerErr error
		tokenErr    error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid JSON",
			body:        `{bad`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: app.MsgInvalidJSON,
		},
		{
			name:        "empty body",
			body:        "",
			wantStatus:  http.StatusBadRequest,
			wantMessage: app.MsgInvalidJSON,
		},
		{
			name:        "invalid data",
			body:        `{"email":""}`,
			registerErr: fmt.Errorf("%w: empty email", service.ErrInvalidDataProvided),
			wantStatus:  http.StatusBadRequest,
			wantMessage: app.MsgInvalidDataProvided,
		},
		{
			name:        "email already exists",
			body:        `{"email":"ann@example.com","password":"x"}`,
			registerErr: fmt.Errorf("error creating user: %w", store.ErrEmailAlreadyExists),
			wantStatus:  http.StatusBadRequest,
			wantMessage: app.MsgEmailAlreadyExists,
		},
		{
			name:        "store failure",
			body:        `{"email":"ann@example.com","password":"x"}`,
			registerErr: fmt.Errorf("%w: connection refused", store.ErrStoreUnavailable),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: app.MsgServerError,
		},
		{
			name:        "token creation fails",
			body:        `{"email":"ann@example.com","password":"x"}`,
			tokenErr:    fmt.Errorf("%w: signing", service.ErrTokenCreationFailed),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "token creation failed: signing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuth(&fakeAuthService{
				registerUserFn: func(context.Context, models.UserRequest) (models.User, error) {
					return registeredUser, tt.registerErr
				},
				createTokenFn: func(context.Context, models.User) (models.Token, error) {
					return models.Token{SignedString: testToken}, tt.tokenErr
				},
			})

			rr := serve(t, h, http.MethodPost, "/auth/register", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, messageOf(t, rr))
			assert.Empty(t, rr.Header().Get(authTokenHeader))
		})
	}
}

// ─────────────────────────────────────────────
// login
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	h := newHandlerWithAuth(&fakeAuthService{
		loginFn: func(_ context.Context, credentials models.Credentials) (models.User, error) {
			assert.Equal(t, models.Credentials{Email: "ann@example.com", Password: "s3cret"}, credentials)
			return registeredUser, nil
		},
	})

	rr := serve(t, h, http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"s3cret"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testToken, rr.Header().Get(authTokenHeader))
	assert.Equal(t, testToken, decodeBody[models.AuthResponse](t, rr).Token)
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name        string
		loginErr    error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "unknown email",
			loginErr:    fmt.Errorf("%w: %w", service.ErrWrongPassword, store.ErrUserNotFound),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: app.MsgInvalidEmailPassword,
		},
		{
			name:        "wrong password",
			loginErr:    service.ErrWrongPassword,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: app.MsgInvalidEmailPassword,
		},
		{
			name:        "suspended user",
			loginErr:    service.ErrUserSuspended,
			wantStatus:  http.StatusForbidden,
			wantMessage: app.MsgAccessForbidden + "user is suspended",
		},
		{
			name:        "invalid data",
			loginErr:    service.ErrInvalidDataProvided,
			wantStatus:  http.StatusBadRequest,
			wantMessage: app.MsgInvalidDataProvided,
		},
		{
			name:        "unexpected error",
			loginErr:    errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuth(&fakeAuthService{
				loginFn: func(context.Context, models.Credentials) (models.User, error) {
					return models.User{}, tt.loginErr
				},
			})

			rr := serve(t, h, http.MethodPost, "/auth/login", `{"email":"ann@example.com","password":"x"}`)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMessage, messageOf(t, rr))
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	h := newHandlerWithAuth(&fakeAuthService{})

	rr := serve(t, h, http.MethodPost, "/auth/login", `not json`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgInvalidJSON, messageOf(t, rr))
}

// ─────────────────────────────────────────────
// me
// ─────────────────────────────────────────────

func TestMe_ReturnsCurrentUser(t *testing.T) {
	h := newHandlerWithAuth(&fakeAuthService{
		currentUserFn: func(_ context.Context, userID string) (models.User, error) {
			assert.Equal(t, testUserID, userID)
			return registeredUser, nil
		},
	})

	rr := serve(t, h, http.MethodGet, "/auth/me", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testUserID, decodeBody[models.User](t, rr).ID)
}

func TestMe_UserGone(t *testing.T) {
	h := newHandlerWithAuth(&fakeAuthService{
		currentUserFn: func(context.Context, string) (models.User, error) {
			return models.User{}, store.ErrUserNotFound
		},
	})

	rr := serve(t, h, http.MethodGet, "/auth/me", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgUserNotFound, messageOf(t, rr))
}

func TestMe_WithoutUserInContext(t *testing.T) {
	h := newHandlerWithAuth(&fakeAuthService{})

	rr := httptest.NewRecorder()
	h.me(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.True(t, strings.HasPrefix(messageOf(t, rr), "No token"))
}
