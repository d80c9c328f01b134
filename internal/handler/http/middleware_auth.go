package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/service"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
)

const authTokenHeader = "X-Auth-Token"

// auth is an HTTP middleware that enforces token-based authentication.
//
// The token is read from the "X-Auth-Token" header. When that header is absent
// an "Authorization: Bearer <token>" header is accepted instead. The token is
// validated via [service.AuthService.ParseToken] and, on success, the
// authenticated user's ID is stored in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler.
//
// Requests are rejected with 401 Unauthorized before any store access when no
// token is present or the token is expired, signed with another key or issued
// by someone else.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			h.fail(w, r, ErrNoToken)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("token rejected")
			h.fail(w, r, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest returns the raw token of the request or an empty string.
func tokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(authTokenHeader); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return ""
	}

	return token
}
