// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrNoToken is returned by the auth middleware when the request carries
	// neither an "X-Auth-Token" nor an "Authorization" header.
	ErrNoToken = errors.New("no token in request")

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON in request body")

	// ErrNoUserInContext is returned by handlers behind the auth middleware
	// when the authenticated user id is missing from the request context.
	ErrNoUserInContext = errors.New("no authenticated user in request context")
)

// statusError attaches a response status to an error before it reaches the
// terminal error stage.
type statusError struct {
	status int
	err    error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

// withStatus marks err to be rendered with status.
func withStatus(status int, err error) error {
	return &statusError{status: status, err: err}
}
