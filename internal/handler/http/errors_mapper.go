package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/service"
	"github.com/MKhiriev/go-bookshelf/internal/store"
)

// publicError is the status and message a known error is reported with.
type publicError struct {
	status  int
	message string
}

// errorStatusMap lists errors handlers translate locally. It is a slice
// because a wrapped error may match several entries; the first one wins.
var errorStatusMap = []struct {
	target error
	publicError
}{
	{ErrInvalidJSON, publicError{http.StatusBadRequest, app.MsgInvalidJSON}},
	{service.ErrInvalidDataProvided, publicError{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrMissingFile, publicError{http.StatusBadRequest, app.MsgFileIsMissing}},
	{store.ErrEmailAlreadyExists, publicError{http.StatusBadRequest, app.MsgEmailAlreadyExists}},

	{ErrNoToken, publicError{http.StatusUnauthorized, app.MsgNoToken}},
	{service.ErrTokenIsExpiredOrInvalid, publicError{http.StatusUnauthorized, app.MsgTokenIsNotValid}},
	{service.ErrWrongPassword, publicError{http.StatusUnauthorized, app.MsgInvalidEmailPassword}},

	{service.ErrUserSuspended, publicError{http.StatusForbidden, service.ErrUserSuspended.Error()}},

	{store.ErrUserNotFound, publicError{http.StatusNotFound, app.MsgUserNotFound}},
	{store.ErrBookNotFound, publicError{http.StatusNotFound, app.MsgBookNotFound}},
	{store.ErrContentNotFound, publicError{http.StatusNotFound, app.MsgNoFileExists}},

	{store.ErrStoreUnavailable, publicError{http.StatusInternalServerError, app.MsgServerError}},
	{store.ErrBuildingSQLQuery, publicError{http.StatusInternalServerError, app.MsgServerError}},
	{store.ErrExecutingQuery, publicError{http.StatusInternalServerError, app.MsgServerError}},
	{store.ErrScanningRow, publicError{http.StatusInternalServerError, app.MsgServerError}},
	{store.ErrScanningRows, publicError{http.StatusInternalServerError, app.MsgServerError}},
	{store.ErrContentStorage, publicError{http.StatusInternalServerError, app.MsgServerError}},
}

// lookupError returns the public status and message of a known error.
func lookupError(err error) (publicError, bool) {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.target) {
			return entry.publicError, true
		}
	}
	return publicError{}, false
}

func statusFromError(err error) int {
	if known, ok := lookupError(err); ok {
		return known.status
	}

	var withStatus *statusError
	if errors.As(err, &withStatus) {
		return withStatus.status
	}

	return http.StatusInternalServerError
}
