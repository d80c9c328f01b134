package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	pkgerrors "github.com/pkg/errors"
)

// stackTracer is implemented by errors created or wrapped by github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// fail reports err to the client. Known errors are translated to their
// status and message; anything else is passed to the terminal error stage.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	known, ok := lookupError(err)
	if !ok {
		h.renderError(w, r, err)
		return
	}

	log := logger.FromRequest(r)
	if known.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", known.status).Msg(known.message)
	} else {
		log.Debug().Err(err).Int("status", known.status).Msg(known.message)
	}

	if known.status == http.StatusForbidden {
		h.renderError(w, r, withStatus(known.status, errors.New(known.message)))
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: known.message}, known.status)
}

// renderError is the terminal error stage. Errors marked with 403 are
// rendered by the forbidden formatter; every other error is rendered with its
// stack trace, which production builds replace with a placeholder.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := http.StatusInternalServerError
	var marked *statusError
	if errors.As(err, &marked) {
		status = marked.status
	}

	if status == http.StatusForbidden {
		log.Warn().Err(err).Msg("access forbidden")
		utils.WriteJSON(w, models.MessageResponse{Message: app.MsgAccessForbidden + err.Error()}, status)
		return
	}

	log.Err(err).Int("status", status).Msg("request failed")

	utils.WriteJSON(w, models.ErrorResponse{Message: err.Error(), Stack: h.stack(err)}, status)
}

func (h *Handler) stack(err error) string {
	if h.production {
		return app.MsgStackPlaceholder
	}

	var traced stackTracer
	if !errors.As(err, &traced) {
		traced = pkgerrors.WithStack(err).(stackTracer)
	}

	return err.Error() + fmt.Sprintf("%+v", traced.StackTrace())
}

// notFound renders unmatched routes. It is also used for unmatched methods.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	url := r.RequestURI
	if url == "" {
		url = r.URL.RequestURI()
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgNotFound + url}, http.StatusNotFound)
}

// recoverer turns panics into 500 responses rendered by the terminal error
// stage. http.ErrAbortHandler is re-panicked so that the server aborts the
// response.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint // compared by identity
				panic(rec)
			}

			err, ok := rec.(error)
			if !ok {
				err = pkgerrors.Errorf("%v", rec)
			}
			if headersSent(w) {
				logger.FromRequest(r).Err(err).Msg("panic after response headers were sent")
				return
			}
			h.renderError(w, r, pkgerrors.WithStack(err))
		}()

		next.ServeHTTP(w, r)
	})
}
