package http

import (
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	customHeader      = "X-Custom-Header"
	customHeaderValue = "CustomHeaderValue"
)

// fakeAuthResponse is the body of a successful /fake-auth call.
type fakeAuthResponse struct {
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(customHeader, customHeaderValue)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(app.MsgIndex))
}

// syncError fails synchronously and hands the error to the terminal stage.
func (h *Handler) syncError(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, pkgerrors.New(app.MsgSimulatedServerError))
}

// asyncError fails inside a goroutine; the error is collected by the group
// and forwarded to the terminal stage.
func (h *Handler) asyncError(w http.ResponseWriter, r *http.Request) {
	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return pkgerrors.New(app.MsgSimulatedAsyncError)
	})

	if err := g.Wait(); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fakeAuth authenticates every other request at random.
func (h *Handler) fakeAuth(w http.ResponseWriter, r *http.Request) {
	if h.random() > 0.5 {
		utils.WriteJSON(w, fakeAuthResponse{
			Message: app.MsgAuthenticated,
			Data:    map[string]string{"user": "John Doe"},
		}, http.StatusOK)
		return
	}

	h.renderError(w, r, withStatus(http.StatusForbidden, pkgerrors.New(app.MsgForbidden)))
}
