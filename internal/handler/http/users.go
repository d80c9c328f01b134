package http

import (
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.services.UserService.ListUsers(r.Context(), listParamsFromRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var request models.UserRequest
	if err := decodeJSON(r, &request); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.services.UserService.CreateUser(r.Context(), request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("id", user.ID).Msg("user created")
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var request models.UserRequest
	if err := decodeJSON(r, &request); err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), chi.URLParam(r, "id"), request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgUserDeleted}, http.StatusOK)
}

// setSuspended returns a handler that suspends or restores the user.
func (h *Handler) setSuspended(suspended bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.services.UserService.SetSuspended(r.Context(), chi.URLParam(r, "id"), suspended)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		logger.FromRequest(r).Info().Str("id", user.ID).Bool("suspended", suspended).Msg("user suspension changed")
		utils.WriteJSON(w, user, http.StatusOK)
	}
}
