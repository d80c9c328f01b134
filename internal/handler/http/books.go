package http

import (
	"net/http"

	"github.com/MKhiriev/go-bookshelf/internal/app"
	"github.com/MKhiriev/go-bookshelf/internal/logger"
	"github.com/MKhiriev/go-bookshelf/internal/utils"
	"github.com/MKhiriev/go-bookshelf/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	page, err := h.services.BookService.ListBooks(r.Context(), listParamsFromRequest(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, page, http.StatusOK)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.services.BookService.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, book, http.StatusOK)
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) {
	var request models.BookRequest
	if err := decodeJSON(r, &request); err != nil {
		h.fail(w, r, err)
		return
	}

	book, err := h.services.BookService.CreateBook(r.Context(), request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("id", book.ID).Str("author", book.AuthorID).Msg("book created")
	utils.WriteJSON(w, book, http.StatusCreated)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) {
	var request models.BookRequest
	if err := decodeJSON(r, &request); err != nil {
		h.fail(w, r, err)
		return
	}

	book, err := h.services.BookService.UpdateBook(r.Context(), chi.URLParam(r, "id"), request)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, book, http.StatusOK)
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.services.BookService.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgBookDeleted}, http.StatusOK)
}
