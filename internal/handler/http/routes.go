package http

import (
	"github.com/go-chi/chi/v5"
)

// Init builds the router with every route of the API.
//
// Each request gets a trace id and an access log entry. Panics are recovered
// and rendered by the terminal error stage. Unmatched routes and methods are
// answered with 404.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.recoverer, withGZip)

	router.Get("/", h.index)
	router.Get("/sync-error", h.syncError)
	router.Get("/async-error", h.asyncError)
	router.Get("/fake-auth", h.fakeAuth)
	router.Get("/version", h.getServerVersion)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.With(h.auth).Get("/me", h.me)
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
		r.Patch("/{id}/suspend", h.setSuspended(true))
		r.Patch("/{id}/restore", h.setSuspended(false))
	})

	router.Route("/books", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.listBooks)
		r.Post("/", h.createBook)
		r.Get("/{id}", h.getBook)
		r.Put("/{id}", h.updateBook)
		r.Delete("/{id}", h.deleteBook)
	})

	router.Route("/content", func(r chi.Router) {
		r.With(h.auth).Patch("/upload/{id}", h.upload)
		r.Get("/download/{filename}", h.download)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	return router
}
