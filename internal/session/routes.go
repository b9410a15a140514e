package session

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the session endpoints under /sessions.
func RegisterRoutes(r chi.Router, store *Store) {
	h := NewHandler(store)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/press", h.Press)
			r.Delete("/", h.Delete)
		})
	})
}
