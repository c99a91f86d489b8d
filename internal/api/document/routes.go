package document

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers document routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/documents", func(r chi.Router) {
		r.Post("/", h.Upload)
		r.Get("/", h.List)

		r.Route("/{document_id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Patch("/", h.Update)
			r.Delete("/", h.Delete)
			r.Get("/export", h.Export)
		})
	})
}
