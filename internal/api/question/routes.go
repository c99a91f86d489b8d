package question

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers question routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/questions", func(r chi.Router) {
		r.Post("/ask", h.Ask)
		r.Get("/", h.List)

		r.Route("/{question_id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
		})
	})
}
