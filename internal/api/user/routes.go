package user

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers public account routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/register", h.Register)
	r.Post("/token", h.Token)
}
