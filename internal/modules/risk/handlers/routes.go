package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all risk analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Post("/analysis", h.HandleAnalysis)
		r.Post("/stress-test", h.HandleStressTest)
		r.Get("/scenarios", h.HandleGetScenarios)
	})
}
