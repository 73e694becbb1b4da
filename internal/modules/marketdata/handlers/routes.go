package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all market data routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/historical-data/{symbol}", func(w http.ResponseWriter, r *http.Request) {
			symbol := chi.URLParam(r, "symbol")
			h.HandleGetHistoricalData(w, r, symbol)
		})
		r.Get("/live-quote/{symbol}", func(w http.ResponseWriter, r *http.Request) {
			symbol := chi.URLParam(r, "symbol")
			h.HandleGetLiveQuote(w, r, symbol)
		})
		r.Post("/live-quotes", h.HandleGetLiveQuotes)
		r.Get("/status", h.HandleGetMarketStatus)
		r.Get("/stream", h.HandleQuoteStream)
	})
}
