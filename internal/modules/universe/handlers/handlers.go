// Package handlers provides HTTP handlers for the symbol catalog.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/universe"
)

// Handler handles symbol catalog HTTP requests
type Handler struct {
	catalog *universe.Catalog
	log     zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(catalog *universe.Catalog, log zerolog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		log:     log.With().Str("handler", "universe").Logger(),
	}
}

// RegisterRoutes registers all catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/markets", h.HandleGetMarkets)
	r.Route("/symbols", func(r chi.Router) {
		r.Get("/available", h.HandleGetAvailableSymbols)
		r.Get("/popular", h.HandleGetPopularSymbols)
		r.Get("/search", h.HandleSearchSymbols)
	})
}

// HandleGetMarkets handles GET /api/markets
func (h *Handler) HandleGetMarkets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"markets": h.catalog.Markets(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetAvailableSymbols handles GET /api/symbols/available
func (h *Handler) HandleGetAvailableSymbols(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	symbols := h.catalog.SymbolsByCategory(category)

	var total int
	for _, group := range symbols {
		total += len(group)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"symbols":       symbols,
			"categories":    h.catalog.Categories(),
			"total_symbols": total,
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleGetPopularSymbols handles GET /api/symbols/popular
func (h *Handler) HandleGetPopularSymbols(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	symbols := h.catalog.Popular(limit)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"symbols": symbols,
			"count":   len(symbols),
		},
	})
}

// HandleSearchSymbols handles GET /api/symbols/search
func (h *Handler) HandleSearchSymbols(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}

	matches := h.catalog.Search(query)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"query":   query,
			"results": matches,
			"count":   len(matches),
		},
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}
