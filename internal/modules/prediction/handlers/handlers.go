// Package handlers provides HTTP handlers for risk predictions.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/prediction"
)

// Handler handles prediction HTTP requests
type Handler struct {
	predictor *prediction.Predictor
	log       zerolog.Logger
}

// NewHandler creates a new prediction handler
func NewHandler(predictor *prediction.Predictor, log zerolog.Logger) *Handler {
	return &Handler{
		predictor: predictor,
		log:       log.With().Str("handler", "prediction").Logger(),
	}
}

// RegisterRoutes registers all prediction routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/predict/risk", h.HandlePredictRisk)
}

// HandlePredictRisk handles POST /api/predict/risk
func (h *Handler) HandlePredictRisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbols     []string `json:"symbols"`
		TimeHorizon int      `json:"time_horizon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		h.writeError(w, http.StatusBadRequest, "symbols is required")
		return
	}
	if req.TimeHorizon == 0 {
		req.TimeHorizon = 1
	}

	report := h.predictor.PredictRisk(r.Context(), req.Symbols, req.TimeHorizon)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": report,
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
