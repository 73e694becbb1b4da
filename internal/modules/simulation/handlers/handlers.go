// Package handlers provides HTTP handlers for Monte Carlo simulations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/simulation"
)

// Handler handles simulation HTTP requests
type Handler struct {
	simulator    *simulation.Simulator
	defaultPaths int
	log          zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(simulator *simulation.Simulator, defaultPaths int, log zerolog.Logger) *Handler {
	return &Handler{
		simulator:    simulator,
		defaultPaths: defaultPaths,
		log:          log.With().Str("handler", "simulation").Logger(),
	}
}

// RegisterRoutes registers all simulation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/monte-carlo", h.HandleRunSimulation)
}

// HandleRunSimulation handles POST /api/monte-carlo
func (h *Handler) HandleRunSimulation(w http.ResponseWriter, r *http.Request) {
	var req simulation.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.NumSimulations == 0 {
		req.NumSimulations = h.defaultPaths
	}
	if req.TimeHorizon == 0 {
		req.TimeHorizon = 1
	}
	if req.InitialValue == 0 {
		req.InitialValue = 100000
	}

	result, err := h.simulator.Run(r.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Simulation failed")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
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
