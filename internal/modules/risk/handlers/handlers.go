// Package handlers provides HTTP handlers for risk analysis operations.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/calculations"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk"
)

const (
	cacheNamespace = "risk"
	cacheTTL       = 5 * time.Minute
)

// Handler handles risk analysis HTTP requests
type Handler struct {
	calculator *risk.Calculator
	cache      *calculations.Cache
	log        zerolog.Logger
}

// NewHandler creates a new risk handler
func NewHandler(calculator *risk.Calculator, cache *calculations.Cache, log zerolog.Logger) *Handler {
	return &Handler{
		calculator: calculator,
		cache:      cache,
		log:        log.With().Str("handler", "risk").Logger(),
	}
}

// HandleAnalysis handles POST /api/risk/analysis
func (h *Handler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req risk.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ConfidenceLevel == 0 {
		req.ConfidenceLevel = 0.95
	}
	if req.TimeHorizon == 0 {
		req.TimeHorizon = 1
	}

	if err := risk.ValidateRequest(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := analysisCacheKey(&req)
	if h.cache != nil {
		var cached risk.Analysis
		if err := h.cache.Get(cacheNamespace, key, &cached); err == nil {
			h.writeJSON(w, http.StatusOK, map[string]interface{}{
				"data":   cached,
				"cached": true,
			})
			return
		}
	}

	analysis, err := h.calculator.CalculatePortfolioRisk(r.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("Risk analysis failed")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(cacheNamespace, key, analysis, cacheTTL); err != nil {
			h.log.Warn().Err(err).Msg("Failed to cache analysis")
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":   analysis,
		"cached": false,
	})
}

// HandleStressTest handles POST /api/risk/stress-test
func (h *Handler) HandleStressTest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbols   []string  `json:"symbols"`
		Weights   []float64 `json:"weights"`
		Scenarios []string  `json:"scenarios"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 || len(req.Weights) == 0 {
		h.writeError(w, http.StatusBadRequest, "symbols and weights are required")
		return
	}

	report, err := h.calculator.RunStressTest(r.Context(), req.Symbols, req.Weights, req.Scenarios)
	if err != nil {
		h.log.Error().Err(err).Msg("Stress test failed")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": report,
	})
}

// HandleGetScenarios handles GET /api/risk/scenarios
func (h *Handler) HandleGetScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios := risk.Scenarios()
	list := make([]risk.StressScenario, 0, len(scenarios))
	for _, name := range risk.DefaultScenarioNames() {
		list = append(list, scenarios[name])
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": list,
	})
}

// analysisCacheKey derives a deterministic key from the request shape.
func analysisCacheKey(req *risk.Request) string {
	parts := make([]string, 0, len(req.Symbols))
	for i, sym := range req.Symbols {
		parts = append(parts, fmt.Sprintf("%s:%.6f", sym, req.Weights[i]))
	}
	return fmt.Sprintf("%s|c=%.4f|h=%d", strings.Join(parts, ","), req.ConfidenceLevel, req.TimeHorizon)
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
