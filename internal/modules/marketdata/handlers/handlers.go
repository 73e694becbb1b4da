// Package handlers provides HTTP handlers for market data operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/marketdata"
)

// Handler handles market data HTTP requests
type Handler struct {
	service *marketdata.Service
	log     zerolog.Logger
}

// NewHandler creates a new market data handler
func NewHandler(service *marketdata.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "marketdata").Logger(),
	}
}

// HandleGetHistoricalData handles GET /api/market/historical-data/{symbol}
func (h *Handler) HandleGetHistoricalData(w http.ResponseWriter, r *http.Request, symbol string) {
	days := 252
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	bars, err := h.service.GetDailyBars(r.Context(), symbol, days)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to get historical data")
		h.writeError(w, http.StatusNotFound, "no price data available for "+symbol)
		return
	}

	response := map[string]interface{}{
		"data": marketdata.HistoricalData{
			Symbol: symbol,
			Days:   days,
			Bars:   bars,
			Source: "yahoo",
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"count":     len(bars),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetLiveQuote handles GET /api/market/live-quote/{symbol}
func (h *Handler) HandleGetLiveQuote(w http.ResponseWriter, r *http.Request, symbol string) {
	quote, err := h.service.GetQuote(r.Context(), symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to get quote")
		h.writeError(w, http.StatusBadGateway, "quote unavailable for "+symbol)
		return
	}

	response := map[string]interface{}{
		"data": quote,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetLiveQuotes handles POST /api/market/live-quotes
func (h *Handler) HandleGetLiveQuotes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		h.writeError(w, http.StatusBadRequest, "symbols is required")
		return
	}
	if len(req.Symbols) > 50 {
		h.writeError(w, http.StatusBadRequest, "too many symbols, maximum is 50")
		return
	}

	quotes := h.service.GetQuotes(r.Context(), req.Symbols)

	response := map[string]interface{}{
		"data": quotes,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"requested": len(req.Symbols),
			"returned":  len(quotes),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetMarketStatus handles GET /api/market/status
func (h *Handler) HandleGetMarketStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	// US regular session, 14:30-21:00 UTC on weekdays. DST shifts are
	// ignored here, the UI only needs a coarse open/closed signal.
	weekday := now.Weekday() != time.Saturday && now.Weekday() != time.Sunday
	minutes := now.Hour()*60 + now.Minute()
	open := weekday && minutes >= 14*60+30 && minutes < 21*60

	state := "CLOSED"
	if open {
		state = "OPEN"
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"market":    "US",
			"state":     state,
			"is_open":   open,
			"timestamp": now.Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
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
