package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nhooyr.io/websocket"
)

const (
	streamWriteWait = 10 * time.Second
	streamInterval  = 15 * time.Second
	maxStreamSyms   = 20
)

// HandleQuoteStream handles GET /api/market/stream.
// It upgrades to a websocket and pushes quote snapshots for the
// requested symbols until the client disconnects.
func (h *Handler) HandleQuoteStream(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}
	symbols := strings.Split(raw, ",")
	if len(symbols) > maxStreamSyms {
		symbols = symbols[:maxStreamSyms]
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	h.log.Info().Strs("symbols", symbols).Msg("Quote stream started")

	// The stream is write-only. CloseRead drains incoming frames so
	// control frames are handled and cancels ctx when the client closes.
	ctx := conn.CloseRead(r.Context())
	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	// First snapshot immediately, then on every tick.
	if err := h.pushQuotes(ctx, conn, symbols); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.pushQuotes(ctx, conn, symbols); err != nil {
				h.log.Debug().Err(err).Msg("Quote stream closed")
				return
			}
		}
	}
}

func (h *Handler) pushQuotes(ctx context.Context, conn *websocket.Conn, symbols []string) error {
	quotes := h.service.GetQuotes(ctx, symbols)

	payload, err := json.Marshal(map[string]interface{}{
		"type":      "quotes",
		"data":      quotes,
		"timestamp": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, streamWriteWait)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}
