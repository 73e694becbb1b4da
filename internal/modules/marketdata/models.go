// Package marketdata provides historical price storage and retrieval
// backed by a local SQLite cache with remote fetch on miss.
package marketdata

import "time"

// DailyBar is one day of OHLCV data for a symbol.
// Date is stored as "YYYY-MM-DD".
type DailyBar struct {
	Symbol string  `json:"symbol"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Quote is a real-time price snapshot for a symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	PreviousClose float64   `json:"previous_close"`
	Currency      string    `json:"currency"`
	MarketState   string    `json:"market_state"`
	Timestamp     time.Time `json:"timestamp"`
}

// HistoricalData is the payload returned for a historical data request.
type HistoricalData struct {
	Symbol string     `json:"symbol"`
	Days   int        `json:"days"`
	Bars   []DailyBar `json:"bars"`
	Source string     `json:"source"`
}
