package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/database"
)

// PriceStore persists daily bars in SQLite.
type PriceStore struct {
	db *database.DB
}

// NewPriceStore creates a PriceStore backed by db.
func NewPriceStore(db *database.DB) *PriceStore {
	return &PriceStore{db: db}
}

// UpsertDailyBars inserts or replaces bars in a single transaction.
func (s *PriceStore) UpsertDailyBars(bars []DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO daily_prices (symbol, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, bar := range bars {
		if _, err := stmt.Exec(bar.Symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			return fmt.Errorf("upsert bar %s %s: %w", bar.Symbol, bar.Date, err)
		}
	}

	return tx.Commit()
}

// GetDailyBars returns up to limit most recent bars for symbol in
// ascending date order. limit <= 0 returns all stored bars.
func (s *PriceStore) GetDailyBars(symbol string, limit int) ([]DailyBar, error) {
	query := `
		SELECT symbol, date, open, high, low, close, volume
		FROM daily_prices
		WHERE symbol = ?
		ORDER BY date DESC`
	args := []interface{}{symbol}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily bars: %w", err)
	}
	defer rows.Close()

	var bars []DailyBar
	for rows.Next() {
		var b DailyBar
		if err := rows.Scan(&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan daily bar: %w", err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse the DESC query result into ascending order.
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// LastDate returns the most recent stored date for symbol,
// or the zero time when no bars are stored.
func (s *PriceStore) LastDate(symbol string) (time.Time, error) {
	var date sql.NullString
	if err := s.db.QueryRow(`SELECT MAX(date) FROM daily_prices WHERE symbol = ?`, symbol).Scan(&date); err != nil {
		return time.Time{}, fmt.Errorf("query last date: %w", err)
	}
	if !date.Valid || date.String == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", date.String)
}

// Count returns the number of stored bars for symbol.
func (s *PriceStore) Count(symbol string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_prices WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}
