package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.Migrate())
}

func TestDailyPricesRoundTrip(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(
		`INSERT INTO daily_prices (symbol, date, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"AAPL", "2024-01-02", 185.0, 187.5, 184.2, 186.3, 1000000,
	)
	require.NoError(t, err)

	var close float64
	err = db.QueryRow(`SELECT close FROM daily_prices WHERE symbol = ? AND date = ?`, "AAPL", "2024-01-02").Scan(&close)
	require.NoError(t, err)
	assert.InDelta(t, 186.3, close, 1e-9)
}

func TestDailyPricesUniqueKey(t *testing.T) {
	db := newTestDB(t)

	insert := `INSERT INTO daily_prices (symbol, date, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.Exec(insert, "MSFT", "2024-01-02", 1, 1, 1, 1, 0)
	require.NoError(t, err)

	_, err = db.Exec(insert, "MSFT", "2024-01-02", 2, 2, 2, 2, 0)
	assert.Error(t, err)
}
