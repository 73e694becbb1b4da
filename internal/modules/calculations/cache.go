// Package calculations provides a TTL cache for expensive computation
// results, persisted in SQLite with msgpack-encoded values.
package calculations

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/database"
)

// ErrCacheMiss is returned when no live entry exists for a key.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores computation results with a per-entry TTL.
type Cache struct {
	db  *database.DB
	log zerolog.Logger
}

// NewCache creates a Cache backed by db.
func NewCache(db *database.DB, log zerolog.Logger) *Cache {
	return &Cache{
		db:  db,
		log: log.With().Str("component", "calc_cache").Logger(),
	}
}

// Set stores value under namespace/key with the given TTL.
func (c *Cache) Set(namespace, key string, value interface{}, ttl time.Duration) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()
	_, err = c.db.Exec(`
		INSERT INTO calculation_cache (namespace, cache_key, data, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, cache_key) DO UPDATE SET
			data = excluded.data,
			expires_at = excluded.expires_at`,
		namespace, key, data, expiresAt)
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Get loads the entry for namespace/key into out.
// Expired or missing entries return ErrCacheMiss.
func (c *Cache) Get(namespace, key string, out interface{}) error {
	var data []byte
	var expiresAt int64
	err := c.db.QueryRow(`
		SELECT data, expires_at FROM calculation_cache
		WHERE namespace = ? AND cache_key = ?`,
		namespace, key).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("read cache entry: %w", err)
	}

	if time.Now().Unix() >= expiresAt {
		return ErrCacheMiss
	}

	if err := msgpack.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode cache value: %w", err)
	}
	return nil
}

// PurgeExpired deletes all expired entries and returns the count removed.
func (c *Cache) PurgeExpired() (int64, error) {
	res, err := c.db.Exec(`DELETE FROM calculation_cache WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		c.log.Debug().Int64("purged", n).Msg("Purged expired cache entries")
	}
	return n, nil
}
