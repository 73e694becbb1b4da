package calculations

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/database"
)

type cachedResult struct {
	Value  float64 `msgpack:"value"`
	Label  string  `msgpack:"label"`
	Series []int   `msgpack:"series"`
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewCache(db, zerolog.Nop())
}

func TestSetAndGet(t *testing.T) {
	cache := newTestCache(t)

	in := cachedResult{Value: 0.042, Label: "var_95", Series: []int{1, 2, 3}}
	require.NoError(t, cache.Set("risk", "portfolio-abc", in, time.Minute))

	var out cachedResult
	require.NoError(t, cache.Get("risk", "portfolio-abc", &out))
	assert.Equal(t, in, out)
}

func TestGetMiss(t *testing.T) {
	cache := newTestCache(t)

	var out cachedResult
	err := cache.Get("risk", "missing", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestExpiredEntryIsMiss(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("risk", "stale", cachedResult{Value: 1}, -time.Second))

	var out cachedResult
	err := cache.Get("risk", "stale", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetOverwrites(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("risk", "k", cachedResult{Value: 1}, time.Minute))
	require.NoError(t, cache.Set("risk", "k", cachedResult{Value: 2}, time.Minute))

	var out cachedResult
	require.NoError(t, cache.Get("risk", "k", &out))
	assert.InDelta(t, 2.0, out.Value, 1e-9)
}

func TestPurgeExpired(t *testing.T) {
	cache := newTestCache(t)

	require.NoError(t, cache.Set("risk", "live", cachedResult{Value: 1}, time.Minute))
	require.NoError(t, cache.Set("risk", "dead", cachedResult{Value: 2}, -time.Second))

	purged, err := cache.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var out cachedResult
	assert.NoError(t, cache.Get("risk", "live", &out))
}
