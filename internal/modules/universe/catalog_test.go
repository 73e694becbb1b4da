package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkets(t *testing.T) {
	catalog := NewCatalog()

	markets := catalog.Markets()
	require.Len(t, markets, 8)
	assert.Equal(t, "US", markets[0].Code)
	assert.Equal(t, "USD", markets[0].Currency)
}

func TestSymbolsByCategory(t *testing.T) {
	catalog := NewCatalog()

	all := catalog.SymbolsByCategory("")
	assert.Len(t, all, 7)
	assert.Len(t, all["Technology"], 8)

	tech := catalog.SymbolsByCategory("technology")
	require.Len(t, tech, 1)
	assert.Len(t, tech["Technology"], 8)

	assert.Empty(t, catalog.SymbolsByCategory("nonexistent"))
}

func TestTotalSymbols(t *testing.T) {
	catalog := NewCatalog()
	assert.Equal(t, 37, catalog.TotalSymbols())
}

func TestSearch(t *testing.T) {
	catalog := NewCatalog()

	results := catalog.Search("apple")
	require.Len(t, results, 1)
	assert.Equal(t, "AAPL", results[0].Ticker)

	// Ticker substring match.
	results = catalog.Search("BTC")
	require.Len(t, results, 1)
	assert.Equal(t, "BTC/USD", results[0].Ticker)

	assert.Empty(t, catalog.Search("zzzz"))
	assert.Nil(t, catalog.Search("  "))
}

func TestContains(t *testing.T) {
	catalog := NewCatalog()

	assert.True(t, catalog.Contains("SPY"))
	assert.True(t, catalog.Contains("spy"))
	assert.False(t, catalog.Contains("ZZZZ"))
}

func TestPopular(t *testing.T) {
	catalog := NewCatalog()

	all := catalog.Popular(0)
	require.Len(t, all, 10)
	assert.Equal(t, "AAPL", all[0].Ticker)
	assert.Equal(t, "BTC/USD", all[9].Ticker)

	top3 := catalog.Popular(3)
	require.Len(t, top3, 3)
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOGL"}, []string{top3[0].Ticker, top3[1].Ticker, top3[2].Ticker})

	// Limit past the end returns the whole list.
	assert.Len(t, catalog.Popular(100), 10)

	// Every popular symbol exists in the catalog.
	for _, s := range all {
		assert.True(t, catalog.Contains(s.Ticker), s.Ticker)
	}
}

func TestCategoriesSorted(t *testing.T) {
	catalog := NewCatalog()

	categories := catalog.Categories()
	require.Len(t, categories, 7)
	assert.Equal(t, "Consumer", categories[0])
	assert.Equal(t, "Technology", categories[6])
}
