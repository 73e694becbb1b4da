// Package universe provides the static symbol and market catalog.
package universe

import (
	"sort"
	"strings"
)

// Market describes one supported trading venue.
type Market struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Timezone    string `json:"timezone"`
	Description string `json:"description"`
}

// Symbol is one tradable instrument in the catalog.
type Symbol struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Catalog serves the built-in symbol universe.
type Catalog struct {
	markets    []Market
	byCategory map[string][]Symbol
	popular    []Symbol
}

// NewCatalog creates a Catalog with the built-in data.
func NewCatalog() *Catalog {
	return &Catalog{
		markets:    builtinMarkets(),
		byCategory: builtinSymbols(),
		popular:    builtinPopular(),
	}
}

// Markets returns all supported markets.
func (c *Catalog) Markets() []Market {
	return c.markets
}

// Categories returns the category names in sorted order.
func (c *Catalog) Categories() []string {
	categories := make([]string, 0, len(c.byCategory))
	for name := range c.byCategory {
		categories = append(categories, name)
	}
	sort.Strings(categories)
	return categories
}

// SymbolsByCategory returns symbols grouped by category. A non-empty
// category filters to that group; unknown categories return nothing.
func (c *Catalog) SymbolsByCategory(category string) map[string][]Symbol {
	if category == "" {
		return c.byCategory
	}
	for name, symbols := range c.byCategory {
		if strings.EqualFold(name, category) {
			return map[string][]Symbol{name: symbols}
		}
	}
	return map[string][]Symbol{}
}

// TotalSymbols counts every symbol across categories.
func (c *Catalog) TotalSymbols() int {
	var n int
	for _, symbols := range c.byCategory {
		n += len(symbols)
	}
	return n
}

// Search returns symbols whose ticker or name contains the query,
// case-insensitively.
func (c *Catalog) Search(query string) []Symbol {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []Symbol
	for _, symbols := range c.byCategory {
		for _, s := range symbols {
			if strings.Contains(strings.ToLower(s.Ticker), query) ||
				strings.Contains(strings.ToLower(s.Name), query) {
				matches = append(matches, s)
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Ticker < matches[j].Ticker })
	return matches
}

// Popular returns up to limit symbols from the curated quick-selection
// list, in rank order. A non-positive limit returns the whole list.
func (c *Catalog) Popular(limit int) []Symbol {
	if limit <= 0 || limit > len(c.popular) {
		limit = len(c.popular)
	}
	out := make([]Symbol, limit)
	copy(out, c.popular[:limit])
	return out
}

// Contains reports whether ticker exists in the catalog.
func (c *Catalog) Contains(ticker string) bool {
	for _, symbols := range c.byCategory {
		for _, s := range symbols {
			if strings.EqualFold(s.Ticker, ticker) {
				return true
			}
		}
	}
	return false
}

// builtinPopular is the curated quick-selection list, ordered by rank.
func builtinPopular() []Symbol {
	return []Symbol{
		{Ticker: "AAPL", Name: "Apple Inc.", Category: "Technology"},
		{Ticker: "MSFT", Name: "Microsoft Corporation", Category: "Technology"},
		{Ticker: "GOOGL", Name: "Alphabet Inc.", Category: "Technology"},
		{Ticker: "AMZN", Name: "Amazon.com Inc.", Category: "Technology"},
		{Ticker: "TSLA", Name: "Tesla Inc.", Category: "Technology"},
		{Ticker: "NVDA", Name: "NVIDIA Corporation", Category: "Technology"},
		{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Category: "Finance"},
		{Ticker: "JNJ", Name: "Johnson & Johnson", Category: "Healthcare"},
		{Ticker: "SPY", Name: "SPDR S&P 500 ETF", Category: "ETFs"},
		{Ticker: "BTC/USD", Name: "Bitcoin", Category: "Cryptocurrency"},
	}
}

func builtinMarkets() []Market {
	return []Market{
		{Code: "US", Name: "United States", Currency: "USD", Timezone: "America/New_York", Description: "NYSE, NASDAQ and major US exchanges"},
		{Code: "NGN", Name: "Nigeria", Currency: "NGN", Timezone: "Africa/Lagos", Description: "Nigerian Exchange (NGX)"},
		{Code: "UK", Name: "United Kingdom", Currency: "GBP", Timezone: "Europe/London", Description: "London Stock Exchange"},
		{Code: "CA", Name: "Canada", Currency: "CAD", Timezone: "America/Toronto", Description: "Toronto Stock Exchange"},
		{Code: "AU", Name: "Australia", Currency: "AUD", Timezone: "Australia/Sydney", Description: "Australian Securities Exchange"},
		{Code: "JP", Name: "Japan", Currency: "JPY", Timezone: "Asia/Tokyo", Description: "Tokyo Stock Exchange"},
		{Code: "DE", Name: "Germany", Currency: "EUR", Timezone: "Europe/Berlin", Description: "Frankfurt Stock Exchange"},
		{Code: "CRYPTO", Name: "Cryptocurrency", Currency: "USD", Timezone: "UTC", Description: "Major cryptocurrency pairs"},
	}
}

func builtinSymbols() map[string][]Symbol {
	data := map[string]map[string]string{
		"Technology": {
			"AAPL":  "Apple Inc.",
			"MSFT":  "Microsoft Corporation",
			"GOOGL": "Alphabet Inc.",
			"AMZN":  "Amazon.com Inc.",
			"TSLA":  "Tesla Inc.",
			"NVDA":  "NVIDIA Corporation",
			"META":  "Meta Platforms Inc.",
			"NFLX":  "Netflix Inc.",
		},
		"Finance": {
			"JPM": "JPMorgan Chase & Co.",
			"BAC": "Bank of America Corp.",
			"WFC": "Wells Fargo & Company",
			"GS":  "The Goldman Sachs Group Inc.",
			"MS":  "Morgan Stanley",
			"C":   "Citigroup Inc.",
		},
		"Healthcare": {
			"JNJ":  "Johnson & Johnson",
			"PFE":  "Pfizer Inc.",
			"UNH":  "UnitedHealth Group Inc.",
			"ABBV": "AbbVie Inc.",
			"MRK":  "Merck & Co. Inc.",
		},
		"Energy": {
			"XOM": "Exxon Mobil Corporation",
			"CVX": "Chevron Corporation",
			"COP": "ConocoPhillips",
			"SLB": "Schlumberger Limited",
		},
		"Consumer": {
			"WMT":  "Walmart Inc.",
			"HD":   "The Home Depot Inc.",
			"MCD":  "McDonald's Corporation",
			"NKE":  "NIKE Inc.",
			"SBUX": "Starbucks Corporation",
		},
		"Cryptocurrency": {
			"BTC/USD": "Bitcoin",
			"ETH/USD": "Ethereum",
			"BNB/USD": "Binance Coin",
			"ADA/USD": "Cardano",
			"SOL/USD": "Solana",
		},
		"ETFs": {
			"SPY": "SPDR S&P 500 ETF",
			"QQQ": "Invesco QQQ Trust",
			"IWM": "iShares Russell 2000 ETF",
			"VTI": "Vanguard Total Stock Market ETF",
		},
	}

	byCategory := make(map[string][]Symbol, len(data))
	for category, entries := range data {
		symbols := make([]Symbol, 0, len(entries))
		for ticker, name := range entries {
			symbols = append(symbols, Symbol{Ticker: ticker, Name: name, Category: category})
		}
		sort.Slice(symbols, func(i, j int) bool { return symbols[i].Ticker < symbols[j].Ticker })
		byCategory[category] = symbols
	}
	return byCategory
}
