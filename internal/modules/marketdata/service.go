package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoData indicates the provider returned no usable history for a symbol.
var ErrNoData = errors.New("no price data available")

// BarProvider fetches daily history from a remote source.
type BarProvider interface {
	GetDailyBars(ctx context.Context, symbol string, days int) ([]DailyBar, error)
}

// QuoteProvider fetches real-time quotes from a remote source.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (*Quote, error)
}

// Service serves price history cache-first, refreshing from the
// provider when the cache is missing or stale.
type Service struct {
	store    *PriceStore
	provider BarProvider
	quotes   QuoteProvider
	maxStale time.Duration
	log      zerolog.Logger
}

// NewService creates a market data service.
func NewService(store *PriceStore, provider BarProvider, quotes QuoteProvider, maxStale time.Duration, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		provider: provider,
		quotes:   quotes,
		maxStale: maxStale,
		log:      log.With().Str("component", "marketdata").Logger(),
	}
}

// GetDailyBars returns up to days of daily bars for symbol in ascending
// date order. Cached bars are served when fresh; on a stale or empty
// cache the provider is consulted and results persisted. When the
// provider fails, stale cached bars are served rather than nothing.
func (s *Service) GetDailyBars(ctx context.Context, symbol string, days int) ([]DailyBar, error) {
	cached, err := s.store.GetDailyBars(symbol, days)
	if err != nil {
		return nil, fmt.Errorf("read price cache: %w", err)
	}

	if len(cached) >= days && s.isFresh(symbol) {
		return cached, nil
	}

	fetched, err := s.provider.GetDailyBars(ctx, symbol, days)
	if err != nil {
		if len(cached) > 0 {
			s.log.Warn().
				Err(err).
				Str("symbol", symbol).
				Int("cached_bars", len(cached)).
				Msg("Provider failed, serving stale cache")
			return cached, nil
		}
		return nil, fmt.Errorf("%w for %s: %v", ErrNoData, symbol, err)
	}

	if len(fetched) == 0 {
		if len(cached) > 0 {
			return cached, nil
		}
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	if err := s.store.UpsertDailyBars(fetched); err != nil {
		s.log.Error().Err(err).Str("symbol", symbol).Msg("Failed to persist fetched bars")
	}

	bars, err := s.store.GetDailyBars(symbol, days)
	if err != nil || len(bars) == 0 {
		// Persisting may have failed entirely; the fetch itself is still good.
		return fetched, nil
	}
	return bars, nil
}

// GetCloses returns the closing price series for symbol in ascending order.
func (s *Service) GetCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	bars, err := s.GetDailyBars(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes, nil
}

// GetQuote returns a real-time quote for symbol.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	return s.quotes.GetQuote(ctx, symbol)
}

// GetQuotes fetches quotes for several symbols, skipping failures.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) map[string]*Quote {
	quotes := make(map[string]*Quote, len(symbols))
	for _, sym := range symbols {
		q, err := s.quotes.GetQuote(ctx, sym)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", sym).Msg("Quote fetch failed")
			continue
		}
		quotes[sym] = q
	}
	return quotes
}

// Sync refreshes the cache for symbol unconditionally.
func (s *Service) Sync(ctx context.Context, symbol string, days int) (int, error) {
	bars, err := s.provider.GetDailyBars(ctx, symbol, days)
	if err != nil {
		return 0, fmt.Errorf("sync %s: %w", symbol, err)
	}
	if err := s.store.UpsertDailyBars(bars); err != nil {
		return 0, fmt.Errorf("persist %s: %w", symbol, err)
	}
	return len(bars), nil
}

func (s *Service) isFresh(symbol string) bool {
	last, err := s.store.LastDate(symbol)
	if err != nil || last.IsZero() {
		return false
	}
	return time.Since(last) <= s.maxStale
}
