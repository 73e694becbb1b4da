// Package yahoo implements a client for the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/marketdata"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"

	// Yahoo throttles unauthenticated clients aggressively.
	requestsPerSec = 2
	burstSize      = 5

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client is an HTTP client for Yahoo Finance with rate limiting and retries.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient creates a Client. An empty baseURL selects the production endpoint.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(requestsPerSec, burstSize),
		log:     log.With().Str("component", "yahoo_client").Logger(),
	}
}

// NormalizeSymbol converts user-facing symbols to Yahoo's notation.
// "BTC/USD" becomes "BTC-USD".
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(symbol), "/", "-"))
}

// GetDailyBars fetches up to days of daily OHLCV history for symbol.
// Sessions with missing closes are skipped.
func (c *Client) GetDailyBars(ctx context.Context, symbol string, days int) ([]marketdata.DailyBar, error) {
	sym := NormalizeSymbol(symbol)

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(sym), daysToRange(days))

	var resp chartResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", sym, err)
	}

	result, err := firstResult(&resp, sym)
	if err != nil {
		return nil, err
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", sym)
	}

	q := result.Indicators.Quote[0]
	bars := make([]marketdata.DailyBar, 0, len(result.Timestamps))
	for i, ts := range result.Timestamps {
		if i >= len(q.Close) || q.Close[i] == nil {
			continue
		}
		bar := marketdata.DailyBar{
			Symbol: sym,
			Date:   time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Close:  *q.Close[i],
		}
		if i < len(q.Open) && q.Open[i] != nil {
			bar.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			bar.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			bar.Low = *q.Low[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			bar.Volume = *q.Volume[i]
		}
		bars = append(bars, bar)
	}

	// Trim to the requested window; Yahoo ranges are coarser than days.
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}

	c.log.Debug().Str("symbol", sym).Int("bars", len(bars)).Msg("Fetched daily bars")
	return bars, nil
}

// GetQuote fetches the current price snapshot for symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*marketdata.Quote, error) {
	sym := NormalizeSymbol(symbol)

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d",
		c.baseURL, url.PathEscape(sym))

	var resp chartResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", sym, err)
	}

	result, err := firstResult(&resp, sym)
	if err != nil {
		return nil, err
	}

	meta := result.Meta
	prev := meta.ChartPreviousClose
	if prev == 0 {
		prev = meta.PreviousClose
	}

	quote := &marketdata.Quote{
		Symbol:        sym,
		Price:         meta.RegularMarketPrice,
		PreviousClose: prev,
		Currency:      meta.Currency,
		MarketState:   meta.MarketState,
		Timestamp:     time.Now().UTC(),
	}
	if prev != 0 {
		quote.Change = quote.Price - prev
		quote.ChangePercent = quote.Change / prev * 100
	}
	return quote, nil
}

func firstResult(resp *chartResponse, symbol string) (*chartResult, error) {
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo error for %s: %s (%s)",
			symbol, resp.Chart.Error.Description, resp.Chart.Error.Code)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}
	return &resp.Chart.Result[0], nil
}

// daysToRange maps a day count onto the nearest Yahoo range parameter.
func daysToRange(days int) string {
	switch {
	case days <= 0:
		return "1y"
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	case days <= 730:
		return "2y"
	default:
		return "5y"
	}
}

// get performs a GET with rate limiting and exponential backoff retries.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; risk-engine/1.0)")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			c.log.Warn().Int("attempt", attempt+1).Msg("Rate limited by Yahoo")
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
