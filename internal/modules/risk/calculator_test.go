package risk

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrices struct {
	closes map[string][]float64
}

func (f *fakePrices) GetCloses(_ context.Context, symbol string, _ int) ([]float64, error) {
	closes, ok := f.closes[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return closes, nil
}

// rampCloses returns a strictly rising price series with tiny constant
// daily gains, so every return is positive.
func rampCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	return closes
}

func newTestCalculator(prices PriceSource) *Calculator {
	return NewCalculator(prices, 0.02, zerolog.Nop())
}

func TestCalculatePortfolioRiskAllGains(t *testing.T) {
	prices := &fakePrices{closes: map[string][]float64{
		"AAPL": rampCloses(100),
		"MSFT": rampCloses(100),
	}}
	calc := newTestCalculator(prices)

	analysis, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols:         []string{"AAPL", "MSFT"},
		Weights:         []float64{0.5, 0.5},
		ConfidenceLevel: 0.95,
		TimeHorizon:     1,
	})
	require.NoError(t, err)

	m := analysis.Metrics
	assert.Equal(t, SourceComputed, m.Source)

	// Every daily return is positive, so the 5th percentile loss is a
	// gain and VaR comes out negative or near zero.
	assert.LessOrEqual(t, m.HistoricalVaR, 0.0)
	assert.Greater(t, m.SharpeRatio, 0.0)
	assert.LessOrEqual(t, m.MaxDrawdown, 0.0)
	assert.Greater(t, m.Volatility, 0.0)
	assert.Equal(t, 99, analysis.Metadata.DataPoints)
	assert.NotEmpty(t, analysis.Metadata.CalculationID)
}

func TestCalculatePortfolioRiskVaR99AtLeastVaR95(t *testing.T) {
	// Alternating series with real losses.
	closes := make([]float64, 200)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * 1.012
		} else {
			closes[i] = closes[i-1] * 0.99
		}
	}

	calc := newTestCalculator(&fakePrices{closes: map[string][]float64{"SPY": closes}})
	analysis, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols:         []string{"SPY"},
		Weights:         []float64{1.0},
		ConfidenceLevel: 0.95,
		TimeHorizon:     1,
	})
	require.NoError(t, err)

	m := analysis.Metrics
	assert.GreaterOrEqual(t, m.VaR99, m.HistoricalVaR)
	assert.GreaterOrEqual(t, m.ExpectedShortfall, m.HistoricalVaR)
	assert.Less(t, m.MaxDrawdown, 0.0)
}

func TestCalculatePortfolioRiskDefaultsOnMissingData(t *testing.T) {
	calc := newTestCalculator(&fakePrices{})

	analysis, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols:         []string{"NOPE"},
		Weights:         []float64{1.0},
		ConfidenceLevel: 0.95,
		TimeHorizon:     1,
	})
	require.NoError(t, err)

	m := analysis.Metrics
	assert.Equal(t, SourceDefaulted, m.Source)
	assert.InDelta(t, 0.05, m.HistoricalVaR, 1e-9)
	assert.InDelta(t, 0.05, m.ParametricVaR, 1e-9)
	assert.InDelta(t, 0.07, m.ExpectedShortfall, 1e-9)
	assert.InDelta(t, 0.08, m.VaR99, 1e-9)
	assert.InDelta(t, 0.20, m.Volatility, 1e-9)
	assert.InDelta(t, -0.15, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, 0.5, m.SharpeRatio, 1e-9)
	assert.Equal(t, 0, analysis.Metadata.DataPoints)
}

func TestCalculatePortfolioRiskValidation(t *testing.T) {
	calc := newTestCalculator(&fakePrices{})

	cases := []struct {
		name string
		req  Request
	}{
		{"no symbols", Request{Weights: []float64{1}, ConfidenceLevel: 0.95, TimeHorizon: 1}},
		{"length mismatch", Request{Symbols: []string{"A", "B"}, Weights: []float64{1}, ConfidenceLevel: 0.95, TimeHorizon: 1}},
		{"bad confidence", Request{Symbols: []string{"A"}, Weights: []float64{1}, ConfidenceLevel: 1.5, TimeHorizon: 1}},
		{"zero horizon", Request{Symbols: []string{"A"}, Weights: []float64{1}, ConfidenceLevel: 0.95, TimeHorizon: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.CalculatePortfolioRisk(context.Background(), &tc.req)
			assert.Error(t, err)
		})
	}
}

func TestCalculatePortfolioRiskLongShortWeights(t *testing.T) {
	// A short leg is a negative weight. With both legs holding the same
	// series, 1.5 long minus 0.5 short nets out to the single-asset
	// portfolio, so the metrics must match the 1.0-weight run.
	closes := rampCloses(100)
	prices := &fakePrices{closes: map[string][]float64{
		"AAPL": closes,
		"TLT":  closes,
	}}
	calc := newTestCalculator(prices)

	longShort, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols:         []string{"AAPL", "TLT"},
		Weights:         []float64{1.5, -0.5},
		ConfidenceLevel: 0.95,
		TimeHorizon:     1,
	})
	require.NoError(t, err)

	single, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols:         []string{"AAPL"},
		Weights:         []float64{1.0},
		ConfidenceLevel: 0.95,
		TimeHorizon:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, SourceComputed, longShort.Metrics.Source)
	assert.InDelta(t, single.Metrics.HistoricalVaR, longShort.Metrics.HistoricalVaR, 1e-9)
	assert.InDelta(t, single.Metrics.Volatility, longShort.Metrics.Volatility, 1e-9)
	assert.InDelta(t, single.Metrics.SharpeRatio, longShort.Metrics.SharpeRatio, 1e-9)
}

func TestCalculatePortfolioRiskHorizonScaling(t *testing.T) {
	closes := make([]float64, 200)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%3 == 0 {
			closes[i] = closes[i-1] * 0.985
		} else {
			closes[i] = closes[i-1] * 1.008
		}
	}
	calc := newTestCalculator(&fakePrices{closes: map[string][]float64{"SPY": closes}})

	oneDay, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols: []string{"SPY"}, Weights: []float64{1}, ConfidenceLevel: 0.95, TimeHorizon: 1,
	})
	require.NoError(t, err)

	tenDay, err := calc.CalculatePortfolioRisk(context.Background(), &Request{
		Symbols: []string{"SPY"}, Weights: []float64{1}, ConfidenceLevel: 0.95, TimeHorizon: 10,
	})
	require.NoError(t, err)

	assert.InDelta(t, oneDay.Metrics.HistoricalVaR*math.Sqrt(10), tenDay.Metrics.HistoricalVaR, 1e-9)
}
