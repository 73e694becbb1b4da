package optimization

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk"
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

// choppyCloses alternates gains and losses around a drift.
func choppyCloses(n int, up, down float64) []float64 {
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * (1 + up)
		} else {
			closes[i] = closes[i-1] * (1 - down)
		}
	}
	return closes
}

func newTestService(prices risk.PriceSource) *Service {
	return NewService(prices, zerolog.Nop())
}

func sumWeights(weights map[string]float64) float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum
}

func TestOptimizeEqualWeight(t *testing.T) {
	svc := newTestService(&fakePrices{})

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols: []string{"AAPL", "MSFT", "GOOGL"},
		Method:  "equal_weight",
	})
	require.NoError(t, err)

	assert.Equal(t, "equal_weight", result.Method)
	for _, sym := range result.Symbols {
		assert.InDelta(t, 1.0/3.0, result.OptimizedWeights[sym], 1e-9)
	}
	assert.InDelta(t, 1.0, sumWeights(result.OptimizedWeights), 1e-9)
}

func TestOptimizeUnknownMethodDefaultsToEqualWeight(t *testing.T) {
	svc := newTestService(&fakePrices{})

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols: []string{"AAPL", "MSFT"},
		Method:  "quantum_annealing",
	})
	require.NoError(t, err)
	assert.Equal(t, "equal_weight", result.Method)
}

func TestOptimizeMaxSharpeFavorsBetterAsset(t *testing.T) {
	prices := &fakePrices{closes: map[string][]float64{
		"GOOD": choppyCloses(100, 0.015, 0.005), // strong drift
		"BAD":  choppyCloses(100, 0.010, 0.011), // slightly negative drift
	}}
	svc := newTestService(prices)

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols: []string{"GOOD", "BAD"},
		Method:  "max_sharpe",
	})
	require.NoError(t, err)

	assert.Equal(t, risk.SourceComputed, result.Source)
	assert.Greater(t, result.OptimizedWeights["GOOD"], result.OptimizedWeights["BAD"])
	assert.InDelta(t, 1.0, sumWeights(result.OptimizedWeights), 1e-9)
}

func TestOptimizeMinVarianceFavorsCalmAsset(t *testing.T) {
	prices := &fakePrices{closes: map[string][]float64{
		"CALM": choppyCloses(100, 0.002, 0.002),
		"WILD": choppyCloses(100, 0.03, 0.03),
	}}
	svc := newTestService(prices)

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols: []string{"CALM", "WILD"},
		Method:  "min_variance",
	})
	require.NoError(t, err)

	assert.Greater(t, result.OptimizedWeights["CALM"], result.OptimizedWeights["WILD"])
	assert.InDelta(t, 1.0, sumWeights(result.OptimizedWeights), 1e-9)
}

func TestOptimizeNoDataUsesFallbackMetrics(t *testing.T) {
	svc := newTestService(&fakePrices{})

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols: []string{"AAPL", "MSFT"},
		Method:  "max_sharpe",
	})
	require.NoError(t, err)

	assert.Equal(t, risk.SourceDefaulted, result.Source)

	// With no usable history every asset falls back to 8% return and
	// 20% volatility.
	assert.InDelta(t, 0.08, result.Metrics.ExpectedReturn, 1e-9)
	assert.InDelta(t, 0.20, result.Metrics.Volatility, 1e-9)
	assert.InDelta(t, (0.08-0.02)/0.20, result.Metrics.SharpeRatio, 1e-9)

	// Both strategies degrade to equal weight without data.
	assert.InDelta(t, 0.5, result.OptimizedWeights["AAPL"], 1e-9)
}

func TestOptimizeRecommendations(t *testing.T) {
	prices := &fakePrices{closes: map[string][]float64{
		"GOOD": choppyCloses(100, 0.015, 0.005),
		"BAD":  choppyCloses(100, 0.010, 0.011),
	}}
	svc := newTestService(prices)

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols:        []string{"GOOD", "BAD"},
		Method:         "max_sharpe",
		CurrentWeights: []float64{0.5, 0.5},
	})
	require.NoError(t, err)

	recs := result.Recommendations
	require.Len(t, recs.KeyInsights, 2)
	assert.Equal(t, "top_increase", recs.KeyInsights[0].Type)
	assert.Contains(t, recs.KeyInsights[0].Message, "GOOD")
	assert.Contains(t, recs.KeyInsights[1].Message, "BAD")

	require.Len(t, recs.WeightChanges, 2)
	good := recs.WeightChanges[0]
	assert.Equal(t, "GOOD", good.Symbol)
	assert.InDelta(t, 50.0, good.CurrentWeight, 1e-9)
	assert.Equal(t, "increase", good.Action)
	assert.Equal(t, "decrease", recs.WeightChanges[1].Action)
}

func TestOptimizeHoldActionWithinThreshold(t *testing.T) {
	svc := newTestService(&fakePrices{})

	result, err := svc.Optimize(context.Background(), &Request{
		Symbols:        []string{"AAPL", "MSFT"},
		Method:         "equal_weight",
		CurrentWeights: []float64{0.5, 0.5},
	})
	require.NoError(t, err)

	for _, change := range result.Recommendations.WeightChanges {
		assert.Equal(t, "hold", change.Action)
	}
	improvement := result.Recommendations.PerformanceImprovement
	assert.InDelta(t, 0.0, improvement.ReturnImprovement, 1e-9)
	assert.InDelta(t, 0.0, improvement.SharpeImprovement, 1e-9)
}

func TestOptimizeValidation(t *testing.T) {
	svc := newTestService(&fakePrices{})

	_, err := svc.Optimize(context.Background(), &Request{})
	assert.Error(t, err)

	_, err = svc.Optimize(context.Background(), &Request{
		Symbols:        []string{"AAPL", "MSFT"},
		CurrentWeights: []float64{1.0},
	})
	assert.Error(t, err)
}
