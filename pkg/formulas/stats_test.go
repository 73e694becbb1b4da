package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateReturns(t *testing.T) {
	prices := []float64{100, 101, 102}
	returns := CalculateReturns(prices)

	assert.Len(t, returns, 2)
	assert.InDelta(t, 0.01, returns[0], 1e-9)
	assert.InDelta(t, 1.0/101.0, returns[1], 1e-9)
}

func TestCalculateReturnsFiltersZeroCloses(t *testing.T) {
	prices := []float64{100, 0, 50, 55}
	returns := CalculateReturns(prices)

	// 100->0 gives -1.0 (finite, kept); 0->50 divides by zero (dropped); 50->55 kept
	assert.Len(t, returns, 2)
	assert.InDelta(t, -1.0, returns[0], 1e-12)
	assert.InDelta(t, 0.10, returns[1], 1e-12)
}

func TestCalculateReturnsTooFewPrices(t *testing.T) {
	assert.Empty(t, CalculateReturns([]float64{100}))
	assert.Empty(t, CalculateReturns(nil))
}

func TestPercentileInterpolation(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 1.0, Percentile(data, 0))
	assert.Equal(t, 3.0, Percentile(data, 50))
	assert.Equal(t, 5.0, Percentile(data, 100))
	// rank = 0.05*4 = 0.2 -> between 1 and 2
	assert.InDelta(t, 1.2, Percentile(data, 5), 1e-12)
}

func TestPercentileSingleValue(t *testing.T) {
	assert.Equal(t, 7.0, Percentile([]float64{7}, 95))
}

func TestStdDevDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{0.01}))
	assert.Equal(t, 0.0, StdDev([]float64{0.01, 0.01, 0.01}))
}

func TestPopStdDev(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	// population variance = 1.25
	assert.InDelta(t, math.Sqrt(1.25), PopStdDev(data), 1e-12)
}

func TestAnnualizedVolatility(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, -0.02}
	expected := StdDev(returns) * math.Sqrt(252)
	assert.InDelta(t, expected, AnnualizedVolatility(returns), 1e-12)
}

func TestSharpeRatioZeroVolatility(t *testing.T) {
	assert.Equal(t, 0.0, SharpeRatio([]float64{0.01, 0.01, 0.01}, 0.02))
	assert.Equal(t, 0.0, SharpeRatio(nil, 0.02))
}

func TestSharpeRatioPositiveDrift(t *testing.T) {
	returns := []float64{0.012, 0.008, 0.011, 0.009, 0.010, 0.012, 0.008}
	assert.Greater(t, SharpeRatio(returns, 0.02), 0.0)
}

func TestMaxDrawdown(t *testing.T) {
	// up 10%, down 20%, up 5%: max drawdown is the -20% leg
	returns := []float64{0.10, -0.20, 0.05}
	assert.InDelta(t, -0.20, MaxDrawdown(returns), 1e-12)
}

func TestMaxDrawdownMonotonicGains(t *testing.T) {
	returns := []float64{0.01, 0.02, 0.005, 0.015}
	assert.Equal(t, 0.0, MaxDrawdown(returns))
}

func TestMaxDrawdownEmpty(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(nil))
}
