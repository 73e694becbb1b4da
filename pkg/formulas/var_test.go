package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoricalVaR(t *testing.T) {
	// 100 returns from -0.05 to +0.05 in even steps
	returns := make([]float64, 100)
	for i := range returns {
		returns[i] = -0.05 + 0.001*float64(i)
	}

	v95 := HistoricalVaR(returns, 0.95, 1)
	assert.Greater(t, v95, 0.0, "losses are reported as positive magnitudes")
	assert.InDelta(t, 0.04505, v95, 0.0005)
}

func TestHistoricalVaRMonotonicInConfidence(t *testing.T) {
	returns := []float64{-0.08, -0.03, -0.01, 0.0, 0.005, 0.01, 0.02, 0.04, -0.02, 0.015, -0.005, 0.03}

	v90 := HistoricalVaR(returns, 0.90, 1)
	v95 := HistoricalVaR(returns, 0.95, 1)
	v99 := HistoricalVaR(returns, 0.99, 1)

	assert.GreaterOrEqual(t, v99, v95)
	assert.GreaterOrEqual(t, v95, v90)
}

func TestHistoricalVaRTimeHorizonScaling(t *testing.T) {
	returns := []float64{-0.02, 0.01, -0.01, 0.015, -0.03, 0.02, 0.005, -0.005}

	v1 := HistoricalVaR(returns, 0.95, 1)
	v10 := HistoricalVaR(returns, 0.95, 10)

	assert.InDelta(t, v1*math.Sqrt(10), v10, 1e-12, "sqrt-of-time rule")
}

func TestParametricVaRMatchesClosedForm(t *testing.T) {
	// Symmetric returns around zero: mean 0, known std
	returns := []float64{-0.02, -0.01, 0.0, 0.01, 0.02}

	mean := Mean(returns)
	std := StdDev(returns)
	z := NormalQuantile(0.05)
	expected := -(mean + z*std)

	assert.InDelta(t, expected, ParametricVaR(returns, 0.95, 1), 1e-12)
	assert.Greater(t, ParametricVaR(returns, 0.95, 1), 0.0)
}

func TestExpectedShortfallAtLeastVaR(t *testing.T) {
	returns := []float64{-0.10, -0.06, -0.03, -0.01, 0.0, 0.005, 0.01, 0.02, 0.03, 0.05, -0.02, 0.01, 0.015, -0.04}

	for _, conf := range []float64{0.90, 0.95, 0.99} {
		es := ExpectedShortfall(returns, conf, 1)
		v := HistoricalVaR(returns, conf, 1)
		assert.GreaterOrEqual(t, es, v, "ES must be at least as extreme as VaR at confidence %v", conf)
	}
}

func TestExpectedShortfallDegenerateTail(t *testing.T) {
	// All identical returns: the tail mean equals the threshold itself
	returns := []float64{0.01, 0.01, 0.01, 0.01}

	es := ExpectedShortfall(returns, 0.95, 1)
	assert.InDelta(t, -0.01, es, 1e-12)
}

func TestVaREmptySeries(t *testing.T) {
	assert.Equal(t, 0.0, HistoricalVaR(nil, 0.95, 1))
	assert.Equal(t, 0.0, ParametricVaR(nil, 0.95, 1))
	assert.Equal(t, 0.0, ExpectedShortfall(nil, 0.95, 1))
}

func TestNormalQuantile(t *testing.T) {
	assert.InDelta(t, -1.6449, NormalQuantile(0.05), 0.001)
	assert.InDelta(t, -2.3263, NormalQuantile(0.01), 0.001)
	assert.InDelta(t, 0.0, NormalQuantile(0.5), 1e-12)
}
