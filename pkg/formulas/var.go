package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// HistoricalVaR calculates Value-at-Risk from the empirical return
// distribution.
//
// Returns are scaled by sqrt(timeHorizon) (square-root-of-time rule), the
// (1-confidence) percentile of the scaled distribution is taken, and the
// result is negated so a loss is reported as a positive magnitude.
func HistoricalVaR(returns []float64, confidence float64, timeHorizon int) float64 {
	if len(returns) == 0 {
		return 0
	}

	scaled := scaleReturns(returns, timeHorizon)
	alpha := 1 - confidence
	return -Percentile(scaled, alpha*100)
}

// ParametricVaR calculates Value-at-Risk assuming normally distributed
// returns.
//
// The sample mean is scaled by timeHorizon, the sample standard deviation by
// sqrt(timeHorizon), and the VaR is -(mean' + z * std') where z is the
// standard normal quantile at (1-confidence).
func ParametricVaR(returns []float64, confidence float64, timeHorizon int) float64 {
	if len(returns) == 0 {
		return 0
	}

	scaledMean := Mean(returns) * float64(timeHorizon)
	scaledStd := StdDev(returns) * math.Sqrt(float64(timeHorizon))

	z := NormalQuantile(1 - confidence)
	return -(scaledMean + z*scaledStd)
}

// ExpectedShortfall calculates the conditional VaR: the mean loss in the
// tail at or beyond the historical VaR threshold, on sqrt-of-time scaled
// returns. When the tail is empty (degenerate samples) the negated threshold
// itself is reported.
func ExpectedShortfall(returns []float64, confidence float64, timeHorizon int) float64 {
	if len(returns) == 0 {
		return 0
	}

	scaled := scaleReturns(returns, timeHorizon)
	alpha := 1 - confidence
	threshold := Percentile(scaled, alpha*100)

	var tailSum float64
	tailCount := 0
	for _, r := range scaled {
		if r <= threshold {
			tailSum += r
			tailCount++
		}
	}

	if tailCount == 0 {
		return -threshold
	}
	return -(tailSum / float64(tailCount))
}

// NormalQuantile returns the standard normal quantile at probability p.
func NormalQuantile(p float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: 1}.Quantile(p)
}

func scaleReturns(returns []float64, timeHorizon int) []float64 {
	factor := math.Sqrt(float64(timeHorizon))
	scaled := make([]float64, len(returns))
	for i, r := range returns {
		scaled[i] = r * factor
	}
	return scaled
}
