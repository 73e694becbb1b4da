package formulas

// MaxDrawdown calculates the maximum drawdown from a daily return series.
//
// A cumulative wealth curve W_t = Π(1 + r_i) is built, the running peak is
// tracked, and the drawdown at each point is (W_t - peak) / peak. The most
// negative drawdown over the series is returned (e.g. -0.25 for a 25% loss
// from peak). An empty series yields 0.
func MaxDrawdown(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}

	wealth := 1.0
	peak := 1.0
	maxDrawdown := 0.0

	for _, r := range returns {
		wealth *= 1 + r
		if wealth > peak {
			peak = wealth
		}
		if peak > 0 {
			drawdown := (wealth - peak) / peak
			if drawdown < maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	return maxDrawdown
}
