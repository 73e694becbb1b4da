package formulas

import "math"

// SharpeRatio calculates the annualized Sharpe ratio from daily returns.
//
// Sharpe = (mean(returns) * 252 - riskFreeRate) / (std(returns) * sqrt(252))
//
// Returns 0 when the annualized volatility is exactly zero (constant or
// empty series) rather than dividing by zero.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	annualReturn := Mean(returns) * TradingDaysPerYear
	annualVol := StdDev(returns) * math.Sqrt(TradingDaysPerYear)

	if annualVol == 0 {
		return 0
	}

	return (annualReturn - riskFreeRate) / annualVol
}
