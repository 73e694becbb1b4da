// Package simulation runs Monte Carlo portfolio simulations.
package simulation

import "time"

// Request describes a Monte Carlo simulation request.
type Request struct {
	Symbols        []string  `json:"symbols"`
	Weights        []float64 `json:"weights"`
	NumSimulations int       `json:"num_simulations"`
	TimeHorizon    int       `json:"time_horizon"`
	InitialValue   float64   `json:"initial_value"`
}

// Statistics summarizes the simulated return distribution.
type Statistics struct {
	MeanReturn        float64 `json:"mean_return"`
	StdReturn         float64 `json:"std_return"`
	ProbabilityOfLoss float64 `json:"probability_of_loss"`
}

// RiskMetrics holds simulated VaR and expected shortfall.
type RiskMetrics struct {
	VaR95 float64 `json:"var_95"`
	VaR99 float64 `json:"var_99"`
	ES95  float64 `json:"expected_shortfall_95"`
	ES99  float64 `json:"expected_shortfall_99"`
}

// Percentiles holds selected quantiles of the return distribution.
type Percentiles struct {
	P1  float64 `json:"1st"`
	P5  float64 `json:"5th"`
	P25 float64 `json:"25th"`
	P50 float64 `json:"50th"`
	P75 float64 `json:"75th"`
	P95 float64 `json:"95th"`
	P99 float64 `json:"99th"`
}

// Result is a complete simulation response. PortfolioReturns and
// FinalValues are truncated to keep response sizes bounded.
type Result struct {
	PortfolioReturns []float64   `json:"portfolio_returns"`
	FinalValues      []float64   `json:"final_values"`
	Statistics       Statistics  `json:"statistics"`
	RiskMetrics      RiskMetrics `json:"risk_metrics"`
	Percentiles      Percentiles `json:"percentiles"`
	Metadata         Metadata    `json:"metadata"`
}

// Metadata describes how a simulation was produced.
type Metadata struct {
	NumSimulations int       `json:"num_simulations"`
	TimeHorizon    int       `json:"time_horizon"`
	InitialValue   float64   `json:"initial_value"`
	Symbols        []string  `json:"symbols"`
	Weights        []float64 `json:"weights"`
	Source         string    `json:"source"`
	Timestamp      time.Time `json:"timestamp"`
}
