// Package risk computes portfolio risk metrics from historical returns.
package risk

import "time"

// Result provenance values.
const (
	SourceComputed  = "computed"
	SourceDefaulted = "defaulted"
)

// Metrics holds the risk measures for one portfolio analysis.
// VaR and expected shortfall are positive loss fractions of portfolio
// value. MaxDrawdown is negative or zero.
type Metrics struct {
	HistoricalVaR     float64 `json:"historical_var" msgpack:"historical_var"`
	ParametricVaR     float64 `json:"parametric_var" msgpack:"parametric_var"`
	ExpectedShortfall float64 `json:"expected_shortfall" msgpack:"expected_shortfall"`
	VaR99             float64 `json:"var_99" msgpack:"var_99"`
	Volatility        float64 `json:"volatility" msgpack:"volatility"`
	MaxDrawdown       float64 `json:"max_drawdown" msgpack:"max_drawdown"`
	SharpeRatio       float64 `json:"sharpe_ratio" msgpack:"sharpe_ratio"`

	// Source is "computed" when derived from real return series and
	// "defaulted" when conservative fallbacks were substituted.
	Source string `json:"source" msgpack:"source"`
}

// Request describes a portfolio risk analysis request.
type Request struct {
	Symbols         []string  `json:"symbols"`
	Weights         []float64 `json:"weights"`
	ConfidenceLevel float64   `json:"confidence_level"`
	TimeHorizon     int       `json:"time_horizon"`
}

// Analysis is a complete risk analysis response.
type Analysis struct {
	Metrics  Metrics  `json:"metrics" msgpack:"metrics"`
	Metadata Metadata `json:"metadata" msgpack:"metadata"`
}

// Metadata describes how an analysis was produced.
type Metadata struct {
	CalculationID   string    `json:"calculation_id" msgpack:"calculation_id"`
	Symbols         []string  `json:"symbols" msgpack:"symbols"`
	ConfidenceLevel float64   `json:"confidence_level" msgpack:"confidence_level"`
	TimeHorizon     int       `json:"time_horizon" msgpack:"time_horizon"`
	DataPoints      int       `json:"data_points" msgpack:"data_points"`
	Timestamp       time.Time `json:"timestamp" msgpack:"timestamp"`
}

// StressScenario scales base metrics to model an adverse regime.
type StressScenario struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	VaRMultiplier      float64 `json:"var_multiplier"`
	VolMultiplier      float64 `json:"vol_multiplier"`
	DrawdownMultiplier float64 `json:"drawdown_multiplier"`
}

// StressResult holds stressed metrics for one scenario.
type StressResult struct {
	Scenario          string  `json:"scenario" msgpack:"scenario"`
	Description       string  `json:"description" msgpack:"description"`
	HistoricalVaR     float64 `json:"historical_var" msgpack:"historical_var"`
	VaR99             float64 `json:"var_99" msgpack:"var_99"`
	ExpectedShortfall float64 `json:"expected_shortfall" msgpack:"expected_shortfall"`
	Volatility        float64 `json:"volatility" msgpack:"volatility"`
	MaxDrawdown       float64 `json:"max_drawdown" msgpack:"max_drawdown"`
}

// StressReport is the full stress test response.
type StressReport struct {
	Base     Metrics        `json:"base_metrics" msgpack:"base_metrics"`
	Results  []StressResult `json:"scenarios" msgpack:"scenarios"`
	Metadata Metadata       `json:"metadata" msgpack:"metadata"`
}
