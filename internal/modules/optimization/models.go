// Package optimization provides heuristic portfolio weight allocation.
package optimization

import "time"

// Request describes a portfolio optimization request.
type Request struct {
	Symbols        []string  `json:"symbols"`
	Method         string    `json:"method"`
	CurrentWeights []float64 `json:"current_weights"`
}

// PortfolioMetrics summarizes the annualized performance of an allocation.
type PortfolioMetrics struct {
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
}

// Insight is a human-readable takeaway from the optimization.
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

// WeightChange describes the move from current to recommended weight
// for one symbol. Weights and changes are in percentage points.
type WeightChange struct {
	Symbol            string  `json:"symbol"`
	CurrentWeight     float64 `json:"current_weight"`
	RecommendedWeight float64 `json:"recommended_weight"`
	Change            float64 `json:"change"`
	Action            string  `json:"action"`
	Reasoning         string  `json:"reasoning"`
}

// Improvement compares optimized metrics against the current allocation.
type Improvement struct {
	ReturnImprovement float64 `json:"return_improvement"`
	VolatilityChange  float64 `json:"volatility_change"`
	SharpeImprovement float64 `json:"sharpe_improvement"`
}

// Recommendations bundles the advisory output of an optimization.
type Recommendations struct {
	KeyInsights            []Insight      `json:"key_insights"`
	WeightChanges          []WeightChange `json:"weight_changes"`
	PerformanceImprovement Improvement    `json:"performance_improvement"`
}

// Result is a complete optimization response.
type Result struct {
	OptimizedWeights map[string]float64 `json:"optimized_weights"`
	Metrics          PortfolioMetrics   `json:"portfolio_metrics"`
	CurrentMetrics   PortfolioMetrics   `json:"current_portfolio_metrics"`
	Method           string             `json:"method"`
	Symbols          []string           `json:"symbols"`
	Recommendations  Recommendations    `json:"recommendations"`
	Source           string             `json:"source"`
	Timestamp        time.Time          `json:"timestamp"`
}
