package risk

import (
	"context"
	"fmt"
)

// Stress test var_99 approximation relative to the stressed 95% VaR.
const stressVaR99Factor = 1.3

// Scenarios returns the supported stress scenarios keyed by name.
func Scenarios() map[string]StressScenario {
	return map[string]StressScenario{
		"market_crash": {
			Name:               "market_crash",
			Description:        "Severe market shock with doubled volatility",
			VaRMultiplier:      2.0,
			VolMultiplier:      2.0,
			DrawdownMultiplier: 1.5,
		},
		"high_volatility": {
			Name:               "high_volatility",
			Description:        "Volatility regime tripling without directional shock",
			VaRMultiplier:      1.5,
			VolMultiplier:      3.0,
			DrawdownMultiplier: 1.0,
		},
		"recession": {
			Name:               "recession",
			Description:        "Prolonged downturn with elevated volatility",
			VaRMultiplier:      1.7,
			VolMultiplier:      1.8,
			DrawdownMultiplier: 1.3,
		},
	}
}

// DefaultScenarioNames lists scenarios applied when a request names none.
func DefaultScenarioNames() []string {
	return []string{"market_crash", "high_volatility", "recession"}
}

// RunStressTest computes base metrics at 95% confidence over one day
// and applies each scenario's multipliers to them.
func (c *Calculator) RunStressTest(ctx context.Context, symbols []string, weights []float64, scenarioNames []string) (*StressReport, error) {
	if len(scenarioNames) == 0 {
		scenarioNames = DefaultScenarioNames()
	}

	known := Scenarios()
	for _, name := range scenarioNames {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown stress scenario %q", name)
		}
	}

	analysis, err := c.CalculatePortfolioRisk(ctx, &Request{
		Symbols:         symbols,
		Weights:         weights,
		ConfidenceLevel: 0.95,
		TimeHorizon:     1,
	})
	if err != nil {
		return nil, err
	}

	base := analysis.Metrics
	results := make([]StressResult, 0, len(scenarioNames))
	for _, name := range scenarioNames {
		s := known[name]
		stressedVaR := base.HistoricalVaR * s.VaRMultiplier
		results = append(results, StressResult{
			Scenario:          s.Name,
			Description:       s.Description,
			HistoricalVaR:     stressedVaR,
			VaR99:             stressedVaR * stressVaR99Factor,
			ExpectedShortfall: base.ExpectedShortfall * s.VaRMultiplier,
			Volatility:        base.Volatility * s.VolMultiplier,
			MaxDrawdown:       base.MaxDrawdown * s.DrawdownMultiplier,
		})
	}

	return &StressReport{
		Base:     base,
		Results:  results,
		Metadata: analysis.Metadata,
	}, nil
}
