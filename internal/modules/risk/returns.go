package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/formulas"
)

// ErrInsufficientData indicates no symbol had a usable return series.
var ErrInsufficientData = errors.New("insufficient data for portfolio returns")

// NormalizeWeights returns weights rescaled to sum to 1.
// Weights already within 1e-6 of 1 are returned unchanged.
func NormalizeWeights(weights []float64) ([]float64, error) {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return nil, errors.New("weights sum to zero")
	}
	if math.Abs(sum-1.0) <= 1e-6 {
		return weights, nil
	}

	normalized := make([]float64, len(weights))
	for i, w := range weights {
		normalized[i] = w / sum
	}
	return normalized, nil
}

// BuildPortfolioReturns combines per-symbol close series into a single
// weighted return series. Series lengths are aligned on the shortest
// one by keeping each series' most recent returns. Symbols with fewer
// than two closes contribute nothing; when every symbol is empty,
// ErrInsufficientData is returned.
func BuildPortfolioReturns(closesBySymbol [][]float64, weights []float64) ([]float64, error) {
	if len(closesBySymbol) != len(weights) {
		return nil, fmt.Errorf("got %d close series for %d weights", len(closesBySymbol), len(weights))
	}

	weights, err := NormalizeWeights(weights)
	if err != nil {
		return nil, err
	}

	var weighted [][]float64
	for i, closes := range closesBySymbol {
		returns := formulas.CalculateReturns(closes)
		if len(returns) == 0 {
			continue
		}
		series := make([]float64, len(returns))
		for j, r := range returns {
			series[j] = r * weights[i]
		}
		weighted = append(weighted, series)
	}

	if len(weighted) == 0 {
		return nil, ErrInsufficientData
	}

	minLen := len(weighted[0])
	for _, series := range weighted[1:] {
		if len(series) < minLen {
			minLen = len(series)
		}
	}

	portfolio := make([]float64, minLen)
	for _, series := range weighted {
		tail := series[len(series)-minLen:]
		for j, r := range tail {
			portfolio[j] += r
		}
	}
	return portfolio, nil
}
