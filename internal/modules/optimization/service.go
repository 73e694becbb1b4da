package optimization

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/formulas"
)

// Per-asset annualized fallbacks when a symbol has no usable history.
const (
	fallbackAssetReturn = 0.08
	fallbackAssetVol    = 0.20

	riskFreeRate = 0.02
	lookbackDays = 252
)

// Service runs portfolio optimizations.
type Service struct {
	prices risk.PriceSource
	log    zerolog.Logger
}

// NewService creates an optimization service.
func NewService(prices risk.PriceSource, log zerolog.Logger) *Service {
	return &Service{
		prices: prices,
		log:    log.With().Str("component", "optimizer").Logger(),
	}
}

// Optimize computes target weights for the requested method and
// compares them against the current allocation.
func (s *Service) Optimize(ctx context.Context, req *Request) (*Result, error) {
	if len(req.Symbols) == 0 {
		return nil, errors.New("symbols is required")
	}
	if len(req.CurrentWeights) > 0 && len(req.CurrentWeights) != len(req.Symbols) {
		return nil, fmt.Errorf("got %d current weights for %d symbols", len(req.CurrentWeights), len(req.Symbols))
	}

	assets := s.fetchAssets(ctx, req.Symbols)
	strategy := strategyFor(req.Method)
	optimized := strategy.Weights(assets)

	current := req.CurrentWeights
	if len(current) == 0 {
		current = EqualWeight{}.Weights(assets)
	}

	optimizedMetrics := calculateMetrics(assets, optimized)
	currentMetrics := calculateMetrics(assets, current)

	source := risk.SourceDefaulted
	for _, a := range assets {
		if a.usable {
			source = risk.SourceComputed
			break
		}
	}

	weightsBySymbol := make(map[string]float64, len(req.Symbols))
	for i, sym := range req.Symbols {
		weightsBySymbol[sym] = optimized[i]
	}

	result := &Result{
		OptimizedWeights: weightsBySymbol,
		Metrics:          optimizedMetrics,
		CurrentMetrics:   currentMetrics,
		Method:           strategy.Name(),
		Symbols:          req.Symbols,
		Recommendations:  buildRecommendations(req.Symbols, optimized, current, optimizedMetrics, currentMetrics),
		Source:           source,
		Timestamp:        time.Now().UTC(),
	}

	s.log.Info().
		Str("method", result.Method).
		Strs("symbols", req.Symbols).
		Float64("sharpe", optimizedMetrics.SharpeRatio).
		Msg("Portfolio optimization completed")

	return result, nil
}

// fetchAssets loads and qualifies the return series for each symbol.
func (s *Service) fetchAssets(ctx context.Context, symbols []string) []assetSeries {
	assets := make([]assetSeries, len(symbols))
	for i, sym := range symbols {
		assets[i] = assetSeries{Symbol: sym}

		closes, err := s.prices.GetCloses(ctx, sym, lookbackDays)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", sym).Msg("No price data for symbol")
			continue
		}
		if len(closes) <= minBars {
			continue
		}

		returns := formulas.CalculateReturns(closes)
		if len(returns) <= minReturns {
			continue
		}
		assets[i].Returns = returns
		assets[i].usable = true
	}
	return assets
}

// calculateMetrics computes annualized portfolio metrics for an
// allocation. Symbols without usable history contribute fallback
// per-asset numbers; when no symbol is usable the portfolio metrics
// degrade to the weighted average of those fallbacks.
func calculateMetrics(assets []assetSeries, weights []float64) PortfolioMetrics {
	var weightedSeries [][]float64
	individualReturns := make([]float64, len(assets))
	individualVols := make([]float64, len(assets))

	for i, a := range assets {
		if a.usable {
			individualReturns[i] = formulas.Mean(a.Returns) * formulas.TradingDaysPerYear
			individualVols[i] = formulas.PopStdDev(a.Returns) * math.Sqrt(formulas.TradingDaysPerYear)

			series := make([]float64, len(a.Returns))
			for j, r := range a.Returns {
				series[j] = r * weights[i]
			}
			weightedSeries = append(weightedSeries, series)
		} else {
			individualReturns[i] = fallbackAssetReturn
			individualVols[i] = fallbackAssetVol
		}
	}

	var expectedReturn, volatility float64
	if len(weightedSeries) > 0 {
		minLen := len(weightedSeries[0])
		for _, series := range weightedSeries[1:] {
			if len(series) < minLen {
				minLen = len(series)
			}
		}
		portfolio := make([]float64, minLen)
		for _, series := range weightedSeries {
			tail := series[len(series)-minLen:]
			for j, r := range tail {
				portfolio[j] += r
			}
		}
		expectedReturn = formulas.Mean(portfolio) * formulas.TradingDaysPerYear
		volatility = formulas.PopStdDev(portfolio) * math.Sqrt(formulas.TradingDaysPerYear)
	} else {
		var weightSum, varianceSum float64
		for i := range assets {
			expectedReturn += individualReturns[i] * weights[i]
			varianceSum += individualVols[i] * individualVols[i] * weights[i]
			weightSum += weights[i]
		}
		if weightSum > 0 {
			expectedReturn /= weightSum
			volatility = math.Sqrt(varianceSum / weightSum)
		}
	}

	var sharpe float64
	if volatility > 0 {
		sharpe = (expectedReturn - riskFreeRate) / volatility
	}

	return PortfolioMetrics{
		ExpectedReturn: expectedReturn,
		Volatility:     volatility,
		SharpeRatio:    sharpe,
	}
}

// buildRecommendations derives insights and per-symbol weight moves.
func buildRecommendations(symbols []string, optimized, current []float64, optimizedMetrics, currentMetrics PortfolioMetrics) Recommendations {
	maxIdx, minIdx := 0, 0
	for i, w := range optimized {
		if w > optimized[maxIdx] {
			maxIdx = i
		}
		if w < optimized[minIdx] {
			minIdx = i
		}
	}

	insights := []Insight{{
		Type:    "top_increase",
		Message: "Increase allocation to " + symbols[maxIdx],
		Reason:  "Higher risk-adjusted returns expected",
	}}
	if len(symbols) > 1 {
		insights = append(insights, Insight{
			Type:    "reduce",
			Message: "Reduce allocation to " + symbols[minIdx],
			Reason:  "Lower expected risk-adjusted performance",
		})
	}

	changes := make([]WeightChange, len(symbols))
	for i, sym := range symbols {
		change := (optimized[i] - current[i]) * 100
		action := "hold"
		if change > 0.1 {
			action = "increase"
		} else if change < -0.1 {
			action = "decrease"
		}
		changes[i] = WeightChange{
			Symbol:            sym,
			CurrentWeight:     current[i] * 100,
			RecommendedWeight: optimized[i] * 100,
			Change:            change,
			Action:            action,
			Reasoning:         "Based on risk-return optimization analysis",
		}
	}

	return Recommendations{
		KeyInsights:   insights,
		WeightChanges: changes,
		PerformanceImprovement: Improvement{
			ReturnImprovement: optimizedMetrics.ExpectedReturn - currentMetrics.ExpectedReturn,
			VolatilityChange:  optimizedMetrics.Volatility - currentMetrics.Volatility,
			SharpeImprovement: optimizedMetrics.SharpeRatio - currentMetrics.SharpeRatio,
		},
	}
}
