package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/formulas"
)

// Default metrics substituted when no usable price data exists.
const (
	defaultHistoricalVaR = 0.05
	defaultParametricVaR = 0.05
	defaultVaR99         = 0.08
	defaultES            = 0.07
	defaultVolatility    = 0.20
	defaultMaxDrawdown   = -0.15
	defaultSharpe        = 0.5

	lookbackDays = 252
)

// PriceSource supplies historical closing prices for a symbol.
type PriceSource interface {
	GetCloses(ctx context.Context, symbol string, days int) ([]float64, error)
}

// Calculator computes portfolio risk metrics.
type Calculator struct {
	prices       PriceSource
	riskFreeRate float64
	log          zerolog.Logger
}

// NewCalculator creates a Calculator.
func NewCalculator(prices PriceSource, riskFreeRate float64, log zerolog.Logger) *Calculator {
	return &Calculator{
		prices:       prices,
		riskFreeRate: riskFreeRate,
		log:          log.With().Str("component", "risk_calculator").Logger(),
	}
}

// ValidateRequest checks structural constraints on an analysis request.
func ValidateRequest(req *Request) error {
	if len(req.Symbols) == 0 {
		return errors.New("symbols is required")
	}
	if len(req.Symbols) != len(req.Weights) {
		return errors.New("symbols and weights must have same length")
	}
	if req.ConfidenceLevel <= 0 || req.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence_level must be in (0, 1), got %v", req.ConfidenceLevel)
	}
	if req.TimeHorizon < 1 {
		return fmt.Errorf("time_horizon must be at least 1 day, got %d", req.TimeHorizon)
	}
	return nil
}

// CalculatePortfolioRisk computes the metrics for a validated request.
// Missing or unusable price data degrades to conservative defaults with
// Source set to "defaulted" rather than failing the analysis.
func (c *Calculator) CalculatePortfolioRisk(ctx context.Context, req *Request) (*Analysis, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	weights, err := NormalizeWeights(req.Weights)
	if err != nil {
		return nil, err
	}

	meta := Metadata{
		CalculationID:   uuid.New().String(),
		Symbols:         req.Symbols,
		ConfidenceLevel: req.ConfidenceLevel,
		TimeHorizon:     req.TimeHorizon,
		Timestamp:       time.Now().UTC(),
	}

	portfolioReturns, err := c.buildReturns(ctx, req.Symbols, weights)
	if err != nil {
		c.log.Warn().
			Err(err).
			Strs("symbols", req.Symbols).
			Msg("Falling back to default risk metrics")
		return &Analysis{Metrics: defaultMetrics(), Metadata: meta}, nil
	}

	meta.DataPoints = len(portfolioReturns)

	metrics := Metrics{
		HistoricalVaR:     formulas.HistoricalVaR(portfolioReturns, req.ConfidenceLevel, req.TimeHorizon),
		ParametricVaR:     formulas.ParametricVaR(portfolioReturns, req.ConfidenceLevel, req.TimeHorizon),
		ExpectedShortfall: formulas.ExpectedShortfall(portfolioReturns, req.ConfidenceLevel, req.TimeHorizon),
		VaR99:             formulas.HistoricalVaR(portfolioReturns, 0.99, req.TimeHorizon),
		Volatility:        formulas.AnnualizedVolatility(portfolioReturns),
		MaxDrawdown:       formulas.MaxDrawdown(portfolioReturns),
		SharpeRatio:       formulas.SharpeRatio(portfolioReturns, c.riskFreeRate),
		Source:            SourceComputed,
	}

	c.log.Info().
		Str("calculation_id", meta.CalculationID).
		Float64("historical_var", metrics.HistoricalVaR).
		Int("data_points", meta.DataPoints).
		Msg("Risk calculation completed")

	return &Analysis{Metrics: metrics, Metadata: meta}, nil
}

// buildReturns fetches closes for every symbol and combines them into
// the weighted portfolio return series.
func (c *Calculator) buildReturns(ctx context.Context, symbols []string, weights []float64) ([]float64, error) {
	closes := make([][]float64, len(symbols))
	for i, sym := range symbols {
		series, err := c.prices.GetCloses(ctx, sym, lookbackDays)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", sym).Msg("No price data for symbol")
			continue
		}
		closes[i] = series
	}
	return BuildPortfolioReturns(closes, weights)
}

func defaultMetrics() Metrics {
	return Metrics{
		HistoricalVaR:     defaultHistoricalVaR,
		ParametricVaR:     defaultParametricVaR,
		ExpectedShortfall: defaultES,
		VaR99:             defaultVaR99,
		Volatility:        defaultVolatility,
		MaxDrawdown:       defaultMaxDrawdown,
		SharpeRatio:       defaultSharpe,
		Source:            SourceDefaulted,
	}
}
