package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/formulas"
)

const (
	// Daily parameters substituted when no history is available.
	defaultMeanReturn = 0.0008
	defaultStdReturn  = 0.02

	maxRetainedPaths = 1000
	maxSimulations   = 1_000_000
	lookbackDays     = 252
)

// Simulator runs Monte Carlo portfolio simulations.
type Simulator struct {
	prices risk.PriceSource
	seed   uint64
	log    zerolog.Logger
}

// NewSimulator creates a Simulator. A zero seed selects
// non-deterministic sampling.
func NewSimulator(prices risk.PriceSource, seed uint64, log zerolog.Logger) *Simulator {
	return &Simulator{
		prices: prices,
		seed:   seed,
		log:    log.With().Str("component", "monte_carlo").Logger(),
	}
}

// Run executes a Monte Carlo simulation for the requested portfolio.
// When historical parameters cannot be estimated, default daily
// parameters are used and the result is marked as defaulted.
func (s *Simulator) Run(ctx context.Context, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	weights, err := risk.NormalizeWeights(req.Weights)
	if err != nil {
		return nil, err
	}

	source := risk.SourceComputed
	mean, std, err := s.estimateParameters(ctx, req.Symbols, weights)
	if err != nil {
		s.log.Warn().
			Err(err).
			Strs("symbols", req.Symbols).
			Msg("Using default simulation parameters")
		mean, std = defaultMeanReturn, defaultStdReturn
		source = risk.SourceDefaulted
	}

	scaledMean := mean * float64(req.TimeHorizon)
	scaledStd := std * math.Sqrt(float64(req.TimeHorizon))

	dist := distuv.Normal{Mu: scaledMean, Sigma: scaledStd}
	if s.seed != 0 {
		dist.Src = rand.NewSource(s.seed)
	}

	returns := make([]float64, req.NumSimulations)
	finalValues := make([]float64, req.NumSimulations)
	var lossCount int
	for i := range returns {
		r := dist.Rand()
		returns[i] = r
		finalValues[i] = req.InitialValue * (1 + r)
		if r < 0 {
			lossCount++
		}
	}

	result := &Result{
		PortfolioReturns: truncate(returns),
		FinalValues:      truncate(finalValues),
		Statistics: Statistics{
			MeanReturn:        formulas.Mean(returns),
			StdReturn:         formulas.PopStdDev(returns),
			ProbabilityOfLoss: float64(lossCount) / float64(req.NumSimulations),
		},
		RiskMetrics: RiskMetrics{
			VaR95: formulas.HistoricalVaR(returns, 0.95, 1),
			VaR99: formulas.HistoricalVaR(returns, 0.99, 1),
			ES95:  formulas.ExpectedShortfall(returns, 0.95, 1),
			ES99:  formulas.ExpectedShortfall(returns, 0.99, 1),
		},
		Percentiles: Percentiles{
			P1:  formulas.Percentile(returns, 1),
			P5:  formulas.Percentile(returns, 5),
			P25: formulas.Percentile(returns, 25),
			P50: formulas.Percentile(returns, 50),
			P75: formulas.Percentile(returns, 75),
			P95: formulas.Percentile(returns, 95),
			P99: formulas.Percentile(returns, 99),
		},
		Metadata: Metadata{
			NumSimulations: req.NumSimulations,
			TimeHorizon:    req.TimeHorizon,
			InitialValue:   req.InitialValue,
			Symbols:        req.Symbols,
			Weights:        weights,
			Source:         source,
			Timestamp:      time.Now().UTC(),
		},
	}

	s.log.Info().
		Int("simulations", req.NumSimulations).
		Float64("var_95", result.RiskMetrics.VaR95).
		Str("source", source).
		Msg("Monte Carlo simulation completed")

	return result, nil
}

// estimateParameters derives daily mean and population standard
// deviation from the weighted historical portfolio returns.
func (s *Simulator) estimateParameters(ctx context.Context, symbols []string, weights []float64) (mean, std float64, err error) {
	closes := make([][]float64, len(symbols))
	for i, sym := range symbols {
		series, err := s.prices.GetCloses(ctx, sym, lookbackDays)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", sym).Msg("No price data for symbol")
			continue
		}
		closes[i] = series
	}

	portfolioReturns, err := risk.BuildPortfolioReturns(closes, weights)
	if err != nil {
		return 0, 0, err
	}
	return formulas.Mean(portfolioReturns), formulas.PopStdDev(portfolioReturns), nil
}

func validate(req *Request) error {
	if len(req.Symbols) == 0 {
		return errors.New("symbols is required")
	}
	if len(req.Symbols) != len(req.Weights) {
		return errors.New("symbols and weights must have same length")
	}
	if req.NumSimulations < 1 {
		return errors.New("num_simulations must be positive")
	}
	if req.NumSimulations > maxSimulations {
		return fmt.Errorf("num_simulations exceeds maximum of %d", maxSimulations)
	}
	if req.TimeHorizon < 1 {
		return errors.New("time_horizon must be at least 1 day")
	}
	if req.InitialValue <= 0 {
		return errors.New("initial_value must be positive")
	}
	return nil
}

func truncate(values []float64) []float64 {
	if len(values) <= maxRetainedPaths {
		return values
	}
	return values[:maxRetainedPaths]
}
