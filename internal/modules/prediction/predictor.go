// Package prediction produces heuristic per-symbol risk forecasts.
package prediction

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/internal/modules/risk"
	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/formulas"
)

// Asset-class adjustments applied to the estimated daily volatility.
const (
	cryptoVolFactor = 1.5
	etfVolFactor    = 0.8

	cryptoReturn = 0.002
	etfReturn    = 0.0008
	stockReturn  = 0.001

	cryptoDefaultVol = 0.04
	etfDefaultVol    = 0.012
	stockDefaultVol  = 0.02

	z95 = 1.645
	z99 = 2.326

	modelScore        = 0.75
	defaultModelScore = 0.70

	volLookbackDays = 60
	minDataPoints   = 10
	rsiLength       = 14
)

// Forecast is a per-symbol risk prediction.
type Forecast struct {
	PredictedVolatility float64  `json:"predicted_volatility"`
	PredictedReturn     float64  `json:"predicted_return"`
	VaR95               float64  `json:"var_95"`
	VaR99               float64  `json:"var_99"`
	ModelScore          float64  `json:"model_score"`
	RSI                 *float64 `json:"rsi,omitempty"`
	MomentumSignal      string   `json:"momentum_signal,omitempty"`
}

// Report is a complete prediction response.
type Report struct {
	Predictions map[string]Forecast `json:"predictions"`
	Metadata    Metadata            `json:"metadata"`
}

// Metadata describes how predictions were produced.
type Metadata struct {
	Symbols     []string  `json:"symbols"`
	TimeHorizon int       `json:"time_horizon"`
	ModelType   string    `json:"model_type"`
	Timestamp   time.Time `json:"timestamp"`
}

// Predictor generates forecasts from recent volatility and momentum.
type Predictor struct {
	prices risk.PriceSource
	log    zerolog.Logger
}

// NewPredictor creates a Predictor.
func NewPredictor(prices risk.PriceSource, log zerolog.Logger) *Predictor {
	return &Predictor{
		prices: prices,
		log:    log.With().Str("component", "predictor").Logger(),
	}
}

// PredictRisk forecasts volatility, return, and VaR per symbol.
// Symbols without recent history receive asset-class defaults.
func (p *Predictor) PredictRisk(ctx context.Context, symbols []string, timeHorizon int) *Report {
	if timeHorizon < 1 {
		timeHorizon = 1
	}

	predictions := make(map[string]Forecast, len(symbols))
	for _, sym := range symbols {
		predictions[sym] = p.forecastSymbol(ctx, sym)
	}

	return &Report{
		Predictions: predictions,
		Metadata: Metadata{
			Symbols:     symbols,
			TimeHorizon: timeHorizon,
			ModelType:   "simple_heuristic",
			Timestamp:   time.Now().UTC(),
		},
	}
}

func (p *Predictor) forecastSymbol(ctx context.Context, symbol string) Forecast {
	closes, err := p.prices.GetCloses(ctx, symbol, volLookbackDays)
	if err != nil {
		p.log.Warn().Err(err).Str("symbol", symbol).Msg("No price data for prediction")
	}

	vol, score := p.estimateVolatility(symbol, closes)

	var predVol, predReturn float64
	switch {
	case isCrypto(symbol):
		predVol = vol * cryptoVolFactor
		predReturn = cryptoReturn
	case isBroadETF(symbol):
		predVol = vol * etfVolFactor
		predReturn = etfReturn
	default:
		predVol = vol
		predReturn = stockReturn
	}

	forecast := Forecast{
		PredictedVolatility: predVol,
		PredictedReturn:     predReturn,
		VaR95:               math.Max(0, -(predReturn - z95*predVol)),
		VaR99:               math.Max(0, -(predReturn - z99*predVol)),
		ModelScore:          score,
	}

	if rsi := formulas.CalculateRSI(closes, rsiLength); rsi != nil {
		forecast.RSI = rsi
		forecast.MomentumSignal = momentumSignal(*rsi)
	}
	return forecast
}

// estimateVolatility returns the population standard deviation of
// recent daily returns, or an asset-class default when the history is
// too short. The second return value is the model confidence.
func (p *Predictor) estimateVolatility(symbol string, closes []float64) (float64, float64) {
	if len(closes) < minDataPoints {
		switch {
		case isCrypto(symbol):
			return cryptoDefaultVol, defaultModelScore
		case isBroadETF(symbol):
			return etfDefaultVol, defaultModelScore
		default:
			return stockDefaultVol, defaultModelScore
		}
	}

	returns := formulas.CalculateReturns(closes)
	if len(returns) == 0 {
		return stockDefaultVol, defaultModelScore
	}
	return formulas.PopStdDev(returns), modelScore
}

func isCrypto(symbol string) bool {
	upper := strings.ToUpper(symbol)
	return strings.HasPrefix(upper, "BTC") || strings.HasPrefix(upper, "ETH")
}

func isBroadETF(symbol string) bool {
	switch strings.ToUpper(symbol) {
	case "SPY", "QQQ", "VTI":
		return true
	}
	return false
}

func momentumSignal(rsi float64) string {
	switch {
	case rsi >= 70:
		return "overbought"
	case rsi <= 30:
		return "oversold"
	default:
		return "neutral"
	}
}
