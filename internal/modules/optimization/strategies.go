package optimization

import (
	"math"

	"github.com/Cyber-Bakri/FINANCIAL-RISK-PREDICTION-SYSTEM/pkg/formulas"
)

// A return series qualifies for weighting when its source had more
// than minBars closes and more than minReturns finite returns.
const (
	minBars    = 20
	minReturns = 10

	defaultAssetVol = 0.02
	volFloor        = 0.001
)

// assetSeries is one symbol's historical daily returns.
// Returns is empty when the symbol had no usable history.
type assetSeries struct {
	Symbol  string
	Returns []float64
	usable  bool
}

// WeightStrategy computes target weights from per-asset return series.
type WeightStrategy interface {
	Name() string
	Weights(assets []assetSeries) []float64
}

// EqualWeight allocates 1/N to every symbol.
type EqualWeight struct{}

func (EqualWeight) Name() string { return "equal_weight" }

func (EqualWeight) Weights(assets []assetSeries) []float64 {
	weights := make([]float64, len(assets))
	for i := range weights {
		weights[i] = 1.0 / float64(len(assets))
	}
	return weights
}

// MaxSharpe weights assets proportionally to their daily Sharpe proxy
// (mean return over population standard deviation). Negative ratios
// are shifted above zero so losers keep a small allocation.
type MaxSharpe struct{}

func (MaxSharpe) Name() string { return "max_sharpe" }

func (MaxSharpe) Weights(assets []assetSeries) []float64 {
	sharpes := make([]float64, len(assets))
	for i, a := range assets {
		if !a.usable {
			continue
		}
		std := formulas.PopStdDev(a.Returns)
		if std > 0 {
			sharpes[i] = formulas.Mean(a.Returns) / std
		}
	}

	minSharpe := sharpes[0]
	for _, s := range sharpes[1:] {
		if s < minSharpe {
			minSharpe = s
		}
	}

	adjusted := make([]float64, len(sharpes))
	var total float64
	for i, s := range sharpes {
		if s < 0 {
			adjusted[i] = math.Max(0.01, s+math.Abs(minSharpe)+0.1)
		} else {
			adjusted[i] = math.Max(0.01, s)
		}
		total += adjusted[i]
	}

	if total == 0 {
		return EqualWeight{}.Weights(assets)
	}

	weights := make([]float64, len(adjusted))
	for i, s := range adjusted {
		weights[i] = s / total
	}
	return weights
}

// MinVariance weights assets by inverse volatility.
type MinVariance struct{}

func (MinVariance) Name() string { return "min_variance" }

func (MinVariance) Weights(assets []assetSeries) []float64 {
	invVols := make([]float64, len(assets))
	var total float64
	for i, a := range assets {
		vol := defaultAssetVol
		if a.usable {
			vol = formulas.PopStdDev(a.Returns)
		}
		invVols[i] = 1.0 / math.Max(volFloor, vol)
		total += invVols[i]
	}

	weights := make([]float64, len(invVols))
	for i, iv := range invVols {
		weights[i] = iv / total
	}
	return weights
}

// strategyFor resolves a method name, defaulting to equal weight.
func strategyFor(method string) WeightStrategy {
	switch method {
	case "max_sharpe":
		return MaxSharpe{}
	case "min_variance":
		return MinVariance{}
	default:
		return EqualWeight{}
	}
}
