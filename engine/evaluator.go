package engine

import (
	"github.com/nsmanju/stochastic-trading-strategy/shared"
)

const (
	// oversoldThreshold is the %K level below which a market is considered
	// oversold.
	oversoldThreshold = float64(20)
	// overboughtThreshold is the %K level above which a market is considered
	// overbought.
	overboughtThreshold = float64(80)
)

// EvaluatorConfig represents the configuration for the signal evaluator.
type EvaluatorConfig struct {
	// UseMACDFilter gates entries on macd and signal line agreement.
	UseMACDFilter bool
}

// Evaluator evaluates entry signals from stochastic oscillator crossovers
// filtered by the long trend average.
type Evaluator struct {
	cfg *EvaluatorConfig
}

// NewEvaluator initializes a new signal evaluator.
func NewEvaluator(cfg *EvaluatorConfig) *Evaluator {
	return &Evaluator{
		cfg: cfg,
	}
}

// Evaluate returns the entry signal and its reasons for the current
// candlestick given its immediate predecessor. Candlesticks with undefined
// required indicator values never signal.
func (e *Evaluator) Evaluate(prev *shared.EnrichedCandlestick, curr *shared.EnrichedCandlestick) (shared.Signal, []shared.Reason) {
	if prev == nil {
		return shared.NoSignal, nil
	}

	if !curr.TrendEMA.Valid || !curr.StochK.Valid || !curr.StochD.Valid ||
		!prev.StochK.Valid || !prev.StochD.Valid {
		return shared.NoSignal, nil
	}
	if e.cfg.UseMACDFilter && (!curr.MACDLine.Valid || !curr.MACDSignal.Valid) {
		return shared.NoSignal, nil
	}

	k := curr.StochK.Value
	d := curr.StochD.Value
	prevK := prev.StochK.Value
	prevD := prev.StochD.Value

	macdBullish := true
	macdBearish := true
	if e.cfg.UseMACDFilter {
		macdBullish = curr.MACDLine.Value > curr.MACDSignal.Value
		macdBearish = curr.MACDLine.Value < curr.MACDSignal.Value
	}

	// A buy requires an uptrend, an oversold oscillator and a fresh %K cross
	// above %D completing within the oversold band.
	uptrend := curr.Close > curr.TrendEMA.Value
	oversold := k < oversoldThreshold
	crossedAbove := prevK < prevD && k > d && k <= oversoldThreshold

	if uptrend && oversold && crossedAbove && macdBullish {
		reasons := []shared.Reason{shared.AboveTrendEMA, shared.OversoldCrossover}
		if e.cfg.UseMACDFilter {
			reasons = append(reasons, shared.MACDConfirmation)
		}

		return shared.Buy, reasons
	}

	// A sell requires a downtrend, an overbought oscillator and a fresh %K
	// cross below %D completing within the overbought band.
	downtrend := curr.Close < curr.TrendEMA.Value
	overbought := k > overboughtThreshold
	crossedBelow := prevK > prevD && k < d && k >= overboughtThreshold

	if downtrend && overbought && crossedBelow && macdBearish {
		reasons := []shared.Reason{shared.BelowTrendEMA, shared.OverboughtCrossover}
		if e.cfg.UseMACDFilter {
			reasons = append(reasons, shared.MACDConfirmation)
		}

		return shared.Sell, reasons
	}

	return shared.NoSignal, nil
}

// EvaluateSeries evaluates entry signals for the provided series in place,
// candlestick by candlestick in date order. The first candlestick never
// signals.
func (e *Evaluator) EvaluateSeries(series []shared.EnrichedCandlestick) {
	for idx := range series {
		if idx == 0 {
			series[idx].Signal = shared.NoSignal
			continue
		}

		signal, reasons := e.Evaluate(&series[idx-1], &series[idx])
		series[idx].Signal = signal
		series[idx].Reasons = reasons
	}
}
