package pipeline

import (
	"errors"
	"fmt"

	"github.com/nsmanju/stochastic-trading-strategy/engine"
	"github.com/nsmanju/stochastic-trading-strategy/indicator"
	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"golang.org/x/sync/errgroup"
)

// ErrNoCandles is returned when a run is requested for an empty series.
var ErrNoCandles = errors.New("no candlesticks provided")

// Run enriches the provided candlestick series with indicator values and
// evaluates an entry signal for every candlestick. The series is expected in
// ascending date order and is not modified.
func Run(candles []shared.Candlestick, cfg *Config) ([]shared.EnrichedCandlestick, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if len(candles) == 0 {
		return nil, ErrNoCandles
	}

	enriched := make([]shared.EnrichedCandlestick, len(candles))
	for idx := range candles {
		enriched[idx].Candlestick = candles[idx]
	}

	// The indicator passes write disjoint fields of the enriched series and
	// can run concurrently.
	var g errgroup.Group

	g.Go(func() error {
		ema, err := indicator.NewEMA(cfg.EMAPeriod)
		if err != nil {
			return fmt.Errorf("creating trend ema: %v", err)
		}

		for idx := range candles {
			enriched[idx].TrendEMA = shared.NewOptionalFloat(ema.Update(candles[idx].Close))
		}

		return nil
	})

	g.Go(func() error {
		stoch, err := indicator.NewStochastic(cfg.KPeriod, cfg.DPeriod)
		if err != nil {
			return fmt.Errorf("creating stochastic oscillator: %v", err)
		}

		for idx := range candles {
			k, d := stoch.Update(&candles[idx])
			enriched[idx].StochK = k
			enriched[idx].StochD = d
		}

		return nil
	})

	if cfg.UseMACDFilter {
		g.Go(func() error {
			macd, err := indicator.NewMACD(cfg.MACDFastPeriod, cfg.MACDSlowPeriod, cfg.MACDSignalPeriod)
			if err != nil {
				return fmt.Errorf("creating macd: %v", err)
			}

			for idx := range candles {
				line, signal := macd.Update(candles[idx].Close)
				enriched[idx].MACDLine = shared.NewOptionalFloat(line)
				enriched[idx].MACDSignal = shared.NewOptionalFloat(signal)
			}

			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	evaluator := engine.NewEvaluator(&engine.EvaluatorConfig{UseMACDFilter: cfg.UseMACDFilter})
	evaluator.EvaluateSeries(enriched)

	return enriched, nil
}
