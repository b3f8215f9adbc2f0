package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
)

// csvHeader is the column header row of the enriched series export.
var csvHeader = []string{"date", "open", "high", "low", "close", "volume",
	"ema_long", "stoch_k", "stoch_d", "macd_line", "macd_signal", "signal"}

// formatTime formats the provided bar time, including the time of day for
// intraday timeframes.
func formatTime(t time.Time, timeframe shared.Timeframe) string {
	if timeframe == shared.OneDay {
		return t.Format(shared.DateLayout)
	}

	return t.Format(shared.DateTimeLayout)
}

// WriteCSV writes the provided enriched candlestick series to a csv file at
// the provided path. Undefined indicator values are written as empty cells.
func WriteCSV(series []shared.EnrichedCandlestick, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %v", err)
	}

	defer f.Close()

	w := csv.NewWriter(f)

	err = w.Write(csvHeader)
	if err != nil {
		return fmt.Errorf("writing csv header: %v", err)
	}

	for idx := range series {
		candle := &series[idx]

		record := []string{
			formatTime(candle.Date, candle.Timeframe),
			strconv.FormatFloat(candle.Open, 'f', -1, 64),
			strconv.FormatFloat(candle.High, 'f', -1, 64),
			strconv.FormatFloat(candle.Low, 'f', -1, 64),
			strconv.FormatFloat(candle.Close, 'f', -1, 64),
			strconv.FormatFloat(candle.Volume, 'f', -1, 64),
			candle.TrendEMA.String(),
			candle.StochK.String(),
			candle.StochD.String(),
			candle.MACDLine.String(),
			candle.MACDSignal.String(),
			candle.Signal.String(),
		}

		err = w.Write(record)
		if err != nil {
			return fmt.Errorf("writing csv record: %v", err)
		}
	}

	w.Flush()

	return w.Error()
}
