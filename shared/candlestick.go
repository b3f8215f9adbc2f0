package shared

import (
	"fmt"
	"slices"
	"time"

	"github.com/tidwall/gjson"
)

// Candlestick represents a unit candlestick for a market.
type Candlestick struct {
	Open   float64
	Low    float64
	High   float64
	Close  float64
	Volume float64
	Date   time.Time

	// Metadata fields.
	Market    string
	Timeframe Timeframe
}

// EnrichedCandlestick represents a candlestick annotated with the indicator
// values and the entry signal derived for it.
type EnrichedCandlestick struct {
	Candlestick

	// Derived indicator fields, undefined until enough history exists
	// to compute them.
	TrendEMA   OptionalFloat
	StochK     OptionalFloat
	StochD     OptionalFloat
	MACDLine   OptionalFloat
	MACDSignal OptionalFloat

	Signal  Signal
	Reasons []Reason
}

// ParseDate parses the provided candlestick date, accepting daily and
// intraday date layouts.
func ParseDate(date string) (time.Time, error) {
	dt, err := time.Parse(DateLayout, date)
	if err == nil {
		return dt, nil
	}

	dt, err = time.Parse(DateTimeLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing candlestick date '%s': %w", date, err)
	}

	return dt, nil
}

// ParseCandlesticks parses candlesticks from the provided json data.
func ParseCandlesticks(data []gjson.Result, market string, timeframe Timeframe) ([]Candlestick, error) {
	candles := make([]Candlestick, len(data))

	for idx := range data {
		var candle Candlestick

		candle.Open = data[idx].Get("open").Float()
		candle.Low = data[idx].Get("low").Float()
		candle.High = data[idx].Get("high").Float()
		candle.Close = data[idx].Get("close").Float()
		candle.Volume = data[idx].Get("volume").Float()

		candle.Market = market
		candle.Timeframe = timeframe

		dt, err := ParseDate(data[idx].Get("date").String())
		if err != nil {
			return nil, err
		}

		candle.Date = dt
		candles[idx] = candle
	}

	return candles, nil
}

// SortCandlesticks sorts the provided candlesticks by date in ascending order.
func SortCandlesticks(candles []Candlestick) {
	slices.SortFunc(candles, func(a, b Candlestick) int {
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		default:
			return 0
		}
	})
}
