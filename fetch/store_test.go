package fetch

import (
	"context"
	"testing"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

func TestParseCandleRow(t *testing.T) {
	market := "^GSPC"
	row := map[string]any{
		"date":   "2024-01-02",
		"open":   float64(10),
		"high":   float64(15),
		"low":    float64(8),
		"close":  float64(12),
		"volume": float64(5),
	}

	// Ensure a well formed store row parses into a candlestick.
	candle, err := parseCandleRow(row, market, shared.OneDay)
	assert.NoError(t, err)
	assert.Equal(t, candle.Open, float64(10))
	assert.Equal(t, candle.High, float64(15))
	assert.Equal(t, candle.Low, float64(8))
	assert.Equal(t, candle.Close, float64(12))
	assert.Equal(t, candle.Volume, float64(5))
	assert.Equal(t, candle.Market, market)
	assert.Equal(t, candle.Timeframe, shared.OneDay)
	assert.Equal(t, candle.Date.Format(shared.DateLayout), "2024-01-02")

	// Ensure a row with a missing date is rejected.
	_, err = parseCandleRow(map[string]any{"open": float64(10)}, market, shared.OneDay)
	assert.Error(t, err)

	// Ensure a row with a malformed date is rejected.
	_, err = parseCandleRow(map[string]any{
		"date": "january second",
		"open": float64(10),
	}, market, shared.OneDay)
	assert.Error(t, err)

	// Ensure a row with a non-numeric price column is rejected.
	_, err = parseCandleRow(map[string]any{
		"date": "2024-01-02",
		"open": "ten",
	}, market, shared.OneDay)
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	// Ensure the store can be created.
	store, err := NewStore(&StoreConfig{
		Endpoint:  "http://127.0.0.1:1",
		User:      "user",
		Pass:      "pass",
		Market:    "^GSPC",
		Timeframe: shared.OneDay,
		Logger:    &log.Logger,
	})
	assert.NoError(t, err)

	// Ensure fetching candles fails when the store is unreachable.
	_, err = store.FetchCandlesticks(context.Background())
	assert.Error(t, err)
}
