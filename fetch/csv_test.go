package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog/log"
)

func TestCSVData(t *testing.T) {
	market := "^GSPC"
	data := `Date,Open,High,Low,Close,Volume
2024-01-03,11,16,9,13,6
2024-01-02,10,15,8,12,5
`

	path := filepath.Join(t.TempDir(), "candles.csv")
	err := os.WriteFile(path, []byte(data), 0644)
	assert.NoError(t, err)

	cfg := &CSVDataConfig{
		Market:    market,
		Timeframe: shared.OneDay,
		FilePath:  path,
		Logger:    &log.Logger,
	}

	// Ensure the csv data source can be initialized.
	csvData, err := NewCSVData(cfg)
	assert.NoError(t, err)

	// Ensure the loaded candles are sorted by date in ascending order.
	candles, err := csvData.FetchCandlesticks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, len(candles), 2)
	assert.Equal(t, candles[0].Open, float64(10))
	assert.Equal(t, candles[0].High, float64(15))
	assert.Equal(t, candles[0].Low, float64(8))
	assert.Equal(t, candles[0].Close, float64(12))
	assert.Equal(t, candles[0].Volume, float64(5))
	assert.Equal(t, candles[0].Date.Format(shared.DateLayout), "2024-01-02")
	assert.Equal(t, candles[1].Close, float64(13))
	assert.Equal(t, candles[0].Market, market)
	assert.Equal(t, candles[0].Timeframe, shared.OneDay)

	// Ensure initializing the source fails when a required column is missing.
	missingPath := filepath.Join(t.TempDir(), "missing.csv")
	err = os.WriteFile(missingPath, []byte("Date,Open,High,Low,Close\n2024-01-02,10,15,8,12\n"), 0644)
	assert.NoError(t, err)

	_, err = NewCSVData(&CSVDataConfig{
		Market:    market,
		Timeframe: shared.OneDay,
		FilePath:  missingPath,
		Logger:    &log.Logger,
	})
	assert.Error(t, err)

	// Ensure initializing the source fails on malformed values.
	malformedPath := filepath.Join(t.TempDir(), "malformed.csv")
	err = os.WriteFile(malformedPath, []byte("Date,Open,High,Low,Close,Volume\n2024-01-02,ten,15,8,12,5\n"), 0644)
	assert.NoError(t, err)

	_, err = NewCSVData(&CSVDataConfig{
		Market:    market,
		Timeframe: shared.OneDay,
		FilePath:  malformedPath,
		Logger:    &log.Logger,
	})
	assert.Error(t, err)
}
