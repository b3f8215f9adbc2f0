package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// HistoricDataConfig represents the historic data source configuration.
type HistoricDataConfig struct {
	// Market represents the historic data market.
	Market string
	// Timeframe represents the timeframe for the historic data.
	Timeframe shared.Timeframe
	// FilePath is the filepath to the historic market data.
	FilePath string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// HistoricData represents a json file backed candlestick source.
type HistoricData struct {
	cfg     *HistoricDataConfig
	candles []shared.Candlestick
}

// Ensure the historic data source implements the CandleSource interface.
var _ shared.CandleSource = (*HistoricData)(nil)

// loadHistoricData loads the historic data bytes from the provided file path.
func loadHistoricData(filepath string) ([]gjson.Result, error) {
	readb, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading historic data from file with path '%s': %v", filepath, err)
	}

	b := gjson.ParseBytes(readb)
	if !b.IsArray() {
		return nil, fmt.Errorf("historic data in file with path '%s' is not a json array", filepath)
	}

	return b.Array(), nil
}

// NewHistoricData initializes a new historic data source.
func NewHistoricData(cfg *HistoricDataConfig) (*HistoricData, error) {
	b, err := loadHistoricData(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("loading historic data: %v", err)
	}

	historicData := HistoricData{
		cfg: cfg,
	}

	candles, err := shared.ParseCandlesticks(b, cfg.Market, cfg.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("parsing candlesticks: %v", err)
	}

	shared.SortCandlesticks(candles)
	historicData.candles = candles

	return &historicData, nil
}

// FetchCandlesticks fetches the loaded candlestick series, sorted by date in
// ascending order.
func (h *HistoricData) FetchCandlesticks(ctx context.Context) ([]shared.Candlestick, error) {
	if len(h.candles) > 0 {
		first := h.candles[0].Date
		last := h.candles[len(h.candles)-1].Date

		h.cfg.Logger.Info().Msgf("loaded %d %s candles for %s, from %s, to %s",
			len(h.candles), h.cfg.Timeframe.String(), h.cfg.Market,
			first.Format(time.RFC1123), last.Format(time.RFC1123))
	}

	return h.candles, nil
}
