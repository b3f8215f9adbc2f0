package fetch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/rs/zerolog"
)

// SourceConfig is the configuration for candle source selection.
type SourceConfig struct {
	// Market represents the market to load candles for.
	Market string
	// Timeframe represents the timeframe of the loaded candles.
	Timeframe shared.Timeframe
	// DataFilePath is the filepath to file backed market data (csv or json).
	DataFilePath string
	// FMPAPIKey is the FMP service API Key.
	FMPAPIKey string
	// StoreEndpoint represents the candle store connection endpoint.
	StoreEndpoint string
	// StoreUser is the candle store user.
	StoreUser string
	// StorePass is the candle store user pass.
	StorePass string
	// Start is the start of the fetched range.
	Start time.Time
	// End is the end of the fetched range.
	End time.Time
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// NewSource initializes the candle source described by the provided
// configuration. A set data filepath selects a file backed source, a set
// store endpoint selects the candle store, and the FMP api is used otherwise.
func NewSource(cfg *SourceConfig) (shared.CandleSource, error) {
	switch {
	case cfg.DataFilePath != "":
		switch ext := strings.ToLower(filepath.Ext(cfg.DataFilePath)); ext {
		case ".csv":
			return NewCSVData(&CSVDataConfig{
				Market:    cfg.Market,
				Timeframe: cfg.Timeframe,
				FilePath:  cfg.DataFilePath,
				Logger:    cfg.Logger,
			})
		case ".json":
			return NewHistoricData(&HistoricDataConfig{
				Market:    cfg.Market,
				Timeframe: cfg.Timeframe,
				FilePath:  cfg.DataFilePath,
				Logger:    cfg.Logger,
			})
		default:
			return nil, fmt.Errorf("unsupported data file extension: '%s'", ext)
		}
	case cfg.StoreEndpoint != "":
		return NewStore(&StoreConfig{
			Endpoint:  cfg.StoreEndpoint,
			User:      cfg.StoreUser,
			Pass:      cfg.StorePass,
			Market:    cfg.Market,
			Timeframe: cfg.Timeframe,
			Logger:    cfg.Logger,
		})
	default:
		if cfg.FMPAPIKey == "" {
			return nil, fmt.Errorf("an fmp api key is required when no data filepath or store endpoint is set")
		}

		return NewFMPClient(&FMPConfig{
			APIKey: cfg.FMPAPIKey,
			Market: cfg.Market,
			Start:  cfg.Start,
			End:    cfg.End,
		}), nil
	}
}
