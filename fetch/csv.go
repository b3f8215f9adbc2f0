package fetch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/rs/zerolog"
)

// csvColumns are the column headers required of csv market data.
var csvColumns = []string{"date", "open", "high", "low", "close", "volume"}

// CSVDataConfig represents the csv data source configuration.
type CSVDataConfig struct {
	// Market represents the csv data market.
	Market string
	// Timeframe represents the timeframe for the csv data.
	Timeframe shared.Timeframe
	// FilePath is the filepath to the csv market data.
	FilePath string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// CSVData represents a csv file backed candlestick source.
type CSVData struct {
	cfg     *CSVDataConfig
	candles []shared.Candlestick
}

// Ensure the csv data source implements the CandleSource interface.
var _ shared.CandleSource = (*CSVData)(nil)

// parseColumnPositions maps the required csv columns to their positions in
// the provided header. Header names are matched case insensitively.
func parseColumnPositions(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for idx := range header {
		positions[strings.ToLower(strings.TrimSpace(header[idx]))] = idx
	}

	for _, name := range csvColumns {
		if _, ok := positions[name]; !ok {
			return nil, fmt.Errorf("csv header missing column '%s'", name)
		}
	}

	return positions, nil
}

// parseFloatColumn parses the named float column from the provided csv record.
func parseFloatColumn(record []string, positions map[string]int, name string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(record[positions[name]]), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing csv column '%s': %v", name, err)
	}

	return value, nil
}

// loadCSVData loads candlesticks from the provided csv file path.
func loadCSVData(filepath string, market string, timeframe shared.Timeframe) ([]shared.Candlestick, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening csv data from file with path '%s': %v", filepath, err)
	}

	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %v", err)
	}

	positions, err := parseColumnPositions(header)
	if err != nil {
		return nil, err
	}

	var candles []shared.Candlestick
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %v", err)
		}

		var candle shared.Candlestick

		candle.Open, err = parseFloatColumn(record, positions, "open")
		if err != nil {
			return nil, err
		}
		candle.High, err = parseFloatColumn(record, positions, "high")
		if err != nil {
			return nil, err
		}
		candle.Low, err = parseFloatColumn(record, positions, "low")
		if err != nil {
			return nil, err
		}
		candle.Close, err = parseFloatColumn(record, positions, "close")
		if err != nil {
			return nil, err
		}
		candle.Volume, err = parseFloatColumn(record, positions, "volume")
		if err != nil {
			return nil, err
		}

		candle.Market = market
		candle.Timeframe = timeframe

		dt, err := shared.ParseDate(record[positions["date"]])
		if err != nil {
			return nil, fmt.Errorf("parsing csv candlestick date: %v", err)
		}

		candle.Date = dt
		candles = append(candles, candle)
	}

	return candles, nil
}

// NewCSVData initializes a new csv data source.
func NewCSVData(cfg *CSVDataConfig) (*CSVData, error) {
	candles, err := loadCSVData(cfg.FilePath, cfg.Market, cfg.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("loading csv data: %v", err)
	}

	shared.SortCandlesticks(candles)

	csvData := CSVData{
		cfg:     cfg,
		candles: candles,
	}

	return &csvData, nil
}

// FetchCandlesticks fetches the loaded candlestick series, sorted by date in
// ascending order.
func (c *CSVData) FetchCandlesticks(ctx context.Context) ([]shared.Candlestick, error) {
	if len(c.candles) > 0 {
		first := c.candles[0].Date
		last := c.candles[len(c.candles)-1].Date

		c.cfg.Logger.Info().Msgf("loaded %d %s candles for %s, from %s, to %s",
			len(c.candles), c.cfg.Timeframe.String(), c.cfg.Market,
			first.Format(time.RFC1123), last.Format(time.RFC1123))
	}

	return c.candles, nil
}
