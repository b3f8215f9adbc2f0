package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/nsmanju/stochastic-trading-strategy/shared"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
)

const (
	// SQL statements.
	findCandlesSQL = "SELECT date, open, high, low, close, volume FROM candle WHERE market = ? ORDER BY date ASC"
)

// StoreConfig is the configuration for the candle store.
type StoreConfig struct {
	// Endpoint represents the store connection endpoint.
	Endpoint string
	// User is the store user.
	User string
	// Pass is the store user pass.
	Pass string
	// Market represents the stored candle market.
	Market string
	// Timeframe represents the timeframe for the stored candles.
	Timeframe shared.Timeframe
	// Logger is the store logger.
	Logger *zerolog.Logger
}

// Store represents an rqlite backed candlestick source.
type Store struct {
	cfg    *StoreConfig
	client *rqlitehttp.Client
}

// Ensure the store implements the CandleSource interface.
var _ shared.CandleSource = (*Store)(nil)

// NewStore initializes a new candle store connection.
func NewStore(cfg *StoreConfig) (*Store, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating store client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	store := &Store{
		cfg:    cfg,
		client: client,
	}

	return store, nil
}

// parseFloatRowColumn extracts the named float column from the provided
// store row.
func parseFloatRowColumn(row map[string]any, name string) (float64, error) {
	value, ok := row[name].(float64)
	if !ok {
		return 0, fmt.Errorf("store row column '%s' is not a number: %s", name, spew.Sdump(row[name]))
	}

	return value, nil
}

// parseCandleRow parses a candlestick from the provided store row.
func parseCandleRow(row map[string]any, market string, timeframe shared.Timeframe) (shared.Candlestick, error) {
	var candle shared.Candlestick

	date, ok := row["date"].(string)
	if !ok {
		return candle, fmt.Errorf("store row column 'date' is not a string: %s", spew.Sdump(row["date"]))
	}

	dt, err := shared.ParseDate(date)
	if err != nil {
		return candle, fmt.Errorf("parsing store candlestick date: %v", err)
	}

	candle.Date = dt

	candle.Open, err = parseFloatRowColumn(row, "open")
	if err != nil {
		return candle, err
	}
	candle.High, err = parseFloatRowColumn(row, "high")
	if err != nil {
		return candle, err
	}
	candle.Low, err = parseFloatRowColumn(row, "low")
	if err != nil {
		return candle, err
	}
	candle.Close, err = parseFloatRowColumn(row, "close")
	if err != nil {
		return candle, err
	}
	candle.Volume, err = parseFloatRowColumn(row, "volume")
	if err != nil {
		return candle, err
	}

	candle.Market = market
	candle.Timeframe = timeframe

	return candle, nil
}

// FetchCandlesticks fetches the stored candlestick series for the configured
// market, sorted by date in ascending order.
func (s *Store) FetchCandlesticks(ctx context.Context) ([]shared.Candlestick, error) {
	resp, err := s.client.QuerySingle(ctx, findCandlesSQL, s.cfg.Market)
	if err != nil {
		return nil, fmt.Errorf("querying stored candles for %s: %w", s.cfg.Market, err)
	}

	results := resp.GetQueryResultsAssoc()
	if len(results) == 0 {
		return nil, fmt.Errorf("no query results returned for %s", s.cfg.Market)
	}

	if results[0].Error != "" {
		return nil, fmt.Errorf("querying stored candles for %s: %s", s.cfg.Market, results[0].Error)
	}

	rows := results[0].Rows
	candles := make([]shared.Candlestick, 0, len(rows))
	for idx := range rows {
		candle, err := parseCandleRow(rows[idx], s.cfg.Market, s.cfg.Timeframe)
		if err != nil {
			return nil, err
		}

		candles = append(candles, candle)
	}

	shared.SortCandlesticks(candles)

	s.cfg.Logger.Info().Msgf("loaded %d %s candles for %s from the store",
		len(candles), s.cfg.Timeframe.String(), s.cfg.Market)

	return candles, nil
}
