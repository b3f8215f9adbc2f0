package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/tidwall/gjson"
)

const (
	baseURL = "https://financialmodelingprep.com/stable"
)

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIKey is the FMP API Key.
	APIKey string
	// BaseURL is the FMP api base url.
	BaseURL string
	// Market is the market to fetch daily candles for.
	Market string
	// Start is the start of the fetched range.
	Start time.Time
	// End is the end of the fetched range. The zero value leaves the
	// range open ended.
	End time.Time
}

// FMPClient represents the Financial Modeling Preparation (FMP) API client.
type FMPClient struct {
	cfg   *FMPConfig
	httpc http.Client
	buf   *bytes.Buffer
}

// Ensure the FMPClient implements the CandleSource interface.
var _ shared.CandleSource = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg *FMPConfig) *FMPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}

	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: time.Second * 5},
		buf:   bytes.NewBuffer(make([]byte, 0, 512)),
	}
}

// formURL creates full urls including paramters for the api.
func (c *FMPClient) formURL(path string, params string) string {
	c.buf.WriteString(c.cfg.BaseURL)
	c.buf.WriteString(path)
	c.buf.WriteString("?")
	c.buf.WriteString(params)
	url := c.buf.String()
	c.buf.Reset()

	return url
}

// FetchCandlesticks fetches daily historical market data for the configured
// market, sorted by date in ascending order.
func (c *FMPClient) FetchCandlesticks(ctx context.Context) ([]shared.Candlestick, error) {
	const dailyHistoricalPath = "/historical-price-eod/full"

	params := url.Values{}
	params.Add("symbol", c.cfg.Market)
	params.Add("apikey", c.cfg.APIKey)
	if !c.cfg.Start.IsZero() {
		params.Add("from", c.cfg.Start.Format(shared.DateLayout))
	}
	if !c.cfg.End.IsZero() {
		params.Add("to", c.cfg.End.Format(shared.DateLayout))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.formURL(dailyHistoricalPath, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("creating daily historical data request for %s: %w", c.cfg.Market, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching daily historical data for %s: %w", c.cfg.Market, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching daily historical data for %s: %s", c.cfg.Market, resp.Status)
	}

	data := gjson.ParseBytes(body).Array()

	candles, err := shared.ParseCandlesticks(data, c.cfg.Market, shared.OneDay)
	if err != nil {
		return nil, fmt.Errorf("parsing candlesticks: %v", err)
	}

	// The api returns the most recent candles first.
	shared.SortCandlesticks(candles)

	return candles, nil
}
