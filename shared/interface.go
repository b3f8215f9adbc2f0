package shared

import (
	"context"
)

// CandleSource defines the requirements for loading a candlestick series for
// a market.
type CandleSource interface {
	// FetchCandlesticks fetches the complete candlestick series, ordered by
	// date in ascending order.
	FetchCandlesticks(ctx context.Context) ([]Candlestick, error)
}
