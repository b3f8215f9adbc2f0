package shared

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the format layout for parsing daily candlestick dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the format layout for parsing intraday candlestick dates.
	DateTimeLayout = "2006-01-02 15:04:05"
	// NewYorkLocation is the location name for new york.
	NewYorkLocation = "America/New_York"
)

// Timeframe represents the market data time period.
type Timeframe int

const (
	OneDay Timeframe = iota
	OneHour
	FiveMinute
)

// String stringifies the provided timeframe.
func (t Timeframe) String() string {
	switch t {
	case OneDay:
		return "1D"
	case OneHour:
		return "1H"
	case FiveMinute:
		return "5m"
	default:
		return "unknown"
	}
}

// ParseTimeframe parses the timeframe described by the provided string.
func ParseTimeframe(timeframe string) (Timeframe, error) {
	switch timeframe {
	case "1D":
		return OneDay, nil
	case "1H":
		return OneHour, nil
	case "5m":
		return FiveMinute, nil
	default:
		return 0, fmt.Errorf("unknown timeframe: %s", timeframe)
	}
}

// NewYorkTime returns the current time in new york (EST/EDT adjusted automatically).
func NewYorkTime() (time.Time, *time.Location, error) {
	loc, err := time.LoadLocation(NewYorkLocation)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("loading new york timezone: %w", err)
	}

	now := time.Now().In(loc)
	return now, loc, nil
}
