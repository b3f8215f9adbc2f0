package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestNewYorkTime(t *testing.T) {
	// Ensure new york locale times can be created.
	now, loc, err := NewYorkTime()
	assert.NoError(t, err)
	assert.Equal(t, now.Location().String(), "America/New_York")
	assert.Equal(t, now.Location().String(), loc.String())
}

func TestParseTimeframe(t *testing.T) {
	// Ensure valid timeframe strings parse to their expected timeframes.
	timeframe, err := ParseTimeframe("1D")
	assert.NoError(t, err)
	assert.Equal(t, timeframe, OneDay)

	timeframe, err = ParseTimeframe("1H")
	assert.NoError(t, err)
	assert.Equal(t, timeframe, OneHour)

	timeframe, err = ParseTimeframe("5m")
	assert.NoError(t, err)
	assert.Equal(t, timeframe, FiveMinute)

	// Ensure parsing an unknown timeframe string fails.
	_, err = ParseTimeframe("3W")
	assert.Error(t, err)
}

func TestTimeframeString(t *testing.T) {
	tests := []struct {
		name      string
		timeframe Timeframe
		want      string
	}{
		{
			"One Day",
			OneDay,
			"1D",
		},
		{
			"One Hour",
			OneHour,
			"1H",
		},
		{
			"Five Minute",
			FiveMinute,
			"5m",
		},
		{
			"unknown timeframe",
			Timeframe(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.timeframe.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
