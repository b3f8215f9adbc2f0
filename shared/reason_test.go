package shared

import "testing"

func TestReasonString(t *testing.T) {
	tests := []struct {
		name   string
		reason Reason
		want   string
	}{
		{
			"close above trend ema",
			AboveTrendEMA,
			"close above trend ema",
		},
		{
			"close below trend ema",
			BelowTrendEMA,
			"close below trend ema",
		},
		{
			"oversold stochastic crossover",
			OversoldCrossover,
			"oversold stochastic crossover",
		},
		{
			"overbought stochastic crossover",
			OverboughtCrossover,
			"overbought stochastic crossover",
		},
		{
			"macd confirmation",
			MACDConfirmation,
			"macd confirmation",
		},
		{
			"unknown reason",
			Reason(999),
			"unknown",
		},
	}

	for _, test := range tests {
		str := test.reason.String()
		if str != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, str)
		}
	}
}
