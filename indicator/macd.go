package indicator

import "fmt"

// MACD represents the moving average convergence divergence indicator,
// producing the macd line and its smoothed signal line for a value stream.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
}

// NewMACD initializes a new macd indicator with the provided fast, slow and
// signal periods.
func NewMACD(fastPeriod int, slowPeriod int, signalPeriod int) (*MACD, error) {
	if fastPeriod >= slowPeriod {
		return nil, fmt.Errorf("macd fast period (%d) must be shorter than the slow period (%d)",
			fastPeriod, slowPeriod)
	}

	fast, err := NewEMA(fastPeriod)
	if err != nil {
		return nil, fmt.Errorf("creating fast ema: %v", err)
	}

	slow, err := NewEMA(slowPeriod)
	if err != nil {
		return nil, fmt.Errorf("creating slow ema: %v", err)
	}

	signal, err := NewEMA(signalPeriod)
	if err != nil {
		return nil, fmt.Errorf("creating signal ema: %v", err)
	}

	return &MACD{
		fast:   fast,
		slow:   slow,
		signal: signal,
	}, nil
}

// Update advances the indicator with the provided value and returns the macd
// line and signal line values. The first macd value seeds the signal line.
func (m *MACD) Update(value float64) (float64, float64) {
	line := m.fast.Update(value) - m.slow.Update(value)
	signal := m.signal.Update(line)

	return line, signal
}
