package indicator

import "fmt"

// EMA represents the exponential moving average indicator for a value stream.
type EMA struct {
	period int
	alpha  float64
	value  float64
	seeded bool
}

// NewEMA initializes a new exponential moving average with the provided period.
func NewEMA(period int) (*EMA, error) {
	if period <= 0 {
		return nil, fmt.Errorf("ema period must be positive, got %d", period)
	}

	return &EMA{
		period: period,
		alpha:  2 / float64(period+1),
	}, nil
}

// Update advances the average with the provided value and returns the updated
// average. The first value seeds the average directly.
func (e *EMA) Update(value float64) float64 {
	if !e.seeded {
		e.value = value
		e.seeded = true
		return e.value
	}

	e.value = value*e.alpha + e.value*(1-e.alpha)
	return e.value
}

// Last returns the current value of the average.
func (e *EMA) Last() float64 {
	return e.value
}
