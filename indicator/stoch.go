package indicator

import (
	"fmt"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
)

// Stochastic represents the stochastic oscillator indicator, producing the
// %K and %D values for a candlestick stream.
type Stochastic struct {
	kPeriod int
	dPeriod int
	window  *window
	recentK []shared.OptionalFloat
}

// NewStochastic initializes a new stochastic oscillator with the provided
// %K and %D periods.
func NewStochastic(kPeriod int, dPeriod int) (*Stochastic, error) {
	if kPeriod <= 0 {
		return nil, fmt.Errorf("stochastic %%k period must be positive, got %d", kPeriod)
	}
	if dPeriod <= 0 {
		return nil, fmt.Errorf("stochastic %%d period must be positive, got %d", dPeriod)
	}

	window, err := newWindow(kPeriod)
	if err != nil {
		return nil, fmt.Errorf("creating stochastic window: %v", err)
	}

	return &Stochastic{
		kPeriod: kPeriod,
		dPeriod: dPeriod,
		window:  window,
		recentK: make([]shared.OptionalFloat, 0, dPeriod),
	}, nil
}

// Update advances the oscillator with the provided candlestick and returns
// the %K and %D values for it. %K is undefined until the rolling window is
// full and whenever the windowed high-low range is zero. %D is defined only
// once the trailing %D period consists entirely of defined %K values.
func (s *Stochastic) Update(candle *shared.Candlestick) (shared.OptionalFloat, shared.OptionalFloat) {
	s.window.update(candle)

	var k shared.OptionalFloat
	if s.window.full() {
		low := s.window.lowestLow()
		high := s.window.highestHigh()

		priceRange := high - low
		if priceRange != 0 {
			k = shared.NewOptionalFloat((candle.Close - low) / priceRange * 100)
		}
	}

	s.recentK = append(s.recentK, k)
	if len(s.recentK) > s.dPeriod {
		s.recentK = s.recentK[1:]
	}

	return k, s.smoothK()
}

// smoothK returns the simple moving average of the trailing %K values, or an
// undefined value if the trailing run is incomplete or broken.
func (s *Stochastic) smoothK() shared.OptionalFloat {
	if len(s.recentK) < s.dPeriod {
		return shared.OptionalFloat{}
	}

	var sum float64
	for idx := range s.recentK {
		if !s.recentK[idx].Valid {
			return shared.OptionalFloat{}
		}

		sum += s.recentK[idx].Value
	}

	return shared.NewOptionalFloat(sum / float64(s.dPeriod))
}
