package indicator

import (
	"errors"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
)

// window represents a fixed size rolling window of candlestick data.
type window struct {
	data  []*shared.Candlestick
	start int
	count int
	size  int
}

// newWindow initializes a new rolling candlestick window.
func newWindow(size int) (*window, error) {
	if size <= 0 {
		return nil, errors.New("window size must be positive")
	}

	return &window{
		data: make([]*shared.Candlestick, size),
		size: size,
	}, nil
}

// update adds the provided candlestick to the window.
func (w *window) update(candle *shared.Candlestick) {
	end := (w.start + w.count) % w.size
	w.data[end] = candle

	if w.count == w.size {
		// Overwrite the oldest entry when the window is at capacity.
		w.start = (w.start + 1) % w.size
	} else {
		w.count++
	}
}

// full reports whether the window is at capacity.
func (w *window) full() bool {
	return w.count == w.size
}

// lowestLow returns the lowest low of the windowed candles.
func (w *window) lowestLow() float64 {
	low := w.data[w.start].Low
	for i := range w.count {
		idx := (w.start + i) % w.size
		if w.data[idx].Low < low {
			low = w.data[idx].Low
		}
	}

	return low
}

// highestHigh returns the highest high of the windowed candles.
func (w *window) highestHigh() float64 {
	high := w.data[w.start].High
	for i := range w.count {
		idx := (w.start + i) % w.size
		if w.data[idx].High > high {
			high = w.data[idx].High
		}
	}

	return high
}
