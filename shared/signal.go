package shared

// Signal represents an entry signal evaluated for a candlestick.
type Signal int

const (
	NoSignal Signal = iota
	Buy
	Sell
)

// String stringifies the provided signal. The absence of a signal stringifies
// to an empty string.
func (s Signal) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return ""
	}
}
