package shared

// Reason represents an entry signal reason.
type Reason int

const (
	AboveTrendEMA Reason = iota
	BelowTrendEMA
	OversoldCrossover
	OverboughtCrossover
	MACDConfirmation
)

// String stringifies the provided reason.
func (r Reason) String() string {
	switch r {
	case AboveTrendEMA:
		return "close above trend ema"
	case BelowTrendEMA:
		return "close below trend ema"
	case OversoldCrossover:
		return "oversold stochastic crossover"
	case OverboughtCrossover:
		return "overbought stochastic crossover"
	case MACDConfirmation:
		return "macd confirmation"
	default:
		return "unknown"
	}
}
