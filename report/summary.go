package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"gonum.org/v1/gonum/stat"
)

// Summary represents the aggregate outcome of a strategy run.
type Summary struct {
	// Market represents the summarized market.
	Market string
	// Timeframe represents the timeframe of the summarized series.
	Timeframe shared.Timeframe
	// Bars is the number of bars in the series.
	Bars int
	// Buys is the number of buy signals flagged.
	Buys int
	// Sells is the number of sell signals flagged.
	Sells int
	// FirstBar is the date of the first bar.
	FirstBar time.Time
	// LastBar is the date of the last bar.
	LastBar time.Time
	// FirstSignal is the date of the first flagged signal, the zero value
	// when the series has no signals.
	FirstSignal time.Time
	// LastSignal is the date of the last flagged signal, the zero value
	// when the series has no signals.
	LastSignal time.Time
	// CloseMean is the mean of the series closes.
	CloseMean float64
	// CloseStdDev is the sample standard deviation of the series closes.
	CloseStdDev float64
	// StochKMean is the mean of the defined %k values.
	StochKMean float64
	// StochKStdDev is the sample standard deviation of the defined %k values.
	StochKStdDev float64
}

// NewSummary summarizes the provided enriched candlestick series.
func NewSummary(series []shared.EnrichedCandlestick) (*Summary, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no enriched candlesticks provided")
	}

	summary := Summary{
		Market:    series[0].Market,
		Timeframe: series[0].Timeframe,
		Bars:      len(series),
		FirstBar:  series[0].Date,
		LastBar:   series[len(series)-1].Date,
	}

	closes := make([]float64, 0, len(series))
	stochKs := make([]float64, 0, len(series))

	for idx := range series {
		candle := &series[idx]
		closes = append(closes, candle.Close)

		if candle.StochK.Valid {
			stochKs = append(stochKs, candle.StochK.Value)
		}

		switch candle.Signal {
		case shared.NoSignal:
			continue
		case shared.Buy:
			summary.Buys++
		case shared.Sell:
			summary.Sells++
		default:
			return nil, fmt.Errorf("unexpected signal state for summary calculations: %s", spew.Sdump(candle))
		}

		if summary.FirstSignal.IsZero() {
			summary.FirstSignal = candle.Date
		}
		summary.LastSignal = candle.Date
	}

	summary.CloseMean = stat.Mean(closes, nil)
	if len(closes) > 1 {
		summary.CloseStdDev = stat.StdDev(closes, nil)
	}

	if len(stochKs) > 0 {
		summary.StochKMean = stat.Mean(stochKs, nil)
	}
	if len(stochKs) > 1 {
		summary.StochKStdDev = stat.StdDev(stochKs, nil)
	}

	return &summary, nil
}

// RenderTable renders the summary as a table to the provided writer.
func (s *Summary) RenderTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s RUN SUMMARY", s.Market))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Market", s.Market},
		{"Timeframe", s.Timeframe.String()},
		{"Bars", s.Bars},
		{"From", formatTime(s.FirstBar, s.Timeframe)},
		{"To", formatTime(s.LastBar, s.Timeframe)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"Buy signals", s.Buys},
		{"Sell signals", s.Sells},
	})

	if !s.FirstSignal.IsZero() {
		t.AppendRows([]table.Row{
			{"First signal", formatTime(s.FirstSignal, s.Timeframe)},
			{"Last signal", formatTime(s.LastSignal, s.Timeframe)},
		})
	}

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"Close mean", fmt.Sprintf("%.2f", s.CloseMean)},
		{"Close stddev", fmt.Sprintf("%.2f", s.CloseStdDev)},
		{"%K mean", fmt.Sprintf("%.2f", s.StochKMean)},
		{"%K stddev", fmt.Sprintf("%.2f", s.StochKStdDev)},
	})

	t.Render()
}

// RenderSignals renders the most recent signal carrying bars of the provided
// series as a table to the provided writer, up to the provided limit.
func RenderSignals(w io.Writer, series []shared.EnrichedCandlestick, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("SIGNALS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Date", "Close", "%K", "%D", "Signal", "Reasons"})

	var rows []table.Row
	for idx := range series {
		candle := &series[idx]
		if candle.Signal == shared.NoSignal {
			continue
		}

		reasons := make([]string, 0, len(candle.Reasons))
		for _, reason := range candle.Reasons {
			reasons = append(reasons, reason.String())
		}

		rows = append(rows, table.Row{
			formatTime(candle.Date, candle.Timeframe),
			fmt.Sprintf("%.2f", candle.Close),
			formatOptionalCell(candle.StochK),
			formatOptionalCell(candle.StochD),
			candle.Signal.String(),
			strings.Join(reasons, ", "),
		})
	}

	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	t.AppendRows(rows)
	t.Render()
}

// formatOptionalCell formats the provided optional float for table display,
// leaving undefined values blank.
func formatOptionalCell(o shared.OptionalFloat) string {
	if !o.Valid {
		return ""
	}

	return fmt.Sprintf("%.2f", o.Value)
}
