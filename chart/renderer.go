package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/rs/zerolog"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 1280
	chartHeight = 720

	oversoldGridLine   = float64(20)
	overboughtGridLine = float64(80)
)

// RendererConfig is the configuration for the chart renderer.
type RendererConfig struct {
	// Market represents the charted market.
	Market string
	// OutputDir is the directory chart images are written to.
	OutputDir string
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Renderer renders strategy run charts as png images.
type Renderer struct {
	cfg *RendererConfig
}

// NewRenderer initializes a new chart renderer.
func NewRenderer(cfg *RendererConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// timeValueFormatter picks the x axis formatter matching the provided
// timeframe.
func timeValueFormatter(timeframe shared.Timeframe) chart.ValueFormatter {
	if timeframe == shared.OneDay {
		return chart.TimeDateValueFormatter
	}

	return chart.TimeMinuteValueFormatter
}

// optionalValues converts the provided series into chart points using the
// provided value selector, skipping bars where the value is undefined.
func optionalValues(series []shared.EnrichedCandlestick, pick func(*shared.EnrichedCandlestick) shared.OptionalFloat) ([]time.Time, []float64) {
	xValues := make([]time.Time, 0, len(series))
	yValues := make([]float64, 0, len(series))

	for idx := range series {
		value := pick(&series[idx])
		if !value.Valid {
			continue
		}

		xValues = append(xValues, series[idx].Date)
		yValues = append(yValues, value.Value)
	}

	return xValues, yValues
}

// signalAnnotations collects price annotations for the flagged signals of
// the provided kind.
func signalAnnotations(series []shared.EnrichedCandlestick, kind shared.Signal) []chart.Value2 {
	var annotations []chart.Value2
	for idx := range series {
		candle := &series[idx]
		if candle.Signal != kind {
			continue
		}

		annotations = append(annotations, chart.Value2{
			XValue: chart.TimeToFloat64(candle.Date),
			YValue: candle.Close,
			Label:  kind.String(),
		})
	}

	return annotations
}

// buildPriceChart builds the close and trend ema chart for the provided
// series, with flagged signals annotated on the closes.
func (r *Renderer) buildPriceChart(series []shared.EnrichedCandlestick) chart.Chart {
	closeXValues := make([]time.Time, 0, len(series))
	closeYValues := make([]float64, 0, len(series))
	for idx := range series {
		closeXValues = append(closeXValues, series[idx].Date)
		closeYValues = append(closeYValues, series[idx].Close)
	}

	graphSeries := []chart.Series{
		chart.TimeSeries{
			Name:    "close",
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
			XValues: closeXValues,
			YValues: closeYValues,
		},
	}

	emaXValues, emaYValues := optionalValues(series, func(candle *shared.EnrichedCandlestick) shared.OptionalFloat {
		return candle.TrendEMA
	})
	if len(emaYValues) >= 2 {
		graphSeries = append(graphSeries, chart.TimeSeries{
			Name:    "trend ema",
			Style:   chart.Style{StrokeColor: chart.ColorOrange, StrokeWidth: 1.5},
			XValues: emaXValues,
			YValues: emaYValues,
		})
	}

	if buys := signalAnnotations(series, shared.Buy); len(buys) > 0 {
		graphSeries = append(graphSeries, chart.AnnotationSeries{
			Style:       chart.Style{StrokeColor: chart.ColorGreen},
			Annotations: buys,
		})
	}
	if sells := signalAnnotations(series, shared.Sell); len(sells) > 0 {
		graphSeries = append(graphSeries, chart.AnnotationSeries{
			Style:       chart.Style{StrokeColor: chart.ColorRed},
			Annotations: sells,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s price", r.cfg.Market),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: timeValueFormatter(series[0].Timeframe),
		},
		Series: graphSeries,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph
}

// buildStochasticChart builds the %k and %d chart for the provided series,
// with gridlines marking the oversold and overbought thresholds.
func (r *Renderer) buildStochasticChart(series []shared.EnrichedCandlestick) (chart.Chart, error) {
	kXValues, kYValues := optionalValues(series, func(candle *shared.EnrichedCandlestick) shared.OptionalFloat {
		return candle.StochK
	})
	if len(kYValues) < 2 {
		return chart.Chart{}, fmt.Errorf("not enough defined %%k values to chart")
	}

	graphSeries := []chart.Series{
		chart.TimeSeries{
			Name:    "%k",
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
			XValues: kXValues,
			YValues: kYValues,
		},
	}

	dXValues, dYValues := optionalValues(series, func(candle *shared.EnrichedCandlestick) shared.OptionalFloat {
		return candle.StochD
	})
	if len(dYValues) >= 2 {
		graphSeries = append(graphSeries, chart.TimeSeries{
			Name:    "%d",
			Style:   chart.Style{StrokeColor: chart.ColorOrange, StrokeWidth: 1.5},
			XValues: dXValues,
			YValues: dYValues,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s stochastic", r.cfg.Market),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: timeValueFormatter(series[0].Timeframe),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			GridLines: []chart.GridLine{
				{Value: oversoldGridLine},
				{Value: overboughtGridLine},
			},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 1.0,
			},
		},
		Series: graphSeries,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph, nil
}

// buildMACDChart builds the macd line and signal line chart for the provided
// series, with a gridline marking the zero line.
func (r *Renderer) buildMACDChart(series []shared.EnrichedCandlestick) (chart.Chart, error) {
	lineXValues, lineYValues := optionalValues(series, func(candle *shared.EnrichedCandlestick) shared.OptionalFloat {
		return candle.MACDLine
	})
	if len(lineYValues) < 2 {
		return chart.Chart{}, fmt.Errorf("not enough defined macd values to chart")
	}

	graphSeries := []chart.Series{
		chart.TimeSeries{
			Name:    "macd",
			Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
			XValues: lineXValues,
			YValues: lineYValues,
		},
	}

	signalXValues, signalYValues := optionalValues(series, func(candle *shared.EnrichedCandlestick) shared.OptionalFloat {
		return candle.MACDSignal
	})
	if len(signalYValues) >= 2 {
		graphSeries = append(graphSeries, chart.TimeSeries{
			Name:    "signal",
			Style:   chart.Style{StrokeColor: chart.ColorOrange, StrokeWidth: 1.5},
			XValues: signalXValues,
			YValues: signalYValues,
		})
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s macd", r.cfg.Market),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: timeValueFormatter(series[0].Timeframe),
		},
		YAxis: chart.YAxis{
			GridLines: []chart.GridLine{
				{Value: 0},
			},
			GridMajorStyle: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: 1.0,
			},
		},
		Series: graphSeries,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph, nil
}

// RenderPriceChart renders the close and trend ema chart for the provided
// series to the provided writer.
func (r *Renderer) RenderPriceChart(w io.Writer, series []shared.EnrichedCandlestick) error {
	if len(series) < 2 {
		return fmt.Errorf("not enough bars to chart")
	}

	graph := r.buildPriceChart(series)

	err := graph.Render(chart.PNG, w)
	if err != nil {
		return fmt.Errorf("rendering price chart: %v", err)
	}

	return nil
}

// RenderStochasticChart renders the %k and %d chart for the provided series
// to the provided writer.
func (r *Renderer) RenderStochasticChart(w io.Writer, series []shared.EnrichedCandlestick) error {
	graph, err := r.buildStochasticChart(series)
	if err != nil {
		return err
	}

	err = graph.Render(chart.PNG, w)
	if err != nil {
		return fmt.Errorf("rendering stochastic chart: %v", err)
	}

	return nil
}

// RenderMACDChart renders the macd line and signal line chart for the
// provided series to the provided writer.
func (r *Renderer) RenderMACDChart(w io.Writer, series []shared.EnrichedCandlestick) error {
	graph, err := r.buildMACDChart(series)
	if err != nil {
		return err
	}

	err = graph.Render(chart.PNG, w)
	if err != nil {
		return fmt.Errorf("rendering macd chart: %v", err)
	}

	return nil
}

// renderToFile renders the provided chart build to a png file at the
// provided path.
func (r *Renderer) renderToFile(render func(io.Writer, []shared.EnrichedCandlestick) error, series []shared.EnrichedCandlestick, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %v", err)
	}

	defer f.Close()

	return render(f, series)
}

// RenderAll renders every applicable chart for the provided series to png
// files in the output directory, named with the provided run id. The macd
// chart is skipped when the series carries no macd values. The written file
// paths are returned.
func (r *Renderer) RenderAll(series []shared.EnrichedCandlestick, runID string) ([]string, error) {
	pricePath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("price-%s.png", runID))
	err := r.renderToFile(r.RenderPriceChart, series, pricePath)
	if err != nil {
		return nil, err
	}

	stochasticPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("stochastic-%s.png", runID))
	err = r.renderToFile(r.RenderStochasticChart, series, stochasticPath)
	if err != nil {
		return nil, err
	}

	paths := []string{pricePath, stochasticPath}

	var hasMACD bool
	for idx := range series {
		if series[idx].MACDLine.Valid {
			hasMACD = true
			break
		}
	}

	if hasMACD {
		macdPath := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("macd-%s.png", runID))
		err = r.renderToFile(r.RenderMACDChart, series, macdPath)
		if err != nil {
			return nil, err
		}

		paths = append(paths, macdPath)
	}

	for _, path := range paths {
		r.cfg.Logger.Info().Msgf("rendered chart for %s: %s", r.cfg.Market, path)
	}

	return paths, nil
}
