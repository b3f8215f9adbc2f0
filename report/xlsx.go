package report

import (
	"fmt"

	"github.com/nsmanju/stochastic-trading-strategy/shared"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	seriesSheet  = "Series"
)

// WriteXLSX writes the provided run summary and enriched candlestick series
// to a styled xlsx workbook at the provided path.
func WriteXLSX(summary *Summary, series []shared.EnrichedCandlestick, path string) error {
	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	_, err := fx.NewSheet(seriesSheet)
	if err != nil {
		return fmt.Errorf("creating series sheet: %v", err)
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %v", err)
	}

	err = writeSummarySheet(fx, summary, headerStyle)
	if err != nil {
		return err
	}

	err = writeSeriesSheet(fx, series, headerStyle)
	if err != nil {
		return err
	}

	err = fx.SaveAs(path)
	if err != nil {
		return fmt.Errorf("saving xlsx workbook: %v", err)
	}

	return nil
}

// writeSummarySheet writes the run summary as label and value rows.
func writeSummarySheet(fx *excelize.File, summary *Summary, labelStyle int) error {
	type summaryRow struct {
		label string
		value any
	}

	rows := []summaryRow{
		{"Market", summary.Market},
		{"Timeframe", summary.Timeframe.String()},
		{"Bars", summary.Bars},
		{"From", formatTime(summary.FirstBar, summary.Timeframe)},
		{"To", formatTime(summary.LastBar, summary.Timeframe)},
		{"Buy signals", summary.Buys},
		{"Sell signals", summary.Sells},
		{"Close mean", summary.CloseMean},
		{"Close stddev", summary.CloseStdDev},
		{"%K mean", summary.StochKMean},
		{"%K stddev", summary.StochKStdDev},
	}

	if !summary.FirstSignal.IsZero() {
		rows = append(rows,
			summaryRow{"First signal", formatTime(summary.FirstSignal, summary.Timeframe)},
			summaryRow{"Last signal", formatTime(summary.LastSignal, summary.Timeframe)})
	}

	for idx := range rows {
		labelCell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return fmt.Errorf("forming summary label cell name: %v", err)
		}

		valueCell, err := excelize.CoordinatesToCellName(2, idx+1)
		if err != nil {
			return fmt.Errorf("forming summary value cell name: %v", err)
		}

		fx.SetCellValue(summarySheet, labelCell, rows[idx].label)
		fx.SetCellStyle(summarySheet, labelCell, labelCell, labelStyle)
		fx.SetCellValue(summarySheet, valueCell, rows[idx].value)
	}

	fx.SetColWidth(summarySheet, "A", "A", 16)
	fx.SetColWidth(summarySheet, "B", "B", 24)

	return nil
}

// writeSeriesSheet writes the enriched series as one row per bar. Undefined
// indicator values are left as empty cells.
func writeSeriesSheet(fx *excelize.File, series []shared.EnrichedCandlestick, headerStyle int) error {
	for idx, name := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(idx+1, 1)
		if err != nil {
			return fmt.Errorf("forming series header cell name: %v", err)
		}

		fx.SetCellValue(seriesSheet, cell, name)
		fx.SetCellStyle(seriesSheet, cell, cell, headerStyle)
	}

	for idx := range series {
		candle := &series[idx]
		cells := []any{
			formatTime(candle.Date, candle.Timeframe),
			candle.Open,
			candle.High,
			candle.Low,
			candle.Close,
			candle.Volume,
			optionalCellValue(candle.TrendEMA),
			optionalCellValue(candle.StochK),
			optionalCellValue(candle.StochD),
			optionalCellValue(candle.MACDLine),
			optionalCellValue(candle.MACDSignal),
			candle.Signal.String(),
		}

		for col := range cells {
			cell, err := excelize.CoordinatesToCellName(col+1, idx+2)
			if err != nil {
				return fmt.Errorf("forming series cell name: %v", err)
			}

			fx.SetCellValue(seriesSheet, cell, cells[col])
		}
	}

	fx.SetColWidth(seriesSheet, "A", "A", 20)

	return nil
}

// optionalCellValue converts the provided optional float for cell output,
// leaving undefined values as empty cells.
func optionalCellValue(o shared.OptionalFloat) any {
	if !o.Valid {
		return ""
	}

	return o.Value
}
