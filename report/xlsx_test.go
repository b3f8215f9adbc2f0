package report

import (
	"path/filepath"
	"testing"

	"github.com/peterldowns/testy/assert"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	series := testEnrichedSeries()

	summary, err := NewSummary(series)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "series.xlsx")

	// Ensure the summary and series can be written to a workbook.
	err = WriteXLSX(summary, series, path)
	assert.NoError(t, err)

	fx, err := excelize.OpenFile(path)
	assert.NoError(t, err)

	defer fx.Close()

	// Ensure the summary sheet carries the run details.
	label, err := fx.GetCellValue(summarySheet, "A1")
	assert.NoError(t, err)
	assert.Equal(t, label, "Market")

	market, err := fx.GetCellValue(summarySheet, "B1")
	assert.NoError(t, err)
	assert.Equal(t, market, "^GSPC")

	// Ensure the series sheet carries one row per bar under a header.
	header, err := fx.GetCellValue(seriesSheet, "A1")
	assert.NoError(t, err)
	assert.Equal(t, header, "date")

	date, err := fx.GetCellValue(seriesSheet, "A2")
	assert.NoError(t, err)
	assert.Equal(t, date, "2024-01-02")

	signal, err := fx.GetCellValue(seriesSheet, "L3")
	assert.NoError(t, err)
	assert.Equal(t, signal, "Buy")

	rows, err := fx.GetRows(seriesSheet)
	assert.NoError(t, err)
	assert.Equal(t, len(rows), len(series)+1)
}
