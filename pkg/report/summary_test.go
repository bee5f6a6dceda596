package report_test

import (
	"testing"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/report"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summarySheet(t *testing.T, sch *schema.Schema, p report.Params) *report.Sheet {
	t.Helper()
	layout, err := report.Build(sch, p)
	require.NoError(t, err)
	sheet := layout.Sheets[len(layout.Sheets)-1]
	require.Equal(t, report.SummarySheet, sheet.Name)
	return sheet
}

func TestSummaryRow(t *testing.T) {
	sheet := summarySheet(t, fixtureSchema(), fixtureParams())

	// row 1 title, row 2 headers, row 3 first data row
	assert.Equal(t, "Overlap Summary", findCell(sheet, 1, 1).Value)
	assert.Equal(t, "Category", findCell(sheet, 2, 1).Value)

	assert.Equal(t, "Water", findCell(sheet, 3, 1).Value)
	assert.Equal(t, "Streams", findCell(sheet, 3, 2).Value)
	assert.Equal(t, schema.OverallPartition, findCell(sheet, 3, 3).Value)
	assert.Equal(t, 1, findCell(sheet, 3, 4).Value)
	assert.Equal(t, 80.0, findCell(sheet, 3, 5).Value)
	assert.Equal(t, 50.0, findCell(sheet, 3, 6).Value)
	assert.Equal(t, 1000.0, findCell(sheet, 3, 7).Value)

	unitsRatio := findCell(sheet, 3, 8)
	require.NotNil(t, unitsRatio)
	require.NotNil(t, unitsRatio.Ratio)
	assert.Equal(t, report.CellRef{Col: 6, Row: 3}, unitsRatio.Ratio.Num)
	assert.Equal(t, report.CellRef{Col: 5, Row: 3}, unitsRatio.Ratio.Den)

	aoiRatio := findCell(sheet, 3, 9)
	require.NotNil(t, aoiRatio)
	require.NotNil(t, aoiRatio.Ratio)
	// same-sheet reference: the denominator is the row's own partition
	// total, not a cell on another sheet
	assert.Equal(t, report.CellRef{Col: 7, Row: 3}, aoiRatio.Ratio.Den)
}

func TestSummaryNoUnits(t *testing.T) {
	sch := fixtureSchema()
	ds := sch.Dataset("Streams")
	ds.ResetStats()
	ds.NoOverlap = true

	sheet := summarySheet(t, sch, fixtureParams())

	assert.Equal(t, 0, findCell(sheet, 3, 4).Value)
	na := findCell(sheet, 3, 8)
	require.NotNil(t, na)
	assert.Nil(t, na.Ratio)
	assert.Equal(t, "N/A", na.Value)
}

func TestSummaryPartitionRowsAndMerges(t *testing.T) {
	p := fixtureParams()
	p.Partitions = []string{"North", "South"}
	p.PartitionTotals = map[string]float64{"North": 600, "South": 400}

	sheet := summarySheet(t, fixtureSchema(), p)

	// Overall + two named partitions, one row each
	assert.Equal(t, schema.OverallPartition, findCell(sheet, 3, 3).Value)
	assert.Equal(t, "North", findCell(sheet, 4, 3).Value)
	assert.Equal(t, "South", findCell(sheet, 5, 3).Value)
	assert.Equal(t, 600.0, findCell(sheet, 4, 7).Value)

	// dataset and category cells merged down their three rows
	assert.Contains(t, sheet.Merges, report.Merge{
		Start: report.CellRef{Col: 2, Row: 3},
		End:   report.CellRef{Col: 2, Row: 5},
	})
	assert.Contains(t, sheet.Merges, report.Merge{
		Start: report.CellRef{Col: 1, Row: 3},
		End:   report.CellRef{Col: 1, Row: 5},
	})
}

func TestSummaryLineGeometryAOIRatio(t *testing.T) {
	sch := fixtureSchema()
	sch.Dataset("Streams").Geometry = schema.GeometryLine

	sheet := summarySheet(t, sch, fixtureParams())

	na := findCell(sheet, 3, 9)
	require.NotNil(t, na)
	assert.Nil(t, na.Ratio)
	assert.Equal(t, "N/A", na.Value)
}
