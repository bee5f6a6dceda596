package report_test

import (
	"testing"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/report"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// findCell returns the cell at (row, col) or nil.
func findCell(sheet *report.Sheet, row, col int) *report.Cell {
	for i := range sheet.Cells {
		c := &sheet.Cells[i]
		if c.Row == row && c.Col == col {
			return c
		}
	}
	return nil
}

func fixtureSchema() *schema.Schema {
	sch := &schema.Schema{}
	ds := schema.NewIndicatorDataset("Streams", "Water", "Current")
	ds.AssessmentYear = 2024
	ds.Geometry = schema.GeometryPolygon
	ds.SetUnitFields([]string{"UNIT_ID"}, []string{"UNIT_NAME"})

	p := ds.Partition(schema.OverallPartition)
	p.TotalMeasure = 100
	u := p.Unit("S1")
	u.Name = "S1"
	u.TotalMeasure = 80
	u.OverlapMeasure = 50

	cat := sch.Category("Water")
	cat.Datasets = append(cat.Datasets, ds)
	return sch
}

func fixtureParams() report.Params {
	return report.Params{
		Title:      "Cumulative Effects Analysis - Test AOI",
		FileNumber: "18744-30",
		AOITotal:   1000,
	}
}

func TestBuildSheetNames(t *testing.T) {
	layout, err := report.Build(fixtureSchema(), fixtureParams())
	require.NoError(t, err)

	require.Len(t, layout.Sheets, 2)
	assert.Equal(t, schema.OverallPartition, layout.Sheets[0].Name)
	assert.Equal(t, report.SummarySheet, layout.Sheets[1].Name)
}

func TestBuildPartitionSheets(t *testing.T) {
	p := fixtureParams()
	p.Partitions = []string{"North", "South"}
	p.PartitionTotals = map[string]float64{"North": 600, "South": 400}

	layout, err := report.Build(fixtureSchema(), p)
	require.NoError(t, err)

	var names []string
	for _, s := range layout.Sheets {
		names = append(names, s.Name)
	}
	assert.Equal(t,
		[]string{schema.OverallPartition, "North", "South", report.SummarySheet},
		names,
	)

	// each partition sheet carries its own net area
	north := findCell(layout.Sheets[1], 7, 2)
	require.NotNil(t, north)
	assert.Equal(t, 600.0, north.Value)
}

func TestBuildSinglePartitionCollapses(t *testing.T) {
	// one named partition is the same as no partitioning: Overall only
	p := fixtureParams()
	p.Partitions = []string{"North"}
	p.PartitionTotals = map[string]float64{"North": 1000}

	layout, err := report.Build(fixtureSchema(), p)
	require.NoError(t, err)
	require.Len(t, layout.Sheets, 2)
}

func TestBuildTitleBlock(t *testing.T) {
	layout, err := report.Build(fixtureSchema(), fixtureParams())
	require.NoError(t, err)
	sheet := layout.Sheets[0]

	title := findCell(sheet, 1, 1)
	require.NotNil(t, title)
	assert.Equal(t, "Cumulative Effects Analysis - Test AOI", title.Value)
	assert.Equal(t, schema.RoleTitle, title.Role)

	fileNum := findCell(sheet, 2, 2)
	require.NotNil(t, fileNum)
	assert.Equal(t, "18744-30", fileNum.Value)

	area := findCell(sheet, 7, 2)
	require.NotNil(t, area)
	assert.Equal(t, 1000.0, area.Value)
	assert.Equal(t, schema.RoleNumber, area.Role)
}

func TestBuildDatasetBlock(t *testing.T) {
	layout, err := report.Build(fixtureSchema(), fixtureParams())
	require.NoError(t, err)
	sheet := layout.Sheets[0]

	header := findCell(sheet, 9, 1)
	require.NotNil(t, header)
	assert.Equal(t,
		"Cumulative Effects Framework Current Value - Water (2024)",
		header.Value,
	)
	assert.Equal(t, schema.RoleValueHeader, header.Role)

	colHeader := findCell(sheet, 10, 2)
	require.NotNil(t, colHeader)
	assert.Equal(t, "Area (ha) of Assessment Unit", colHeader.Value)

	name := findCell(sheet, 11, 1)
	require.NotNil(t, name)
	assert.Equal(t, "S1", name.Value)

	total := findCell(sheet, 11, 2)
	require.NotNil(t, total)
	assert.Equal(t, 80.0, total.Value)

	overlap := findCell(sheet, 11, 3)
	require.NotNil(t, overlap)
	assert.Equal(t, 50.0, overlap.Value)

	// % of AOI divides overlap by the net-area anchor in the title block
	aoiRatio := findCell(sheet, 11, 4)
	require.NotNil(t, aoiRatio)
	require.NotNil(t, aoiRatio.Ratio)
	assert.Equal(t, report.CellRef{Col: 3, Row: 11}, aoiRatio.Ratio.Num)
	assert.Equal(t, report.CellRef{Col: 2, Row: 7}, aoiRatio.Ratio.Den)
	assert.Equal(t, schema.RolePercent, aoiRatio.Role)

	// % of unit divides overlap by the unit total on the same row
	unitRatio := findCell(sheet, 11, 5)
	require.NotNil(t, unitRatio)
	require.NotNil(t, unitRatio.Ratio)
	assert.Equal(t, report.CellRef{Col: 3, Row: 11}, unitRatio.Ratio.Num)
	assert.Equal(t, report.CellRef{Col: 2, Row: 11}, unitRatio.Ratio.Den)
}

func TestBuildLineGeometryRatio(t *testing.T) {
	sch := fixtureSchema()
	ds := sch.Dataset("Streams")
	ds.Geometry = schema.GeometryLine

	layout, err := report.Build(sch, fixtureParams())
	require.NoError(t, err)
	sheet := layout.Sheets[0]

	colHeader := findCell(sheet, 10, 2)
	require.NotNil(t, colHeader)
	assert.Equal(t, "Length (m) of Assessment Unit", colHeader.Value)

	aoiRatio := findCell(sheet, 11, 4)
	require.NotNil(t, aoiRatio)
	assert.Nil(t, aoiRatio.Ratio)
	assert.Equal(t, "N/A", aoiRatio.Value)
	assert.Equal(t, schema.RoleRegular, aoiRatio.Role)
}

func TestBuildNoOverlapBlock(t *testing.T) {
	sch := fixtureSchema()
	ds := sch.Dataset("Streams")
	ds.ResetStats()
	ds.NoOverlap = true

	layout, err := report.Build(sch, fixtureParams())
	require.NoError(t, err)
	sheet := layout.Sheets[0]

	msg := findCell(sheet, 11, 1)
	require.NotNil(t, msg)
	assert.Equal(t, "No overlap with Streams", msg.Value)
}

func TestBuildSubheaderOnlyForSharedCategory(t *testing.T) {
	sch := fixtureSchema()

	layout, err := report.Build(sch, fixtureParams())
	require.NoError(t, err)
	// single dataset: row 10 goes straight to column headers
	assert.Equal(t, "Assessment Unit", findCell(layout.Sheets[0], 10, 1).Value)

	second := schema.NewIndicatorDataset("Rivers", "Water", "Current")
	second.AssessmentYear = 2024
	cat := sch.Category("Water")
	cat.Datasets = append(cat.Datasets, second)

	layout, err = report.Build(sch, fixtureParams())
	require.NoError(t, err)
	sub := findCell(layout.Sheets[0], 10, 1)
	require.NotNil(t, sub)
	assert.Equal(t, "Streams", sub.Value)
	assert.Equal(t, schema.RoleValueSubheader, sub.Role)
}

func TestBuildAttributeCell(t *testing.T) {
	sch := fixtureSchema()
	ds := sch.Dataset("Streams")
	rule := &schema.ClassificationRule{
		Key:   "Protected",
		Style: schema.RuleStyleRole("Streams", "STATUS", "Protected"),
	}
	ds.Attributes = []*schema.AttributeSchema{
		{
			Field:      "STATUS",
			Label:      "Status",
			Companions: []string{"YEAR"},
			Kind:       schema.RuleDiscrete,
			Rules:      []*schema.ClassificationRule{rule},
		},
	}
	u := ds.Stats[schema.OverallPartition].Units["S1"]
	u.Attrs["STATUS"] = "Protected"
	u.Attrs["YEAR"] = int64(2020)

	layout, err := report.Build(sch, fixtureParams())
	require.NoError(t, err)
	sheet := layout.Sheets[0]

	// attribute label joins the column headers
	label := findCell(sheet, 10, 2)
	require.NotNil(t, label)
	assert.Equal(t, "Status", label.Value)

	cell := findCell(sheet, 11, 2)
	require.NotNil(t, cell)
	assert.Equal(t, "Protected (2020)", cell.Value)
	assert.Equal(t, rule.Style, cell.Role)

	// measures shift right past the attribute column
	total := findCell(sheet, 11, 3)
	require.NotNil(t, total)
	assert.Equal(t, 80.0, total.Value)
}

func TestBuildUnmatchedAttributeStaysRegular(t *testing.T) {
	sch := fixtureSchema()
	ds := sch.Dataset("Streams")
	ds.Attributes = []*schema.AttributeSchema{
		{
			Field: "STATUS",
			Label: "Status",
			Kind:  schema.RuleDiscrete,
			Rules: []*schema.ClassificationRule{{Key: "Protected"}},
		},
	}
	u := ds.Stats[schema.OverallPartition].Units["S1"]
	u.Attrs["STATUS"] = "Unknown"

	layout, err := report.Build(sch, fixtureParams())
	require.NoError(t, err)

	cell := findCell(layout.Sheets[0], 11, 2)
	require.NotNil(t, cell)
	assert.Equal(t, "Unknown", cell.Value)
	assert.Equal(t, schema.RoleRegular, cell.Role)
}

func TestBuildRoundsFractionalAttributes(t *testing.T) {
	sch := fixtureSchema()
	ds := sch.Dataset("Streams")
	ds.Attributes = []*schema.AttributeSchema{
		{Field: "PCT", Label: "Percent"},
	}
	u := ds.Stats[schema.OverallPartition].Units["S1"]
	u.Attrs["PCT"] = 12.34567

	layout, err := report.Build(sch, fixtureParams())
	require.NoError(t, err)

	cell := findCell(layout.Sheets[0], 11, 2)
	require.NotNil(t, cell)
	assert.Equal(t, 12.346, cell.Value)
}
