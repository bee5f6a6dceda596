package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/classify"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
)

const aoiFootnote = "*If spatially explicit leave areas are provided " +
	"they are netted out of the AOI total area (removed). " +
	"Otherwise, net area = gross area"

// Build walks the schema's statistics hierarchy and produces the full
// report layout: the Overall sheet, one sheet per named partition when
// more than one exists, and the summary sheet.
func Build(sch *schema.Schema, p Params) (*Layout, error) {
	keys := []string{schema.OverallPartition}
	if len(p.Partitions) > 1 {
		keys = append(keys, p.Partitions...)
	}

	res := &Layout{}
	for _, key := range keys {
		total := p.AOITotal
		if key != schema.OverallPartition {
			total = p.PartitionTotals[key]
		}
		res.Sheets = append(res.Sheets, buildPartitionSheet(sch, p, key, total))
	}

	res.Sheets = append(res.Sheets, buildSummarySheet(sch, p, keys))
	return res, nil
}

func buildPartitionSheet(
	sch *schema.Schema,
	p Params,
	partition string,
	partitionTotal float64,
) *Sheet {
	w := newSheetWriter(partition)
	anchor := writeTitleBlock(w, p, partitionTotal)

	for _, cat := range sch.Categories {
		for _, ds := range cat.Datasets {
			writeDatasetBlock(w, cat, ds, partition, anchor)
		}
	}

	w.sheet.ColWidths = standardWidths()
	return w.sheet
}

// writeTitleBlock emits the static header fields and the partition's
// net area, returning the area cell used as the anchor for AOI-ratio
// formulas further down the sheet.
func writeTitleBlock(w *sheetWriter, p Params, partitionTotal float64) CellRef {
	w.set(1, p.Title, schema.RoleTitle)
	w.mergeCols(1, 6)
	w.row++

	for _, label := range []string{
		"File Name/Number:",
		"Date Submitted:",
		"Submitter Name:",
		"Email:",
		"Ministry/Organization:",
	} {
		w.set(1, label, schema.RoleRegularLeft)
		value := ""
		if label == "File Name/Number:" {
			value = p.FileNumber
		}
		w.set(2, value, schema.RoleRegular)
		w.row++
	}

	w.set(1, "Net AOI Area (ha)*:", schema.RoleRegularLeft)
	w.set(2, partitionTotal, schema.RoleNumber)
	w.set(3, aoiFootnote, schema.RoleItalics)
	w.mergeCols(3, 8)
	anchor := CellRef{Col: 2, Row: w.row}

	w.row += 2
	return anchor
}

// standardHeaders returns the fixed column-header template for a
// geometry kind, worded by its measure.
func standardHeaders(g schema.GeometryKind) []string {
	noun := g.MeasureNoun()
	return []string{
		"Assessment Unit",
		fmt.Sprintf("%s of Assessment Unit", noun),
		fmt.Sprintf("%s of AOI Overlap with Assessment Unit", noun),
		"% of AOI that Overlaps with Assessment Unit",
		"% of Assessment Unit that Overlaps with AOI",
	}
}

func writeDatasetBlock(
	w *sheetWriter,
	cat *schema.Category,
	ds *schema.IndicatorDataset,
	partition string,
	anchor CellRef,
) {
	std := standardHeaders(ds.Geometry)
	labels := make([]string, len(ds.Attributes))
	for i, a := range ds.Attributes {
		labels[i] = a.Label
	}
	headers := append([]string{std[0]}, labels...)
	headers = append(headers, std[1:]...)
	// measureCol is the column of the unit-total cell; overlap and the
	// two ratios follow it.
	measureCol := 1 + len(ds.Attributes) + 1

	header := fmt.Sprintf(
		"Cumulative Effects Framework %s Value - %s (%d)",
		ds.ValueKind, cat.Name, ds.AssessmentYear,
	)
	w.set(1, header, schema.RoleValueHeader)
	w.mergeCols(1, len(headers))
	w.row++

	if len(cat.Datasets) > 1 {
		w.set(1, ds.Name, schema.RoleValueSubheader)
		w.mergeCols(1, len(headers))
		w.row++
	}

	for i, h := range headers {
		w.set(1+i, h, schema.RoleColumnHeader)
	}
	w.row++

	stats := ds.Stats[partition]
	if stats == nil || len(stats.Units) == 0 {
		w.set(1, fmt.Sprintf("No overlap with %s", ds.Name), schema.RoleRegular)
		w.mergeCols(1, len(headers))
		w.row += 2
		return
	}

	overall := ds.Stats[schema.OverallPartition]
	for _, key := range stats.UnitKeys() {
		unit := stats.Units[key]

		w.set(1, unit.Name, schema.RoleRegular)

		// The unit total always comes from the Overall partition: the
		// "% of unit" denominator must not depend on the sheet.
		var total float64
		if overall != nil {
			if ou := overall.Units[key]; ou != nil {
				total = ou.TotalMeasure
			}
		}
		w.set(measureCol, total, schema.RoleNumber)
		w.set(measureCol+1, unit.OverlapMeasure, schema.RoleNumber)

		overlapRef := CellRef{Col: measureCol + 1, Row: w.row}
		if ds.Geometry.HasAOIRatio() {
			w.setRatio(measureCol+2, overlapRef, anchor, schema.RolePercent)
		} else {
			w.set(measureCol+2, "N/A", schema.RoleRegular)
		}
		w.setRatio(
			measureCol+3,
			overlapRef,
			CellRef{Col: measureCol, Row: w.row},
			schema.RolePercent,
		)

		for i, attr := range ds.Attributes {
			writeAttributeCell(w, 2+i, unit, attr)
		}
		w.row++
	}
	w.row++
}

// writeAttributeCell renders one captured ancillary value: rounded when
// fractional, suffixed with companion values, styled by its matching
// classification rule.
func writeAttributeCell(
	w *sheetWriter,
	col int,
	unit *schema.UnitStats,
	attr *schema.AttributeSchema,
) {
	raw, ok := unit.Attrs[attr.Field]
	if !ok {
		return
	}

	value := roundFractional(raw)
	if classify.Text(value) == "" {
		w.set(col, value, schema.RoleRegular)
		return
	}

	if len(attr.Companions) > 0 {
		companions := make([]string, len(attr.Companions))
		for i, fld := range attr.Companions {
			companions[i] = classify.Text(unit.Attrs[fld])
		}
		value = fmt.Sprintf(
			"%s (%s)", classify.Text(value), strings.Join(companions, ","),
		)
	}

	role := schema.RoleRegular
	if rule, err := classify.Classify(raw, attr); err == nil {
		role = rule.Style
	}
	w.set(col, value, role)
}

// roundFractional rounds numeric values to 3 decimals, but only when
// they carry a fractional part; whole numbers and text pass through.
func roundFractional(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if f == math.Trunc(f) {
		return f
	}
	return math.Round(f*1000) / 1000
}

func standardWidths() []ColWidth {
	res := []ColWidth{
		{Col: 1, Width: 20},
		{Col: 2, Width: 12},
		{Col: 3, Width: 12},
		{Col: 4, Width: 12},
		{Col: 5, Width: 13},
	}
	for col := 6; col <= 12; col++ {
		res = append(res, ColWidth{Col: col, Width: 15})
	}
	return res
}
