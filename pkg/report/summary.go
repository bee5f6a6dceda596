package report

import (
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
)

// summaryHeaders are the fixed columns of the summary sheet. The
// partition total is carried per row so both ratio formulas reference
// cells on the same sheet.
var summaryHeaders = []string{
	"Category",
	"Dataset",
	"Partition",
	"Assessment Units",
	"Total Measure",
	"Overlap Measure",
	"Net Partition Area (ha)",
	"% of Assessment Units Overlapped",
	"% of AOI Overlapped",
}

// buildSummarySheet emits one row per (category, dataset, partition)
// with aggregate measures and the same ratio formulas the detail
// sheets carry, computed at the aggregate level. Category and dataset
// cells are merged down across the rows they span.
func buildSummarySheet(sch *schema.Schema, p Params, partitions []string) *Sheet {
	w := newSheetWriter(SummarySheet)

	w.set(1, "Overlap Summary", schema.RoleTitle)
	w.mergeCols(1, len(summaryHeaders))
	w.row++

	for i, h := range summaryHeaders {
		w.set(1+i, h, schema.RoleColumnHeader)
	}
	w.row++

	for _, cat := range sch.Categories {
		catStart := w.row
		for _, ds := range cat.Datasets {
			dsStart := w.row
			for _, part := range partitions {
				writeSummaryRow(w, cat, ds, part, p)
			}
			if w.row-dsStart > 1 {
				w.sheet.Merges = append(w.sheet.Merges, Merge{
					Start: CellRef{Col: 2, Row: dsStart},
					End:   CellRef{Col: 2, Row: w.row - 1},
				})
			}
		}
		if w.row-catStart > 1 {
			w.sheet.Merges = append(w.sheet.Merges, Merge{
				Start: CellRef{Col: 1, Row: catStart},
				End:   CellRef{Col: 1, Row: w.row - 1},
			})
		}
	}

	w.sheet.ColWidths = summaryWidths()
	return w.sheet
}

func writeSummaryRow(
	w *sheetWriter,
	cat *schema.Category,
	ds *schema.IndicatorDataset,
	partition string,
	p Params,
) {
	var units int
	var total, overlap float64
	if stats := ds.Stats[partition]; stats != nil {
		units = len(stats.Units)
		for _, u := range stats.Units {
			total += u.TotalMeasure
			overlap += u.OverlapMeasure
		}
	}

	partTotal := p.AOITotal
	if partition != schema.OverallPartition {
		partTotal = p.PartitionTotals[partition]
	}

	w.set(1, cat.Name, schema.RoleRegular)
	w.set(2, ds.Name, schema.RoleRegular)
	w.set(3, partition, schema.RoleRegular)
	w.set(4, units, schema.RoleNumber)
	w.set(5, total, schema.RoleNumber)
	w.set(6, overlap, schema.RoleNumber)
	w.set(7, partTotal, schema.RoleNumber)

	overlapRef := CellRef{Col: 6, Row: w.row}
	if units == 0 {
		w.set(8, "N/A", schema.RoleRegular)
	} else {
		w.setRatio(8, overlapRef, CellRef{Col: 5, Row: w.row}, schema.RolePercent)
	}
	if ds.Geometry.HasAOIRatio() {
		w.setRatio(9, overlapRef, CellRef{Col: 7, Row: w.row}, schema.RolePercent)
	} else {
		w.set(9, "N/A", schema.RoleRegular)
	}
	w.row++
}

func summaryWidths() []ColWidth {
	res := []ColWidth{
		{Col: 1, Width: 20},
		{Col: 2, Width: 25},
		{Col: 3, Width: 15},
	}
	for col := 4; col <= 9; col++ {
		res = append(res, ColWidth{Col: col, Width: 15})
	}
	return res
}
