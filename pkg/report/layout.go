// Package report turns the statistics hierarchy and the schema into an
// ordered layout of sheets, cells, merges and formula specs. The
// layout is presentation-agnostic: cells carry opaque style roles and
// ratio formulas carry cell references, nothing spreadsheet-library
// specific.
package report

import (
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
)

// SummarySheet is the name of the aggregate summary sheet appended
// after the partition sheets.
const SummarySheet = "Summary"

// CellRef addresses a cell on the same sheet, 1-based.
type CellRef struct {
	Col int
	Row int
}

// Ratio is a computed-ratio formula spec: numerator cell divided by
// denominator cell, both on the sheet the cell lives on.
type Ratio struct {
	Num CellRef
	Den CellRef
}

// Cell is one logical report cell.
type Cell struct {
	Row   int
	Col   int
	Value any
	Role  schema.StyleRole

	// Ratio, when set, takes precedence over Value: the rendered cell
	// holds a live formula.
	Ratio *Ratio
}

// Merge is an inclusive merged cell range.
type Merge struct {
	Start CellRef
	End   CellRef
}

// ColWidth sets a column's display width.
type ColWidth struct {
	Col   int
	Width float64
}

// Sheet is one ordered block sequence of report cells.
type Sheet struct {
	Name      string
	Cells     []Cell
	Merges    []Merge
	ColWidths []ColWidth
}

// Layout is the complete report: one sheet per partition (when more
// than one partition exists), led by the Overall sheet and followed by
// the summary sheet.
type Layout struct {
	Sheets []*Sheet
}

// Params carries the run-level values the layout needs beyond the
// schema itself.
type Params struct {
	// Title is the report title, e.g. "Cumulative Effects Analysis -
	// <AOI name>".
	Title string

	// FileNumber appears in the title block.
	FileNumber string

	// AOITotal is the net AOI area in hectares.
	AOITotal float64

	// PartitionTotals maps named partition values to their net area.
	PartitionTotals map[string]float64

	// Partitions lists named partition values in presentation order.
	Partitions []string

	// LeaveAreas notes whether leave areas were netted out; reporting
	// context only.
	LeaveAreas string
}

// sheetWriter accumulates cells for one sheet, tracking the cursor row
// the way the blocks are emitted.
type sheetWriter struct {
	sheet *Sheet
	row   int
}

func newSheetWriter(name string) *sheetWriter {
	return &sheetWriter{sheet: &Sheet{Name: name}, row: 1}
}

func (w *sheetWriter) set(col int, value any, role schema.StyleRole) {
	w.sheet.Cells = append(w.sheet.Cells, Cell{
		Row: w.row, Col: col, Value: value, Role: role,
	})
}

func (w *sheetWriter) setRatio(col int, num, den CellRef, role schema.StyleRole) {
	w.sheet.Cells = append(w.sheet.Cells, Cell{
		Row: w.row, Col: col, Role: role,
		Ratio: &Ratio{Num: num, Den: den},
	})
}

// mergeCols merges columns from..to on the current row.
func (w *sheetWriter) mergeCols(from, to int) {
	w.sheet.Merges = append(w.sheet.Merges, Merge{
		Start: CellRef{Col: from, Row: w.row},
		End:   CellRef{Col: to, Row: w.row},
	})
}
