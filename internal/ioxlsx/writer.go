package ioxlsx

import (
	"strconv"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/report"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/xuri/excelize/v2"
)

// WriteReport renders a layout into an xlsx workbook at path. Styles
// from the schema workbook take precedence over the built-in roles. If
// a sheet fails to render, whatever rendered before it is still saved
// so a partial report survives the failure.
func WriteReport(
	path string,
	layout *report.Layout,
	styles StyleRegistry,
) error {
	f := excelize.NewFile()
	defer f.Close()

	r := &renderer{f: f, ids: make(map[schema.StyleRole]int)}
	for role, style := range builtinStyles() {
		if _, ok := styles[role]; !ok {
			r.register(role, style)
		}
	}
	for role, style := range styles {
		r.register(role, style)
	}

	for _, sheet := range layout.Sheets {
		if err := r.renderSheet(sheet); err != nil {
			// keep the sheets already rendered
			_ = f.DeleteSheet("Sheet1")
			_ = f.SaveAs(path)
			return ReportWriteError(sheet.Name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return ReportSaveError(path, err)
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return ReportSaveError(path, err)
	}
	return nil
}

type renderer struct {
	f   *excelize.File
	ids map[schema.StyleRole]int
}

// register turns a style into a workbook style id; styles that fail to
// build fall back to unstyled cells.
func (r *renderer) register(role schema.StyleRole, style *excelize.Style) {
	id, err := r.f.NewStyle(style)
	if err != nil {
		return
	}
	r.ids[role] = id
}

func (r *renderer) styleID(role schema.StyleRole) (int, bool) {
	id, ok := r.ids[role]
	if !ok && role != schema.RoleNone {
		// rule roles without a captured style render as regular cells
		id, ok = r.ids[schema.RoleRegular]
	}
	return id, ok
}

func (r *renderer) renderSheet(sheet *report.Sheet) error {
	if _, err := r.f.NewSheet(sheet.Name); err != nil {
		return err
	}

	for _, c := range sheet.Cells {
		ref, err := excelize.CoordinatesToCellName(c.Col, c.Row)
		if err != nil {
			return err
		}
		if c.Ratio != nil {
			formula := absRef(c.Ratio.Num) + "/" + absRef(c.Ratio.Den)
			if err = r.f.SetCellFormula(sheet.Name, ref, formula); err != nil {
				return err
			}
		} else if err = r.f.SetCellValue(sheet.Name, ref, c.Value); err != nil {
			return err
		}
		if id, ok := r.styleID(c.Role); ok {
			if err = r.f.SetCellStyle(sheet.Name, ref, ref, id); err != nil {
				return err
			}
		}
	}

	for _, m := range sheet.Merges {
		start, err := excelize.CoordinatesToCellName(m.Start.Col, m.Start.Row)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(m.End.Col, m.End.Row)
		if err != nil {
			return err
		}
		if err = r.f.MergeCell(sheet.Name, start, end); err != nil {
			return err
		}
	}

	for _, w := range sheet.ColWidths {
		col, err := excelize.ColumnNumberToName(w.Col)
		if err != nil {
			return err
		}
		if err = r.f.SetColWidth(sheet.Name, col, col, w.Width); err != nil {
			return err
		}
	}
	return nil
}

// absRef renders a cell reference with absolute anchors, the form the
// ratio formulas use so merged title rows do not shift them.
func absRef(ref report.CellRef) string {
	col, _ := excelize.ColumnNumberToName(ref.Col)
	return "$" + col + "$" + strconv.Itoa(ref.Row)
}
