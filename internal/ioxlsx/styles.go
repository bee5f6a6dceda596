// Package ioxlsx binds the core's schema model and report layout to
// Excel workbooks via excelize. It is the only package that knows the
// spreadsheet vocabulary; the core deals in opaque style roles.
package ioxlsx

import (
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/xuri/excelize/v2"
)

// StyleRegistry maps rule style roles, minted while reading the schema
// workbook, to the cell formatting captured from the rule cells.
type StyleRegistry map[schema.StyleRole]*excelize.Style

var (
	fmtPercent = "##0.00%"
	fmtNumber  = "###,##0"
)

func thinBorder() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	res := make([]excelize.Border, len(sides))
	for i, s := range sides {
		res[i] = excelize.Border{Type: s, Color: "000000", Style: 1}
	}
	return res
}

type styleSpec struct {
	fontSize float64
	bold     bool
	italic   bool
	horiz    string
	border   bool
	fill     string
	numFmt   *string
}

func (s styleSpec) build() *excelize.Style {
	size := s.fontSize
	if size == 0 {
		size = 10
	}
	horiz := s.horiz
	if horiz == "" {
		horiz = "center"
	}
	res := &excelize.Style{
		Font: &excelize.Font{
			Size: size, Bold: s.bold, Italic: s.italic,
			Color: "000000", Family: "Calibri",
		},
		Alignment: &excelize.Alignment{
			Horizontal: horiz, Vertical: "center", WrapText: true,
		},
	}
	if s.border {
		res.Border = thinBorder()
	}
	if s.fill != "" {
		res.Fill = excelize.Fill{
			Type: "pattern", Pattern: 1, Color: []string{s.fill},
		}
	}
	if s.numFmt != nil {
		res.CustomNumFmt = s.numFmt
	}
	return res
}

// builtinStyles are the standard report styles; rule styles from the
// schema workbook are added on top of these.
func builtinStyles() map[schema.StyleRole]*excelize.Style {
	return map[schema.StyleRole]*excelize.Style{
		schema.RoleTitle: styleSpec{
			bold: true, fontSize: 12, horiz: "left",
		}.build(),
		schema.RoleValueHeader: styleSpec{
			bold: true, fontSize: 11, border: true, fill: "F9FAED",
		}.build(),
		schema.RoleValueSubheader: styleSpec{
			bold: true, italic: true, border: true, fill: "F9FAED",
		}.build(),
		schema.RoleRegular: styleSpec{
			border: true,
		}.build(),
		schema.RoleRegularLeft: styleSpec{
			border: true, horiz: "left",
		}.build(),
		schema.RoleItalics: styleSpec{
			fontSize: 8, italic: true, horiz: "left", border: true,
		}.build(),
		schema.RolePercent: styleSpec{
			border: true, numFmt: &fmtPercent,
		}.build(),
		schema.RoleNumber: styleSpec{
			horiz: "right", border: true, numFmt: &fmtNumber,
		}.build(),
		schema.RoleColumnHeader: styleSpec{
			bold: true, border: true, fill: "EDFCFC",
		}.build(),
	}
}
