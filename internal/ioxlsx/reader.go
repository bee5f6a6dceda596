package ioxlsx

import (
	"strconv"
	"strings"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/gnames/gn"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the schema workbook.
const (
	indicatorsSheet = "Indicators"
	fieldsSheet     = "Additional Fields"
)

// Required columns of the Indicators sheet.
const (
	colCategory = "CE_VALUE"
	colKind     = "VALUE_TYPE"
	colDataset  = "DATASET_NAME"
	colYear     = "ASSESSMENT_YEAR"
	colPath     = "PATH"
)

// Optional columns of the Indicators sheet.
const (
	colIDField    = "UNIQUE_ID_FIELD"
	colUnitField  = "ASSESSMENT_UNIT_FIELD"
	colFilter     = "SQL"
	colJoinSource = "SOURCE_FIELD"
	colJoinTable  = "JOIN_TABLE_PATH"
	colJoinField  = "JOIN_TABLE_FIELD"
	colGeometry   = "GEOMETRY_TYPE"
)

// SchemaResult is the parsed schema workbook: the indicator model plus
// the cell styles captured from the rule cells.
type SchemaResult struct {
	Schema *schema.Schema
	Styles StyleRegistry
}

// ReadSchema parses the schema workbook. The Indicators sheet defines
// categories and datasets; the Additional Fields sheet attaches
// classification rules, with each rule cell's own formatting recorded
// under the rule's style role.
func ReadSchema(path string) (*SchemaResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, SchemaOpenError(path, err)
	}
	defer f.Close()

	res := &SchemaResult{
		Schema: &schema.Schema{},
		Styles: make(StyleRegistry),
	}
	if err = readIndicators(f, res.Schema); err != nil {
		return nil, err
	}
	if err = readFields(f, res); err != nil {
		return nil, err
	}
	return res, nil
}

// readIndicators parses the Indicators sheet. Row 1 holds column
// headers, row 2 holds column descriptions, data starts at row 3. Rows
// missing a required value are skipped with a warning rather than
// failing the run.
func readIndicators(f *excelize.File, sch *schema.Schema) error {
	rows, err := f.GetRows(indicatorsSheet)
	if err != nil {
		return SheetMissingError(indicatorsSheet, err)
	}
	if len(rows) == 0 {
		return SchemaParseError("the Indicators sheet is empty", nil)
	}

	idx := headerIndex(rows[0])
	for _, req := range []string{
		colCategory, colKind, colDataset, colYear, colPath,
	} {
		if _, ok := idx[req]; !ok {
			return SchemaParseError(
				"the Indicators sheet has no "+req+" column", nil,
			)
		}
	}

	for i := 2; i < len(rows); i++ {
		row := rows[i]
		category := cell(row, idx, colCategory)
		kind := cell(row, idx, colKind)
		name := cell(row, idx, colDataset)
		year := cell(row, idx, colYear)
		dsPath := cell(row, idx, colPath)
		if category == "" || kind == "" || name == "" ||
			year == "" || dsPath == "" {
			gn.Warn("Skipping Indicators row <em>%d</em>: "+
				"a required value is missing", i+1)
			continue
		}

		ds := schema.NewIndicatorDataset(name, category, kind)
		ds.Path = dsPath
		ds.AssessmentYear, _ = strconv.Atoi(year)
		ds.SetUnitFields(
			schema.SplitFieldList(cell(row, idx, colIDField)),
			schema.SplitFieldList(cell(row, idx, colUnitField)),
		)
		ds.Filter = cell(row, idx, colFilter)
		ds.Geometry = schema.ParseGeometryKind(cell(row, idx, colGeometry))

		jt := cell(row, idx, colJoinTable)
		if jt != "" {
			ds.Join = &schema.JoinSpec{
				SourceField: cell(row, idx, colJoinSource),
				Table:       jt,
				TableField:  cell(row, idx, colJoinField),
			}
		}

		c := sch.Category(category)
		c.Datasets = append(c.Datasets, ds)
	}
	return nil
}

// readFields parses the Additional Fields sheet: dataset name, field,
// label, companion fields, rule kind, then one rule per cell until the
// first empty cell.
func readFields(f *excelize.File, res *SchemaResult) error {
	rows, err := f.GetRows(fieldsSheet)
	if err != nil {
		return SheetMissingError(fieldsSheet, err)
	}

	for i := 2; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 2 {
			continue
		}
		dsName := strings.TrimSpace(row[0])
		field := strings.TrimSpace(row[1])
		if dsName == "" || field == "" {
			continue
		}
		ds := res.Schema.Dataset(dsName)
		if ds == nil {
			continue
		}

		attr := &schema.AttributeSchema{Field: field, Label: field}
		if v := at(row, 2); v != "" {
			attr.Label = v
		}
		attr.Companions = schema.SplitFieldList(at(row, 3))
		attr.Kind = schema.ParseRuleKind(at(row, 4))

		for j := 5; j < len(row); j++ {
			key := strings.TrimSpace(row[j])
			if key == "" {
				break
			}
			var rule *schema.ClassificationRule
			if attr.Kind == schema.RuleRange {
				rule = schema.ParseRangeRule(key)
			} else {
				rule = &schema.ClassificationRule{Key: key}
			}
			rule.Style = schema.RuleStyleRole(dsName, field, rule.Key)
			attr.Rules = append(attr.Rules, rule)
			captureRuleStyle(f, res.Styles, rule.Style, i, j)
		}

		ds.Attributes = append(ds.Attributes, attr)
	}
	return nil
}

// captureRuleStyle records the workbook formatting of one rule cell so
// classified report cells render the way the schema author styled them.
func captureRuleStyle(
	f *excelize.File,
	reg StyleRegistry,
	role schema.StyleRole,
	rowIdx, colIdx int,
) {
	ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return
	}
	styleID, err := f.GetCellStyle(fieldsSheet, ref)
	if err != nil {
		return
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return
	}
	style.Border = thinBorder()
	if style.Alignment == nil {
		style.Alignment = &excelize.Alignment{
			Horizontal: "center", Vertical: "center", WrapText: true,
		}
	}
	reg[role] = style
}

// headerIndex maps normalized header names to their column index.
func headerIndex(header []string) map[string]int {
	res := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToUpper(strings.TrimSpace(h))
		if h != "" {
			res[h] = i
		}
	}
	return res
}

func cell(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok {
		return ""
	}
	return at(row, i)
}

func at(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
