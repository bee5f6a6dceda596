// Package schema provides the in-memory model of the report schema:
// indicator categories and datasets, per-attribute classification rules,
// and the statistics hierarchy the aggregation engine fills in.
//
// The model is built once from the Excel schema workbook and is read-only
// afterwards, except for the per-dataset statistics which are mutated
// exclusively by the aggregate package.
package schema

import (
	"strings"
)

// OverallPartition is the reserved partition key for the whole AOI.
// Named partitions (values of the AOI partition field) accumulate
// alongside it.
const OverallPartition = "Overall"

// ImplicitUnit is the assessment-unit key used when a dataset declares
// no id fields: every record belongs to this single unit.
const ImplicitUnit = "All Units"

// Schema holds all indicator categories in their declared order.
type Schema struct {
	Categories []*Category
}

// Category groups indicator datasets under one reported value.
type Category struct {
	Name     string
	Datasets []*IndicatorDataset
}

// Category returns the category with the given name, creating and
// appending it when absent.
func (s *Schema) Category(name string) *Category {
	for _, c := range s.Categories {
		if c.Name == name {
			return c
		}
	}
	c := &Category{Name: name}
	s.Categories = append(s.Categories, c)
	return c
}

// Dataset returns the named dataset across all categories, or nil.
// Used to attach attribute schemas parsed from the Additional Fields
// sheet; rows referencing unknown datasets are dropped by the caller.
func (s *Schema) Dataset(name string) *IndicatorDataset {
	for _, c := range s.Categories {
		for _, d := range c.Datasets {
			if d.Name == name {
				return d
			}
		}
	}
	return nil
}

// Datasets returns all datasets in declared order.
func (s *Schema) Datasets() []*IndicatorDataset {
	var res []*IndicatorDataset
	for _, c := range s.Categories {
		res = append(res, c.Datasets...)
	}
	return res
}

// JoinSpec describes an attribute join performed before aggregation.
type JoinSpec struct {
	// SourceField is the field in the overlay table holding join keys.
	SourceField string
	// Table is the external table joined in.
	Table string
	// TableField is the key field within Table.
	TableField string
}

// IndicatorDataset is one named input layer inside a category.
type IndicatorDataset struct {
	Name           string
	Category       string
	ValueKind      string
	AssessmentYear int
	Path           string

	// IDFields concatenate into the assessment-unit key. Empty means
	// the implicit "All Units" unit.
	IDFields []string

	// LabelFields concatenate into the unit display name.
	LabelFields []string

	// Filter is an optional row filter applied when reading overlay
	// records.
	Filter string

	Join *JoinSpec

	Geometry GeometryKind

	// Attributes holds ancillary attribute schemas in declared order.
	Attributes []*AttributeSchema

	// Stats maps partition key to its accumulated statistics. Created
	// empty, filled in by the aggregation engine, read-only afterwards.
	Stats map[string]*PartitionStats

	// NoOverlap marks a dataset that produced zero qualifying overlay
	// records; it is still rendered, as a "no overlap" block.
	NoOverlap bool
}

// NewIndicatorDataset builds a dataset and normalizes its unit fields:
// a unit must have both an id and a display name, so an empty list
// defaults from the other one.
func NewIndicatorDataset(name, category, valueKind string) *IndicatorDataset {
	return &IndicatorDataset{
		Name:      name,
		Category:  category,
		ValueKind: valueKind,
		Stats:     make(map[string]*PartitionStats),
	}
}

// SetUnitFields assigns the id and label field lists, mirroring one
// from the other when only one is given.
func (d *IndicatorDataset) SetUnitFields(idFields, labelFields []string) {
	d.IDFields = idFields
	d.LabelFields = labelFields
	if len(d.IDFields) == 0 && len(d.LabelFields) > 0 {
		d.IDFields = d.LabelFields
	} else if len(d.LabelFields) == 0 && len(d.IDFields) > 0 {
		d.LabelFields = d.IDFields
	}
}

// Attribute returns the attribute schema for a raw field name, or nil.
func (d *IndicatorDataset) Attribute(field string) *AttributeSchema {
	for _, a := range d.Attributes {
		if a.Field == field {
			return a
		}
	}
	return nil
}

// AttributeFields returns every field the aggregation engine must
// capture: attribute fields plus their companions, in declared order.
func (d *IndicatorDataset) AttributeFields() []string {
	var res []string
	for _, a := range d.Attributes {
		res = append(res, a.Field)
		res = append(res, a.Companions...)
	}
	return res
}

// Partition returns the stats bucket for a partition key, creating it
// when absent.
func (d *IndicatorDataset) Partition(key string) *PartitionStats {
	if d.Stats == nil {
		d.Stats = make(map[string]*PartitionStats)
	}
	p, ok := d.Stats[key]
	if !ok {
		p = &PartitionStats{Units: make(map[string]*UnitStats)}
		d.Stats[key] = p
	}
	return p
}

// ResetStats discards accumulated statistics so a dataset can be
// aggregated again without double counting.
func (d *IndicatorDataset) ResetStats() {
	d.Stats = make(map[string]*PartitionStats)
	d.NoOverlap = false
}

// SplitFieldList parses a comma-separated field list from a schema
// cell, trimming spaces. Empty input yields nil.
func SplitFieldList(s string) []string {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
