// Package aggregate folds overlay-record streams into the per-dataset
// statistics hierarchy: partition -> assessment unit -> measures.
package aggregate

import (
	"context"
	"strings"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/overlay"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
)

// Run aggregates a dataset's overlay records into ds.Stats and reports
// whether the dataset overlaps the AOI at all.
//
// The source is scanned twice. The first pass discovers which
// assessment units have any presence inside the AOI; the second
// accumulates measures. The double pass is required because a unit's
// AOI-side total must count units that never intersect this dataset:
// the denominator for "% of unit" has to be independent of overlap.
//
// Stats are reset on entry, so re-running over the same records yields
// identical results.
func Run(
	ctx context.Context,
	ds *schema.IndicatorDataset,
	src overlay.Source,
) (bool, error) {
	ds.ResetStats()

	members, err := discoverMembers(ctx, ds, src)
	if err != nil {
		return false, err
	}

	overlapped, err := accumulate(ctx, ds, src, members)
	if err != nil {
		return false, err
	}
	ds.NoOverlap = !overlapped
	return overlapped, nil
}

// discoverMembers collects unit keys that have at least one record
// inside the net AOI footprint.
func discoverMembers(
	ctx context.Context,
	ds *schema.IndicatorDataset,
	src overlay.Source,
) (map[string]bool, error) {
	cur, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	members := make(map[string]bool)
	for cur.Next() {
		rec := cur.Record()
		key := UnitKey(ds.IDFields, rec)
		if key == "" {
			continue
		}
		if rec.InAOI {
			members[key] = true
		}
	}
	return members, cur.Err()
}

func accumulate(
	ctx context.Context,
	ds *schema.IndicatorDataset,
	src overlay.Source,
	members map[string]bool,
) (bool, error) {
	cur, err := src.Open(ctx)
	if err != nil {
		return false, err
	}
	defer cur.Close()

	captured := ds.AttributeFields()
	var overlapped bool

	for cur.Next() {
		rec := cur.Record()
		key := UnitKey(ds.IDFields, rec)
		if key == "" {
			continue
		}
		if key != schema.ImplicitUnit && !members[key] {
			continue
		}
		name := unitName(ds.LabelFields, rec)

		// Overall and the record's named partition accumulate
		// symmetrically.
		parts := []*schema.PartitionStats{
			ds.Partition(schema.OverallPartition),
		}
		if rec.Partition != "" {
			parts = append(parts, ds.Partition(rec.Partition))
		}

		for _, p := range parts {
			u := p.Unit(key)
			u.Name = name
			u.TotalMeasure += rec.Measure

			if !rec.InAOI {
				continue
			}
			p.TotalMeasure += rec.Measure

			if !rec.InDataset {
				continue
			}
			overlapped = true
			u.OverlapMeasure += rec.Measure
			for _, fld := range captured {
				v := rec.Attrs[fld]
				if v == nil {
					v = ""
				}
				u.Attrs[fld] = v
			}
		}
	}
	return overlapped, cur.Err()
}

// UnitKey builds the assessment-unit key for a record: the non-empty
// id-field values joined in declared order. An empty result means the
// record cannot be attributed to any unit and is dropped. Datasets
// without id fields use the implicit single unit.
func UnitKey(idFields []string, rec overlay.Record) string {
	if len(idFields) == 0 {
		return schema.ImplicitUnit
	}
	var parts []string
	for _, fld := range idFields {
		v := rec.Attr(fld)
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// unitName builds the display name from label fields. Unlike id
// fields, empty components are kept as "Unnamed" placeholders.
func unitName(labelFields []string, rec overlay.Record) string {
	if len(labelFields) == 0 {
		return schema.ImplicitUnit
	}
	parts := make([]string, 0, len(labelFields))
	for _, fld := range labelFields {
		v := rec.Attr(fld)
		if v == "" {
			v = "Unnamed"
		}
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}
