// Package overlay defines the boundary to the external geometry
// engine: the record shape its union/intersect/erase output reduces
// to, and the cursor interfaces the aggregation engine consumes.
package overlay

import (
	"context"
	"fmt"
)

// Record is one attributed row of geometry-overlay output.
type Record struct {
	// Measure is area in hectares, length in metres, or 1 for a point
	// feature, depending on the dataset's geometry kind.
	Measure float64

	// InAOI is true when the sub-feature lies inside the net AOI
	// footprint.
	InAOI bool

	// InDataset is true when the sub-feature lies inside the original
	// dataset footprint. Overlay rows can represent the AOI-only
	// remainder, the dataset-only remainder, or the intersection.
	InDataset bool

	// Partition is the record's AOI partition value, empty when no
	// partition field is configured.
	Partition string

	// Attrs carries the dataset's id, label and ancillary fields.
	Attrs map[string]any
}

// Attr returns the stringified attribute value; nil values become "".
func (r Record) Attr(field string) string {
	v, ok := r.Attrs[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Cursor iterates overlay records, sql.Rows style.
type Cursor interface {
	Next() bool
	Record() Record
	Err() error
	Close() error
}

// Source produces cursors over a dataset's overlay records. Open may
// be called more than once per run: the aggregation engine scans the
// records twice.
type Source interface {
	Open(ctx context.Context) (Cursor, error)
}

// SliceSource is an in-memory, replayable Source.
type SliceSource []Record

// Open implements Source.
func (s SliceSource) Open(_ context.Context) (Cursor, error) {
	return &sliceCursor{recs: s}, nil
}

type sliceCursor struct {
	recs []Record
	pos  int
}

func (c *sliceCursor) Next() bool {
	if c.pos >= len(c.recs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Record() Record { return c.recs[c.pos-1] }
func (c *sliceCursor) Err() error     { return nil }
func (c *sliceCursor) Close() error   { return nil }
