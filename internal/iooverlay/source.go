package iooverlay

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/overlay"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
)

// DatasetSource builds a replayable overlay source for one dataset.
// The dataset's row filter becomes the WHERE clause and its join spec
// becomes a LEFT JOIN; a join table that is missing from the workspace
// degrades to no join with a warning, aggregation proceeds without the
// joined attributes.
func (w *Workspace) DatasetSource(
	ctx context.Context,
	ds *schema.IndicatorDataset,
) (overlay.Source, error) {
	table := UnionTable(ds.Name)
	ok, err := w.HasTable(ctx, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, MissingTableError(table, ds.Name)
	}

	query := "SELECT " + table + ".* "
	if ds.Join != nil {
		joinOK, err := w.HasTable(ctx, ds.Join.Table)
		if err != nil {
			return nil, err
		}
		if joinOK && ds.Join.SourceField != "" && ds.Join.TableField != "" {
			query = "SELECT * "
		} else {
			slog.Warn("Join table unavailable, proceeding without join",
				"dataset", ds.Name, "join_table", ds.Join.Table)
			ds.Join = nil
		}
	}

	query += "FROM " + table
	if ds.Join != nil {
		query += " LEFT JOIN " + ds.Join.Table +
			" ON " + table + "." + quoteIdent(ds.Join.SourceField) +
			" = " + ds.Join.Table + "." + quoteIdent(ds.Join.TableField)
	}
	if ds.Filter != "" {
		query += " WHERE " + ds.Filter
	}

	return &dbSource{db: w.db, query: query, ds: ds, aoiField: w.aoiField}, nil
}

// dbSource re-runs its query on every Open, so the aggregation engine
// can scan the records twice.
type dbSource struct {
	db       *sql.DB
	query    string
	ds       *schema.IndicatorDataset
	aoiField string
}

func (s *dbSource) Open(ctx context.Context) (overlay.Cursor, error) {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return nil, OverlayQueryError(s.ds.Name, err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, OverlayQueryError(s.ds.Name, err)
	}
	return &dbCursor{
		rows:     rows,
		cols:     cols,
		geometry: s.ds.Geometry,
		aoiField: s.aoiField,
		dataset:  s.ds.Name,
	}, nil
}

type dbCursor struct {
	rows     *sql.Rows
	cols     []string
	geometry schema.GeometryKind
	aoiField string
	dataset  string

	rec overlay.Record
	err error
}

func (c *dbCursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}

	values := make([]any, len(c.cols))
	ptrs := make([]any, len(c.cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		c.err = OverlayScanError(c.dataset, err)
		return false
	}

	attrs := make(map[string]any, len(c.cols))
	for i, col := range c.cols {
		if b, ok := values[i].([]byte); ok {
			values[i] = string(b)
		}
		attrs[col] = values[i]
	}

	rec := overlay.Record{Attrs: attrs}
	rec.InAOI = fid(attrs[colFIDAOI]) != -1
	rec.InDataset = fid(attrs[colFIDValue]) != -1
	rec.Measure = measure(attrs[colMeasure], c.geometry)
	if c.aoiField != "" {
		rec.Partition = rec.Attr(c.aoiField)
	}
	c.rec = rec
	return true
}

func (c *dbCursor) Record() overlay.Record { return c.rec }

func (c *dbCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *dbCursor) Close() error { return c.rows.Close() }

// measure converts the raw geometry measure to the kind's reporting
// unit: square metres to hectares for polygons, metres stay metres for
// lines, and every point row counts as one feature.
func measure(v any, g schema.GeometryKind) float64 {
	if g == schema.GeometryPoint {
		return 1
	}
	f := toFloat(v)
	if g == schema.GeometryLine {
		return f
	}
	return f / sqMetresToHa
}

func fid(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return -1
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
