// Package iooverlay reads geometry-overlay records out of the scratch
// SQLite workspace written by the external geometry engine. Each
// dataset has a union table combining the net AOI and the dataset
// footprint; the workspace also carries the net_aoi table with the
// AOI's own areas.
//
// This is an impure I/O package; the records it produces feed the pure
// aggregation engine through the overlay.Source boundary.
package iooverlay

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	// Pure Go SQLite driver (no CGo).
	_ "modernc.org/sqlite"
)

// column names the geometry engine writes into every union table.
const (
	colMeasure   = "shape_measure"
	colFIDAOI    = "fid_net_aoi"
	colFIDValue  = "fid_value"
	netAOITable  = "net_aoi"
	sqMetresToHa = 10000.0
)

// Workspace wraps the scratch SQLite database for one run.
type Workspace struct {
	db       *sql.DB
	path     string
	aoiField string
}

// Open connects to the scratch workspace. aoiField is the AOI
// partition column, empty for unpartitioned runs.
func Open(path, aoiField string) (*Workspace, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, WorkspaceOpenError(path, err)
	}
	if err = db.Ping(); err != nil {
		return nil, WorkspaceOpenError(path, err)
	}
	return &Workspace{db: db, path: path, aoiField: aoiField}, nil
}

// Close releases the underlying database handle.
func (w *Workspace) Close() error {
	return w.db.Close()
}

var tableRx = regexp.MustCompile(`[^a-zA-Z0-9]`)

// UnionTable is the union-table name for a dataset, mirroring how the
// geometry engine sanitizes dataset names.
func UnionTable(datasetName string) string {
	return "union_" + strings.ToLower(tableRx.ReplaceAllString(datasetName, "_"))
}

// HasTable reports whether a table exists in the workspace.
func (w *Workspace) HasTable(ctx context.Context, name string) (bool, error) {
	row := w.db.QueryRowContext(ctx,
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name,
	)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, OverlayQueryError(name, err)
	}
	return n > 0, nil
}

// AOITotals reads the net AOI areas: the overall total in hectares
// and, when a partition field is configured, per-partition totals in
// first-seen order.
func (w *Workspace) AOITotals(
	ctx context.Context,
) (float64, map[string]float64, []string, error) {
	cols := colMeasure
	if w.aoiField != "" {
		cols += ", " + quoteIdent(w.aoiField)
	}
	rows, err := w.db.QueryContext(
		ctx, "SELECT "+cols+" FROM "+netAOITable,
	)
	if err != nil {
		return 0, nil, nil, AOITotalsError(w.path, err)
	}
	defer rows.Close()

	var total float64
	partTotals := make(map[string]float64)
	var order []string

	for rows.Next() {
		var measure float64
		var part sql.NullString
		if w.aoiField != "" {
			err = rows.Scan(&measure, &part)
		} else {
			err = rows.Scan(&measure)
		}
		if err != nil {
			return 0, nil, nil, AOITotalsError(w.path, err)
		}
		ha := measure / sqMetresToHa
		total += ha
		if part.Valid && part.String != "" {
			if _, ok := partTotals[part.String]; !ok {
				order = append(order, part.String)
			}
			partTotals[part.String] += ha
		}
	}
	if err = rows.Err(); err != nil {
		return 0, nil, nil, AOITotalsError(w.path, err)
	}
	return total, partTotals, order, nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
