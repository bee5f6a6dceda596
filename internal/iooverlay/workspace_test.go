package iooverlay_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/GraydonShevchenko/lup-interest-reporting/internal/iooverlay"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/aggregate"
	"github.com/GraydonShevchenko/lup-interest-reporting/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fixtureWorkspace writes a scratch workspace the way the geometry
// tooling does: a net_aoi table and one union table per dataset.
func fixtureWorkspace(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scratch.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE net_aoi (
			shape_measure REAL,
			LANDSCAPE_UNIT TEXT
		)`,
		`INSERT INTO net_aoi VALUES
			(6000000, 'North'),
			(4000000, 'South')`,
		`CREATE TABLE union_streams (
			shape_measure REAL,
			fid_net_aoi INTEGER,
			fid_value INTEGER,
			LANDSCAPE_UNIT TEXT,
			UNIT_ID TEXT,
			UNIT_NAME TEXT,
			STATUS TEXT
		)`,
		`INSERT INTO union_streams VALUES
			(500000, 1, 1, 'North', 'S1', 'S1', 'Protected'),
			(300000, -1, 1, NULL, 'S1', 'S1', 'Protected'),
			(50000, 2, -1, 'North', 'S1', 'S1', NULL),
			(100000, 3, 2, 'South', 'S2', 'S2', 'Managed')`,
	}
	for _, stmt := range stmts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func TestUnionTable(t *testing.T) {
	tests := []struct {
		msg, dataset, expected string
	}{
		{"simple", "Streams", "union_streams"},
		{"spaces", "Old Growth", "union_old_growth"},
		{"punctuation", "Moose (Winter)", "union_moose__winter_"},
	}

	for _, v := range tests {
		assert.Equal(t, v.expected, iooverlay.UnionTable(v.dataset), v.msg)
	}
}

func TestOpenMissingWorkspace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	// sqlite creates files lazily; a directory path fails outright
	_, err := iooverlay.Open(t.TempDir()+"/no/such/dir/x.db", "")
	assert.Error(t, err)
}

func TestAOITotals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "LANDSCAPE_UNIT")
	require.NoError(t, err)
	defer ws.Close()

	total, parts, order, err := ws.AOITotals(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 1000.0, total, 1e-9)
	assert.Equal(t, []string{"North", "South"}, order)
	assert.InDelta(t, 600.0, parts["North"], 1e-9)
	assert.InDelta(t, 400.0, parts["South"], 1e-9)
}

func TestAOITotalsUnpartitioned(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "")
	require.NoError(t, err)
	defer ws.Close()

	total, parts, order, err := ws.AOITotals(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, total, 1e-9)
	assert.Empty(t, parts)
	assert.Empty(t, order)
}

func TestHasTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "")
	require.NoError(t, err)
	defer ws.Close()

	ctx := context.Background()
	ok, err := ws.HasTable(ctx, "union_streams")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ws.HasTable(ctx, "union_absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatasetSourceMissingTable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "")
	require.NoError(t, err)
	defer ws.Close()

	ds := schema.NewIndicatorDataset("Absent", "Cat", "Current")
	_, err = ws.DatasetSource(context.Background(), ds)
	assert.Error(t, err)
}

func TestDatasetSourceAggregation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "LANDSCAPE_UNIT")
	require.NoError(t, err)
	defer ws.Close()

	ds := schema.NewIndicatorDataset("Streams", "Water", "Current")
	ds.Geometry = schema.GeometryPolygon
	ds.SetUnitFields([]string{"UNIT_ID"}, []string{"UNIT_NAME"})
	ds.Attributes = []*schema.AttributeSchema{{Field: "STATUS", Label: "Status"}}

	ctx := context.Background()
	src, err := ws.DatasetSource(ctx, ds)
	require.NoError(t, err)

	overlapped, err := aggregate.Run(ctx, ds, src)
	require.NoError(t, err)
	assert.True(t, overlapped)

	overall := ds.Stats[schema.OverallPartition]
	require.NotNil(t, overall)

	s1 := overall.Units["S1"]
	require.NotNil(t, s1)
	// 50 ha overlapping, plus 30 ha outside the AOI and 5 ha of AOI
	// remainder in the unit
	assert.InDelta(t, 85.0, s1.TotalMeasure, 1e-9)
	assert.InDelta(t, 50.0, s1.OverlapMeasure, 1e-9)
	assert.Equal(t, "Protected", s1.Attrs["STATUS"])

	// partition split follows the AOI field
	require.NotNil(t, ds.Stats["North"])
	assert.InDelta(t, 50.0, ds.Stats["North"].Units["S1"].OverlapMeasure, 1e-9)
	require.NotNil(t, ds.Stats["South"])
	assert.InDelta(t, 10.0, ds.Stats["South"].Units["S2"].OverlapMeasure, 1e-9)
}

func TestDatasetSourceFilter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "")
	require.NoError(t, err)
	defer ws.Close()

	ds := schema.NewIndicatorDataset("Streams", "Water", "Current")
	ds.SetUnitFields([]string{"UNIT_ID"}, nil)
	ds.Filter = "STATUS = 'Managed'"

	ctx := context.Background()
	src, err := ws.DatasetSource(ctx, ds)
	require.NoError(t, err)

	_, err = aggregate.Run(ctx, ds, src)
	require.NoError(t, err)

	overall := ds.Stats[schema.OverallPartition]
	require.NotNil(t, overall)
	assert.NotContains(t, overall.Units, "S1")
	assert.Contains(t, overall.Units, "S2")
}

func TestDatasetSourceJoinFallback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	ws, err := iooverlay.Open(fixtureWorkspace(t), "")
	require.NoError(t, err)
	defer ws.Close()

	ds := schema.NewIndicatorDataset("Streams", "Water", "Current")
	ds.SetUnitFields([]string{"UNIT_ID"}, nil)
	ds.Join = &schema.JoinSpec{
		SourceField: "UNIT_ID",
		Table:       "jt_absent",
		TableField:  "UNIT_ID",
	}

	ctx := context.Background()
	src, err := ws.DatasetSource(ctx, ds)
	require.NoError(t, err)
	// a missing join table degrades to no join
	assert.Nil(t, ds.Join)

	_, err = aggregate.Run(ctx, ds, src)
	require.NoError(t, err)
}
