package iocatalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GraydonShevchenko/lup-interest-reporting/internal/iocatalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewMissingCatalog(t *testing.T) {
	r, err := iocatalog.New(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NotNil(t, r)

	_, ok := r.Resolve("WHSE_BASEMAPPING.SOME_LAYER")
	assert.False(t, ok)
}

func TestNewBadYAML(t *testing.T) {
	path := writeCatalog(t, "sources: [unclosed")
	_, err := iocatalog.New(path)
	assert.Error(t, err)
}

func TestResolveLocalFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	local := filepath.Join(t.TempDir(), "layer.gpkg")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0644))

	// catalog maps the same path elsewhere; the local file must win
	path := writeCatalog(t,
		"sources:\n  - path: "+local+"\n    location: /elsewhere.gpkg\n")
	r, err := iocatalog.New(path)
	require.NoError(t, err)

	loc, ok := r.Resolve(local)
	require.True(t, ok)
	assert.Equal(t, local, loc)
}

func TestResolveViaCatalog(t *testing.T) {
	path := writeCatalog(t, `sources:
  - path: WHSE_BASEMAPPING.FWA_STREAM_NETWORKS_SP
    location: /data/warehouse/fwa_stream_networks.gpkg
`)
	r, err := iocatalog.New(path)
	require.NoError(t, err)

	loc, ok := r.Resolve("WHSE_BASEMAPPING.FWA_STREAM_NETWORKS_SP")
	require.True(t, ok)
	assert.Equal(t, "/data/warehouse/fwa_stream_networks.gpkg", loc)

	_, ok = r.Resolve("WHSE_BASEMAPPING.UNKNOWN")
	assert.False(t, ok)
}
