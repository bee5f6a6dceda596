// Package iocatalog resolves indicator dataset paths. A path from the
// schema workbook is first checked locally; paths that do not exist
// are looked up in catalog.yaml, which stands in for a direct
// corporate warehouse connection. Datasets that resolve nowhere are
// excluded from the run with a warning.
package iocatalog

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the parsed catalog.yaml.
type Catalog struct {
	Sources []SourceEntry `yaml:"sources"`
}

// SourceEntry maps a schema PATH value to a resolvable location.
type SourceEntry struct {
	// Path is the value of the PATH column in the Indicators sheet.
	Path string `yaml:"path"`

	// Location is where the dataset actually lives.
	Location string `yaml:"location"`
}

// Resolver checks dataset paths against the local file system and the
// fallback catalog.
type Resolver struct {
	catalog *Catalog
}

// New loads catalog.yaml and returns a Resolver. A missing catalog
// file is not an error: resolution then relies on local paths only.
func New(catalogPath string) (*Resolver, error) {
	res := &Resolver{catalog: &Catalog{}}

	data, err := os.ReadFile(catalogPath)
	if os.IsNotExist(err) {
		return res, nil
	}
	if err != nil {
		return nil, CatalogReadError(catalogPath, err)
	}

	if err = yaml.Unmarshal(data, res.catalog); err != nil {
		return nil, CatalogParseError(catalogPath, err)
	}
	return res, nil
}

// Resolve returns the resolved location for a dataset path and whether
// resolution succeeded.
func (r *Resolver) Resolve(path string) (string, bool) {
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	for _, src := range r.catalog.Sources {
		if src.Path == path {
			return src.Location, true
		}
	}
	return "", false
}
