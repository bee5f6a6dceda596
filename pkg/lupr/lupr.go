// Package lupr provides the top-level interfaces and version metadata
// of the lup-interest-reporting application.
package lupr

import (
	"context"
)

var (
	// Version is set by build flags.
	Version = "v0.1.0"
	// Build is set by build flags.
	Build = "n/a"
)

// Reporter runs the complete overlap assessment: schema load, dataset
// resolution, aggregation and report writing. The run is synchronous;
// per-dataset problems are recovered with warnings, schema problems
// abort before any output exists.
type Reporter interface {
	// Run produces the report workbook and returns its path.
	Run(ctx context.Context) (string, error)
}
