package schema

import "strings"

// GeometryKind determines a dataset's unit of measure and which ratio
// columns are meaningful in the report.
type GeometryKind int

const (
	GeometryUnknown GeometryKind = iota
	GeometryPolygon
	GeometryLine
	GeometryPoint
)

// ParseGeometryKind reads the GEOMETRY_TYPE schema column. Unknown or
// empty values default to polygon, the dominant case.
func ParseGeometryKind(s string) GeometryKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "polygon", "multipolygon":
		return GeometryPolygon
	case "line", "polyline", "linestring":
		return GeometryLine
	case "point", "multipoint":
		return GeometryPoint
	case "":
		return GeometryPolygon
	}
	return GeometryUnknown
}

// MeasureNoun is the wording used in column headers for the kind's
// measure.
func (g GeometryKind) MeasureNoun() string {
	switch g {
	case GeometryLine:
		return "Length (m)"
	case GeometryPoint:
		return "Count"
	default:
		return "Area (ha)"
	}
}

// HasAOIRatio reports whether "% of AOI" is defined for the kind.
// An area-based AOI percentage is meaningless for lines and points.
func (g GeometryKind) HasAOIRatio() bool {
	return g == GeometryPolygon || g == GeometryUnknown
}

func (g GeometryKind) String() string {
	switch g {
	case GeometryPolygon:
		return "polygon"
	case GeometryLine:
		return "line"
	case GeometryPoint:
		return "point"
	}
	return "unknown"
}
