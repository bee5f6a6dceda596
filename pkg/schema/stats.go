package schema

// PartitionStats accumulates measures for one AOI partition: either the
// reserved Overall bucket or one value of the AOI partition field.
type PartitionStats struct {
	// TotalMeasure is the running AOI-side accumulation across the
	// whole partition, independent of per-unit intersection.
	TotalMeasure float64

	// Units maps unit key to its stats. unitOrder preserves first-seen
	// order for stable report layout.
	Units     map[string]*UnitStats
	unitOrder []string
}

// UnitStats accumulates measures for one assessment unit within a
// partition.
type UnitStats struct {
	// Name is the human-readable unit name built from label fields.
	Name string

	// TotalMeasure is the measure of the unit regardless of AOI overlap.
	TotalMeasure float64

	// OverlapMeasure is the measure of the portion inside the AOI.
	// For polygon and line geometry OverlapMeasure <= TotalMeasure;
	// point counts are independent integer tallies.
	OverlapMeasure float64

	// Attrs holds captured ancillary attribute values, last write wins.
	Attrs map[string]any
}

// Unit returns the stats for a unit key, creating it when absent.
func (p *PartitionStats) Unit(key string) *UnitStats {
	u, ok := p.Units[key]
	if !ok {
		u = &UnitStats{Attrs: make(map[string]any)}
		p.Units[key] = u
		p.unitOrder = append(p.unitOrder, key)
	}
	return u
}

// UnitKeys returns unit keys in first-seen order.
func (p *PartitionStats) UnitKeys() []string {
	return p.unitOrder
}
