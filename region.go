package sidecut

// Region is a maximal run of consecutive segments sharing one curvature sign.
type Region struct {
	Index int
	Sign  Sign
	// Concatenated samples of the member segments, ordered by x. Samples at
	// segment junctions appear once per segment.
	X      []float64
	Radius []float64
	// Record indices (x order) of the member segments.
	Segments []int
}

// Segmentation is the result of [Segment]. It keeps the per-segment view for
// callers that want one curve per input segment rather than one per region.
type Segmentation struct {
	Regions  []Region
	Segments []SegmentRecord
}

// Segment groups x-ordered segment records into regions of consistent
// curvature sign. A new region starts whenever a segment's sign differs from
// the running region's sign.
func Segment(records []SegmentRecord) Segmentation {
	out := Segmentation{Segments: records}
	var cur *Region
	for i, rec := range records {
		if cur == nil || rec.Sign != cur.Sign {
			out.Regions = append(out.Regions, Region{
				Index: len(out.Regions),
				Sign:  rec.Sign,
			})
			cur = &out.Regions[len(out.Regions)-1]
		}
		cur.X = append(cur.X, rec.X...)
		cur.Radius = append(cur.Radius, rec.Radius...)
		cur.Segments = append(cur.Segments, i)
	}
	return out
}

// Len returns the total number of samples across all regions.
func (s Segmentation) Len() int {
	n := 0
	for _, r := range s.Regions {
		n += len(r.X)
	}
	return n
}
