package text

// GlyphID is a unique identifier for a glyph within a font.
// The glyph ID is assigned by the font file and is font-specific.
type GlyphID uint32

// glyphStride is the number of int32 fields per glyph record.
const glyphStride = 7

// Field offsets inside a glyph record.
const (
	fieldGlyph = iota
	fieldUnsafe
	fieldCluster
	fieldXAdvance
	fieldYAdvance
	fieldXOffset
	fieldYOffset
)

// GlyphRecord is the unpacked form of one shaped glyph.
// Advances and offsets are in shaping units; multiply by Font.Scale for pixels.
type GlyphRecord struct {
	GID GlyphID

	// UnsafeToBreak marks a glyph whose cluster must not be split when re-shaping.
	UnsafeToBreak bool

	// Cluster is the index of the first character of the glyph's cluster,
	// relative to the shaped substring.
	Cluster int

	XAdvance int32
	YAdvance int32
	XOffset  int32
	YOffset  int32
}

// ShapingResult is the immutable output of shaping one substring in one direction.
// Glyphs are stored in visual order.
type ShapingResult struct {
	data        []int32
	clusterEnds []int
	totalWidth  int32
	totalLength int
	rtl         bool
}

// NewShapingResult packs glyph records into a ShapingResult.
// totalLength is the number of characters the substring covers.
func NewShapingResult(glyphs []GlyphRecord, totalLength int, rtl bool) *ShapingResult {
	data := make([]int32, 0, len(glyphs)*glyphStride)
	for _, g := range glyphs {
		unsafe := int32(0)
		if g.UnsafeToBreak {
			unsafe = 1
		}
		data = append(data,
			int32(g.GID), //nolint:gosec // glyph ids fit in 31 bits for real fonts
			unsafe,
			int32(g.Cluster), //nolint:gosec // cluster indices are bounded by the substring length
			g.XAdvance, g.YAdvance, g.XOffset, g.YOffset)
	}
	r, _ := NewShapingResultData(data, totalLength, rtl)
	return r
}

// NewShapingResultData wraps packed glyph data (7 int32 fields per glyph:
// id, unsafe flag, cluster, x advance, y advance, x offset, y offset).
// The slice is retained and must not be modified afterwards.
func NewShapingResultData(data []int32, totalLength int, rtl bool) (*ShapingResult, error) {
	if len(data)%glyphStride != 0 {
		return nil, ErrMalformedResult
	}
	r := &ShapingResult{
		data:        data,
		totalLength: totalLength,
		rtl:         rtl,
	}
	for i := 0; i < len(data); i += glyphStride {
		r.totalWidth += data[i+fieldXAdvance]
	}
	r.clusterEnds = r.computeClusterEnds()
	return r, nil
}

// computeClusterEnds finds, for every glyph, the logical index just past its cluster.
// Clusters grow in visual order for LTR and shrink for RTL, so the end of a
// cluster is the cluster of the nearest differing neighbour on the logical-forward side.
func (r *ShapingResult) computeClusterEnds() []int {
	n := r.NumGlyphs()
	ends := make([]int, n)
	next := r.totalLength
	if r.rtl {
		for i := 0; i < n; i++ {
			c := r.Cluster(i)
			if i > 0 && r.Cluster(i-1) != c {
				next = r.Cluster(i - 1)
			}
			ends[i] = next
		}
		return ends
	}
	for i := n - 1; i >= 0; i-- {
		c := r.Cluster(i)
		if i < n-1 && r.Cluster(i+1) != c {
			next = r.Cluster(i + 1)
		}
		ends[i] = next
	}
	return ends
}

// NumGlyphs returns the number of glyphs.
func (r *ShapingResult) NumGlyphs() int {
	return len(r.data) / glyphStride
}

// Glyph unpacks the i-th glyph in visual order.
func (r *ShapingResult) Glyph(i int) GlyphRecord {
	d := r.data[i*glyphStride : (i+1)*glyphStride]
	return GlyphRecord{
		GID:           GlyphID(d[fieldGlyph]), //nolint:gosec // stored from a GlyphID
		UnsafeToBreak: d[fieldUnsafe] != 0,
		Cluster:       int(d[fieldCluster]),
		XAdvance:      d[fieldXAdvance],
		YAdvance:      d[fieldYAdvance],
		XOffset:       d[fieldXOffset],
		YOffset:       d[fieldYOffset],
	}
}

// Cluster returns the cluster index of the i-th glyph.
func (r *ShapingResult) Cluster(i int) int {
	return int(r.data[i*glyphStride+fieldCluster])
}

// ClusterEnd returns the index just past the cluster of the i-th glyph.
func (r *ShapingResult) ClusterEnd(i int) int {
	return r.clusterEnds[i]
}

// XAdvance returns the horizontal advance of the i-th glyph in shaping units.
func (r *ShapingResult) XAdvance(i int) int32 {
	return r.data[i*glyphStride+fieldXAdvance]
}

// UnsafeToBreak reports whether the i-th glyph is unsafe to break around.
func (r *ShapingResult) UnsafeToBreak(i int) bool {
	return r.data[i*glyphStride+fieldUnsafe] != 0
}

// TotalWidth returns the sum of x advances in shaping units.
func (r *ShapingResult) TotalWidth() int32 {
	return r.totalWidth
}

// TotalLength returns the number of characters covered.
func (r *ShapingResult) TotalLength() int {
	return r.totalLength
}

// RTL reports whether the substring was shaped right-to-left.
func (r *ShapingResult) RTL() bool {
	return r.rtl
}
