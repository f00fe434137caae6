package text

import "math"

// NoWidth marks logical positions in an advance table that carry no advance
// of their own, such as the trailing characters of a multi-character cluster.
const NoWidth = -math.MaxFloat64

// ShapedText is a paragraph of run groups sorted into visual order.
// It is immutable once built.
type ShapedText struct {
	groups []*RunGroup
	length int
	level  Level
	legacy LegacyMetrics
}

// Groups returns the run groups in visual order.
func (t *ShapedText) Groups() []*RunGroup {
	return t.groups
}

// Len returns the total number of characters.
func (t *ShapedText) Len() int {
	return t.length
}

// Level returns the paragraph embedding level.
func (t *ShapedText) Level() Level {
	return t.level
}

// Direction returns the paragraph direction.
func (t *ShapedText) Direction() Direction {
	return t.level.Direction()
}

// Text returns the characters in logical order.
func (t *ShapedText) Text() []rune {
	out := make([]rune, t.length)
	for _, g := range t.groups {
		copy(out[g.charOffset:], g.text)
	}
	return out
}

// Width returns the total advance of the paragraph in pixels.
func (t *ShapedText) Width() float64 {
	var w float64
	for _, g := range t.groups {
		w += t.groupWidth(g)
	}
	return w
}

// legacyAdvances measures every character of a legacy group in logical order.
func (t *ShapedText) legacyAdvances(g *RunGroup) []float64 {
	advs := make([]float64, len(g.text))
	if t.legacy == nil {
		return advs
	}
	cur := styleCursor{runs: g.runs}
	for i, r := range g.text {
		advs[i] = t.legacy.Advance(r, cur.at(i))
	}
	return advs
}

// walkGroup visits the glyphs of one group in visual order with the pen
// starting at x. It returns the pen position after the group and whether
// the walk should continue.
func (t *ShapedText) walkGroup(g *RunGroup, x float64, fn func(VisualGlyph) bool) (float64, bool) {
	if g.font == nil {
		advs := t.legacyAdvances(g)
		for _, br := range g.bidiRuns {
			rtl := br.Level.IsRTL()
			for k := 0; k < br.Len(); k++ {
				i := br.Start + k
				if rtl {
					i = br.End - 1 - k
				}
				lg := LegacyGlyph{
					Rune:    g.text[i],
					Style:   g.styleAt(i),
					Index:   g.charOffset + i,
					X:       x,
					Advance: advs[i],
					RTL:     rtl,
				}
				x += advs[i]
				if !fn(lg) {
					return x, false
				}
			}
		}
		return x, true
	}

	scale := g.font.Scale()
	for ri, br := range g.bidiRuns {
		res := g.results[ri]
		base := g.charOffset + br.Start
		for k := 0; k < res.NumGlyphs(); k++ {
			rec := res.Glyph(k)
			adv := scale * float64(rec.XAdvance)
			sg := ShapedGlyph{
				GID:           rec.GID,
				Font:          g.font,
				X:             x,
				Advance:       adv,
				XOffset:       scale * float64(rec.XOffset),
				YOffset:       scale * float64(rec.YOffset),
				Start:         base + rec.Cluster,
				End:           base + res.ClusterEnd(k),
				RTL:           res.RTL(),
				UnsafeToBreak: rec.UnsafeToBreak,
			}
			x += adv
			if !fn(sg) {
				return x, false
			}
		}
	}
	return x, true
}

// VisualGlyphs returns every glyph of the paragraph in visual order.
func (t *ShapedText) VisualGlyphs() []VisualGlyph {
	var out []VisualGlyph
	x := 0.0
	for _, g := range t.groups {
		x, _ = t.walkGroup(g, x, func(vg VisualGlyph) bool {
			out = append(out, vg)
			return true
		})
	}
	return out
}

// Advances returns a per-logical-index advance table. The advance of a
// cluster is attributed to its first character; the remaining characters
// of the cluster hold NoWidth.
func (t *ShapedText) Advances() []float64 {
	table := make([]float64, t.length)
	for i := range table {
		table[i] = NoWidth
	}
	x := 0.0
	for _, g := range t.groups {
		x, _ = t.walkGroup(g, x, func(vg VisualGlyph) bool {
			c := cellOf(vg)
			if table[c.start] == NoWidth {
				table[c.start] = 0
			}
			table[c.start] += c.right - c.left
			return true
		})
	}
	return table
}

// CharIndexAtX returns the logical index of the first character that does
// not fit in width x when scanning visually from the group containing from.
// A negative from scans from the visual start. Groups that end at or before
// from logically are skipped wherever they sit visually. Len is returned if
// everything fits.
func (t *ShapedText) CharIndexAtX(x float64, from int) int {
	budget := x
	started := from < 0
	result := t.length
	for _, g := range t.groups {
		if from >= 0 && g.charOffset+g.Len() <= from {
			continue
		}
		startGroup := false
		if !started {
			if from < g.charOffset {
				continue
			}
			started, startGroup = true, true
		}
		_, cont := t.walkGroup(g, 0, func(vg VisualGlyph) bool {
			c := cellOf(vg)
			if startGroup && c.end <= from {
				return true
			}
			budget -= c.right - c.left
			if budget < 0 {
				result = c.start
				return false
			}
			return true
		})
		if !cont {
			return result
		}
	}
	return result
}

// OffsetAtIndex returns the horizontal offset of the edge of the glyph
// covering index. The setting selects which edge is reported. Indices
// without a covering glyph yield 0.
func (t *ShapedText) OffsetAtIndex(index int, setting DirectionSetting) (float64, error) {
	if index < 0 || index > t.length {
		return 0, &IndexError{Index: index, Len: t.length}
	}
	found := false
	left, right := math.Inf(1), math.Inf(-1)
	rtl := false
	x := 0.0
	for _, g := range t.groups {
		if index < g.charOffset || index >= g.charOffset+g.Len() {
			x += t.groupWidth(g)
			continue
		}
		t.walkGroup(g, x, func(vg VisualGlyph) bool {
			c := cellOf(vg)
			if c.start <= index && index < c.end {
				found = true
				rtl = c.rtl
				left = math.Min(left, c.left)
				right = math.Max(right, c.right)
			}
			return true
		})
		break
	}
	if !found {
		return 0, nil
	}
	if setting.rightEdge(rtl) {
		return right, nil
	}
	return left, nil
}

// groupWidth returns the total advance of one group.
func (t *ShapedText) groupWidth(g *RunGroup) float64 {
	if g.font == nil {
		var w float64
		for _, adv := range t.legacyAdvances(g) {
			w += adv
		}
		return w
	}
	var w float64
	scale := g.font.Scale()
	for _, res := range g.results {
		w += scale * float64(res.TotalWidth())
	}
	return w
}

// HighlightRanges calls fn with disjoint [left, right] pixel ranges, in
// left-to-right order, that together cover the logical span [start, end).
// A range never crosses a change of direction.
func (t *ShapedText) HighlightRanges(start, end int, fn func(left, right float64)) error {
	if start > end {
		return ErrInvalidRange
	}
	if start < 0 || start > t.length {
		return &IndexError{Index: start, Len: t.length}
	}
	if end > t.length {
		return &IndexError{Index: end, Len: t.length}
	}
	if start == end {
		return nil
	}

	open := false
	var curLeft, curRight float64
	var curRTL bool
	flush := func() {
		if open {
			fn(curLeft, curRight)
			open = false
		}
	}

	x := 0.0
	for _, g := range t.groups {
		if g.charOffset >= end || g.charOffset+g.Len() <= start {
			flush()
			x += t.groupWidth(g)
			continue
		}
		x, _ = t.walkGroup(g, x, func(vg VisualGlyph) bool {
			c := cellOf(vg)
			if c.start >= end || c.end <= start {
				flush()
				return true
			}
			if open && c.rtl == curRTL {
				curRight = c.right
				return true
			}
			flush()
			open, curLeft, curRight, curRTL = true, c.left, c.right, c.rtl
			return true
		})
	}
	flush()
	return nil
}
