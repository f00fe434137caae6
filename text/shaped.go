package text

// VisualGlyph is one positioned glyph of a ShapedText in visual order.
// It is either a ShapedGlyph or a LegacyGlyph.
type VisualGlyph interface {
	visualGlyph()
}

// ShapedGlyph is a glyph produced by a Shaper.
type ShapedGlyph struct {
	// GID is the glyph index in Font.
	GID GlyphID

	// Font is the font the glyph belongs to.
	Font Font

	// X is the pen position of the glyph's left edge, in pixels.
	X float64

	// Advance is the scaled horizontal advance.
	Advance float64

	// XOffset and YOffset are scaled positioning adjustments.
	XOffset float64
	YOffset float64

	// Start and End bound the glyph's cluster in logical indices.
	Start int
	End   int

	// RTL reports the direction of the sub-run the glyph belongs to.
	RTL bool

	// UnsafeToBreak marks a glyph whose cluster must not be split.
	UnsafeToBreak bool
}

// LegacyGlyph is a character rendered without shaping.
type LegacyGlyph struct {
	Rune  rune
	Style Style

	// Index is the logical index of the character.
	Index int

	// X is the pen position of the glyph's left edge, in pixels.
	X float64

	// Advance is the legacy advance of the character.
	Advance float64

	// RTL reports the direction of the sub-run the character belongs to.
	RTL bool
}

func (ShapedGlyph) visualGlyph() {}
func (LegacyGlyph) visualGlyph() {}

// glyphCell is the geometry shared by both glyph kinds.
type glyphCell struct {
	left, right float64
	start, end  int
	rtl         bool
}

// cellOf extracts the geometry of a visual glyph.
func cellOf(g VisualGlyph) glyphCell {
	switch g := g.(type) {
	case ShapedGlyph:
		return glyphCell{left: g.X, right: g.X + g.Advance, start: g.Start, end: g.End, rtl: g.RTL}
	case LegacyGlyph:
		return glyphCell{left: g.X, right: g.X + g.Advance, start: g.Index, end: g.Index + 1, rtl: g.RTL}
	default:
		return glyphCell{}
	}
}
