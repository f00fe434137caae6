package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LegacyMetrics measures characters that have no shaping font.
type LegacyMetrics interface {
	Advance(r rune, style Style) float64
}

// BitmapMetrics measures legacy text with a fixed bitmap face.
// Bold text is one BoldOffset wider per character, as the bitmap is drawn twice.
type BitmapMetrics struct {
	Face       font.Face
	BoldOffset float64
}

// NewBitmapMetrics returns BitmapMetrics over basicfont.Face7x13.
func NewBitmapMetrics() *BitmapMetrics {
	return &BitmapMetrics{
		Face:       basicfont.Face7x13,
		BoldOffset: 1,
	}
}

// Advance implements LegacyMetrics.
func (m *BitmapMetrics) Advance(r rune, style Style) float64 {
	adv, ok := m.Face.GlyphAdvance(r)
	if !ok {
		adv, _ = m.Face.GlyphAdvance('?')
	}
	w := fixedToFloat(adv)
	if style.Bold {
		w += m.BoldOffset
	}
	return w
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
