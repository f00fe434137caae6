package text

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// GoTextFont is a Font backed by an OpenType/TrueType file parsed with
// go-text/typesetting.
//
// Shaping happens at the font's design size, so results are in font units
// and Scale converts them to pixels at the requested size.
type GoTextFont struct {
	name string
	face *font.Face
	size float64
	upem float64
}

// ParseGoTextFont parses TTF/OTF data and returns a font rendered at size pixels.
func ParseGoTextFont(name string, data []byte, size float64) (*GoTextFont, error) {
	if size <= 0 {
		return nil, fmt.Errorf("text: invalid font size %v", size)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font %q: %w", name, err)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &GoTextFont{name: name, face: face, size: size, upem: upem}, nil
}

// Name implements Font.
func (f *GoTextFont) Name() string {
	return f.name
}

// Scale implements Font.
func (f *GoTextFont) Scale() float64 {
	return f.size / f.upem
}

// Size returns the pixel size the font was created with.
func (f *GoTextFont) Size() float64 {
	return f.size
}

// Upem returns the font's units per em.
func (f *GoTextFont) Upem() float64 {
	return f.upem
}

// WithSize returns a font sharing the parsed data at a different pixel size.
func (f *GoTextFont) WithSize(size float64) *GoTextFont {
	c := *f
	c.size = size
	return &c
}

// HasGlyph reports whether the font maps r to a glyph.
func (f *GoTextFont) HasGlyph(r rune) bool {
	_, ok := f.face.NominalGlyph(r)
	return ok
}

// GoTextShaper shapes text with the HarfBuzz port in go-text/typesetting.
//
// The HarfbuzzShaper instances are pooled via sync.Pool since they are not
// safe for concurrent use.
type GoTextShaper struct {
	shaperPool sync.Pool

	// Language is passed to the shaper. Defaults to English.
	Language language.Language
}

// NewGoTextShaper creates a new GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		Language: language.NewLanguage("en"),
	}
}

// Shape implements Shaper. It returns one result per run, in order.
func (s *GoTextShaper) Shape(f Font, text []rune, runs []BidiRun) ([]*ShapingResult, error) {
	gf, ok := f.(*GoTextFont)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedFont, f)
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer s.shaperPool.Put(hb)

	results := make([]*ShapingResult, 0, len(runs))
	for _, r := range runs {
		if r.Start < 0 || r.End > len(text) || r.Start > r.End {
			return nil, &IndexError{Index: r.End, Len: len(text)}
		}
		rtl := r.Level.IsRTL()
		if r.Len() == 0 {
			results = append(results, NewShapingResult(nil, 0, rtl))
			continue
		}
		dir := di.DirectionLTR
		if rtl {
			dir = di.DirectionRTL
		}
		input := shaping.Input{
			Text:      text,
			RunStart:  r.Start,
			RunEnd:    r.End,
			Direction: dir,
			Face:      gf.face,
			Size:      floatToFixed(gf.upem),
			Script:    detectScript(text[r.Start:r.End]),
			Language:  s.Language,
		}
		out := hb.Shape(input)
		results = append(results, NewShapingResult(convertGlyphs(out.Glyphs, r.Start), r.Len(), rtl))
	}
	return results, nil
}

// detectScript returns the script of the first character with a real
// script, falling back to Latin.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		sc := language.LookupScript(r)
		if sc != language.Common && sc != language.Inherited && sc != language.Unknown {
			return sc
		}
	}
	return language.Latin
}

// convertGlyphs converts go-text glyphs (visual order, absolute text
// indices) into run-relative glyph records in font units.
func convertGlyphs(glyphs []shaping.Glyph, runStart int) []GlyphRecord {
	if len(glyphs) == 0 {
		return nil
	}
	out := make([]GlyphRecord, len(glyphs))
	for i, g := range glyphs {
		out[i] = GlyphRecord{
			GID:      GlyphID(g.GlyphID),
			Cluster:  g.TextIndex() - runStart,
			XAdvance: fixedUnits(fixedToFloat(g.Advance)),
			XOffset:  fixedUnits(fixedToFloat(g.XOffset)),
			YOffset:  fixedUnits(fixedToFloat(g.YOffset)),
		}
	}
	// A cluster spread over several glyphs cannot be split.
	for i := range out {
		if i > 0 && out[i-1].Cluster == out[i].Cluster {
			out[i].UnsafeToBreak = true
			out[i-1].UnsafeToBreak = true
		}
	}
	return out
}

func fixedUnits(v float64) int32 {
	return int32(math.Round(v))
}
