package text

// testFont is a comparable Font with a configurable scale.
type testFont struct {
	name  string
	scale float64
}

func (f *testFont) Name() string { return f.name }

func (f *testFont) Scale() float64 {
	if f.scale == 0 {
		return 1
	}
	return f.scale
}

// fakeShaper emits one glyph per character with a fixed advance, except
// that "fi" becomes a single ligature glyph when ligatures is set.
// RTL runs are emitted in reverse, like a real shaper.
type fakeShaper struct {
	advance   int32
	ligatures bool
	calls     int
}

func (s *fakeShaper) Shape(_ Font, text []rune, runs []BidiRun) ([]*ShapingResult, error) {
	s.calls++
	adv := s.advance
	if adv == 0 {
		adv = 10
	}
	out := make([]*ShapingResult, len(runs))
	for i, r := range runs {
		sub := text[r.Start:r.End]
		var glyphs []GlyphRecord
		for k := 0; k < len(sub); k++ {
			if s.ligatures && k+1 < len(sub) && sub[k] == 'f' && sub[k+1] == 'i' {
				glyphs = append(glyphs, GlyphRecord{GID: 0xFB01, Cluster: k, XAdvance: adv * 3 / 2})
				k++
				continue
			}
			glyphs = append(glyphs, GlyphRecord{GID: GlyphID(sub[k]), Cluster: k, XAdvance: adv})
		}
		rtl := r.Level.IsRTL()
		if rtl {
			for a, b := 0, len(glyphs)-1; a < b; a, b = a+1, b-1 {
				glyphs[a], glyphs[b] = glyphs[b], glyphs[a]
			}
		}
		out[i] = NewShapingResult(glyphs, len(sub), rtl)
	}
	return out, nil
}

// shaperProvider adapts a Shaper to ShapingProvider without memoization.
type shaperProvider struct {
	shaper Shaper
}

func (p shaperProvider) Get(font Font, text string, rtl bool) (*ShapingResult, error) {
	return ShapeString(p.shaper, font, text, rtl)
}

// fixedMetrics gives every legacy character the same advance, plus one for bold.
type fixedMetrics float64

func (m fixedMetrics) Advance(_ rune, style Style) float64 {
	if style.Bold {
		return float64(m) + 1
	}
	return float64(m)
}

// fakeAnalyzer returns preset bidi runs and the real visual reordering.
type fakeAnalyzer struct {
	level Level
	runs  []BidiRun
	err   error
}

func (a fakeAnalyzer) Analyze([]rune, Direction) (Level, []BidiRun, error) {
	return a.level, a.runs, a.err
}

func (fakeAnalyzer) VisualOrder(levels []Level) []int {
	return ReorderVisual(levels)
}

// layout builds a ShapedText for s with the given resolver, a fakeShaper
// with advance 10 and legacy advance 6.
func layout(s string, resolver FontResolver, base Direction) (*ShapedText, error) {
	b := Builder{
		Shaping: shaperProvider{shaper: &fakeShaper{}},
		Legacy:  fixedMetrics(6),
	}
	return b.Build(SplitRuns(NewStyledString(s, Style{}), resolver), base)
}

func singleFont(f Font) FontResolver {
	return FontResolverFunc(func(Style, rune) Font { return f })
}
