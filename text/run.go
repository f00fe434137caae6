package text

// Source is a styled character stream.
//
// Visit calls fn for each character in logical order with its logical index.
// Visiting stops early when fn returns false.
type Source interface {
	Visit(fn func(index int, style Style, r rune) bool)
}

// FontResolver chooses the shaping font for a character.
// Returning nil selects legacy rendering for that character.
type FontResolver interface {
	Resolve(style Style, r rune) Font
}

// FontResolverFunc adapts a function to FontResolver.
type FontResolverFunc func(style Style, r rune) Font

// Resolve calls f(style, r).
func (f FontResolverFunc) Resolve(style Style, r rune) Font {
	return f(style, r)
}

// StyledString is an in-memory Source with one Style per rune.
type StyledString struct {
	Runes  []rune
	Styles []Style
}

// NewStyledString returns a StyledString where every rune has the same style.
func NewStyledString(s string, style Style) StyledString {
	runes := []rune(s)
	styles := make([]Style, len(runes))
	for i := range styles {
		styles[i] = style
	}
	return StyledString{Runes: runes, Styles: styles}
}

// Append adds s with the given style and returns the extended string.
func (s StyledString) Append(str string, style Style) StyledString {
	for _, r := range str {
		s.Runes = append(s.Runes, r)
		s.Styles = append(s.Styles, style)
	}
	return s
}

// Len returns the number of runes.
func (s StyledString) Len() int {
	return len(s.Runes)
}

// Visit implements Source.
func (s StyledString) Visit(fn func(index int, style Style, r rune) bool) {
	for i, r := range s.Runes {
		var st Style
		if i < len(s.Styles) {
			st = s.Styles[i]
		}
		if !fn(i, st, r) {
			return
		}
	}
}

// Run is a maximal span of text sharing one style and one resolved font.
type Run struct {
	// Start is the logical index of the first character.
	Start int

	// Text holds the characters of the run.
	Text []rune

	// Style is the style of the first character.
	Style Style

	// Font is the resolved font, or nil for legacy rendering.
	Font Font
}

// Len returns the number of characters in the run.
func (r *Run) Len() int {
	return len(r.Text)
}

// End returns the logical index just past the run.
func (r *Run) End() int {
	return r.Start + len(r.Text)
}

// SplitRuns splits src into maximal runs sharing shaping flags and font.
// An empty source yields an empty slice.
func SplitRuns(src Source, resolver FontResolver) []Run {
	var runs []Run
	src.Visit(func(index int, style Style, r rune) bool {
		var f Font
		if resolver != nil {
			f = resolver.Resolve(style, r)
		}
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Font == f && last.Style.ShapesLike(style) {
				last.Text = append(last.Text, r)
				return true
			}
		}
		runs = append(runs, Run{
			Start: index,
			Text:  []rune{r},
			Style: style,
			Font:  f,
		})
		return true
	})
	return runs
}

// concatRuns joins the text of runs.
func concatRuns(runs []Run) []rune {
	n := 0
	for i := range runs {
		n += len(runs[i].Text)
	}
	out := make([]rune, 0, n)
	for i := range runs {
		out = append(out, runs[i].Text...)
	}
	return out
}
