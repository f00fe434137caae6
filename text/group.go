package text

// RunGroup is a sequence of style runs that resolve to the same font,
// carrying its own bidi sub-runs in visual order.
type RunGroup struct {
	runs       []Run
	text       []rune
	font       Font
	runLevel   Level
	charOffset int

	// bidiRuns are group-local and sorted into visual left-to-right order.
	bidiRuns []BidiRun

	// results holds one shaping result per entry of bidiRuns when font != nil.
	results []*ShapingResult
}

// NewRunGroup builds a RunGroup from logically ordered runs.
//
// bidiRuns must be group-local, already in visual order, and must exactly
// partition [0, length of the runs). runLevel is the level of the group's
// first logical sub-run.
func NewRunGroup(runs []Run, charOffset int, runLevel Level, bidiRuns []BidiRun) (*RunGroup, error) {
	if len(runs) == 0 {
		return nil, ErrEmptyGroup
	}
	f := runs[0].Font
	for i := 1; i < len(runs); i++ {
		if runs[i].Font != f {
			return nil, ErrMixedFonts
		}
	}
	text := concatRuns(runs)
	if !partitions(bidiRuns, len(text)) {
		return nil, ErrBidiPartition
	}
	return &RunGroup{
		runs:       runs,
		text:       text,
		font:       f,
		runLevel:   runLevel,
		charOffset: charOffset,
		bidiRuns:   bidiRuns,
	}, nil
}

// partitions reports whether runs cover [0, n) exactly once with non-empty spans.
func partitions(runs []BidiRun, n int) bool {
	if n == 0 {
		return false
	}
	covered := make([]bool, n)
	total := 0
	for _, r := range runs {
		if r.Start < 0 || r.End > n || r.Start >= r.End {
			return false
		}
		for i := r.Start; i < r.End; i++ {
			if covered[i] {
				return false
			}
			covered[i] = true
		}
		total += r.Len()
	}
	return total == n
}

// shape resolves one shaping result per visual sub-run.
func (g *RunGroup) shape(provider ShapingProvider) error {
	if g.font == nil {
		return nil
	}
	if provider == nil {
		return ErrNoShapingProvider
	}
	g.results = make([]*ShapingResult, len(g.bidiRuns))
	for i, br := range g.bidiRuns {
		res, err := provider.Get(g.font, string(g.text[br.Start:br.End]), br.Level.IsRTL())
		if err != nil {
			return err
		}
		g.results[i] = res
	}
	return nil
}

// Runs returns the style runs in logical order.
func (g *RunGroup) Runs() []Run {
	return g.runs
}

// Text returns the characters of the group in logical order.
func (g *RunGroup) Text() []rune {
	return g.text
}

// Font returns the group's font, or nil for legacy rendering.
func (g *RunGroup) Font() Font {
	return g.font
}

// Len returns the number of characters in the group.
func (g *RunGroup) Len() int {
	return len(g.text)
}

// RunLevel returns the bidi level of the group's first logical sub-run.
func (g *RunGroup) RunLevel() Level {
	return g.runLevel
}

// CharOffset returns the logical index of the group's first character.
func (g *RunGroup) CharOffset() int {
	return g.charOffset
}

// BidiRuns returns the group-local bidi sub-runs in visual order.
func (g *RunGroup) BidiRuns() []BidiRun {
	return g.bidiRuns
}

// Results returns the shaping results parallel to BidiRuns, or nil for legacy groups.
func (g *RunGroup) Results() []*ShapingResult {
	return g.results
}

// IsLegacy reports whether the group is rendered without shaping.
func (g *RunGroup) IsLegacy() bool {
	return g.font == nil
}

// styleAt returns the style of the group-local character i.
func (g *RunGroup) styleAt(i int) Style {
	for k := range g.runs {
		if i < g.runs[k].Len() {
			return g.runs[k].Style
		}
		i -= g.runs[k].Len()
	}
	return Style{}
}

// styleCursor walks the style of group-local characters in increasing order
// without rescanning runs from the start.
type styleCursor struct {
	runs []Run
	run  int
	base int
}

func (c *styleCursor) at(i int) Style {
	for c.run < len(c.runs)-1 && i >= c.base+c.runs[c.run].Len() {
		c.base += c.runs[c.run].Len()
		c.run++
	}
	return c.runs[c.run].Style
}
