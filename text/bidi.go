package text

import (
	"sort"

	"golang.org/x/text/unicode/bidi"
)

// BidiAnalyzer implements the Unicode bidirectional algorithm.
type BidiAnalyzer interface {
	// Analyze resolves the paragraph level and the logical-order bidi runs of text.
	Analyze(text []rune, base Direction) (Level, []BidiRun, error)

	// VisualOrder returns the permutation that lists items with the given
	// levels in visual left-to-right order: result[i] is the logical index
	// of the i-th visual item.
	VisualOrder(levels []Level) []int
}

// UnicodeBidi is a BidiAnalyzer backed by golang.org/x/text/unicode/bidi.
//
// x/text reports only run directions, so resolved levels are flattened to the
// paragraph level and the next level of the opposite parity. Levels two or
// more above the paragraph level are lost: numbers following right-to-left
// text in a left-to-right paragraph get level 0 instead of 2, so
// "abc אבג 123 def" displays the digits after the Hebrew word rather than
// before it.
type UnicodeBidi struct{}

// Analyze implements BidiAnalyzer.
//
// x/text handles a single paragraph, so the text is cut at paragraph
// separators, each piece analyzed on its own, and every separator given the
// paragraph level.
func (UnicodeBidi) Analyze(text []rune, base Direction) (Level, []BidiRun, error) {
	paraLevel := baseLevel(base)
	if base == DirectionAuto {
		paraLevel = firstStrongLevel(text)
	}
	if len(text) == 0 {
		return paraLevel, nil, nil
	}

	defaultDir := bidi.LeftToRight
	if paraLevel.IsRTL() {
		defaultDir = bidi.RightToLeft
	}

	runs := make([]BidiRun, 0, 4)
	start := 0
	for i, r := range text {
		props, _ := bidi.LookupRune(r)
		if props.Class() != bidi.B {
			continue
		}
		var err error
		if runs, err = analyzeParagraph(runs, text[start:i], start, paraLevel, defaultDir); err != nil {
			return 0, nil, err
		}
		runs = append(runs, BidiRun{Start: i, End: i + 1, Level: paraLevel})
		start = i + 1
	}
	runs, err := analyzeParagraph(runs, text[start:], start, paraLevel, defaultDir)
	if err != nil {
		return 0, nil, err
	}
	return paraLevel, mergeRuns(runs), nil
}

// analyzeParagraph appends the runs of one separator-free paragraph,
// shifted by offset.
func analyzeParagraph(runs []BidiRun, text []rune, offset int, paraLevel Level, dir bidi.Direction) ([]BidiRun, error) {
	if len(text) == 0 {
		return runs, nil
	}
	var p bidi.Paragraph
	if _, err := p.SetString(string(text), bidi.DefaultDirection(dir)); err != nil {
		return nil, err
	}
	ordering, err := p.Order()
	if err != nil {
		return nil, err
	}

	// run.Pos() returns RUNE indices (start, end inclusive), in logical order.
	first := len(runs)
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		if end >= len(text) {
			end = len(text) - 1
		}
		if start > end {
			continue
		}
		runs = append(runs, BidiRun{
			Start: offset + start,
			End:   offset + end + 1,
			Level: resolveLevel(paraLevel, run.Direction() == bidi.RightToLeft),
		})
	}
	added := runs[first:]
	sort.Slice(added, func(i, j int) bool { return added[i].Start < added[j].Start })
	return runs, nil
}

// firstStrongLevel returns 1 if the first strong character is right-to-left.
func firstStrongLevel(text []rune) Level {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.L:
			return 0
		case bidi.R, bidi.AL:
			return 1
		case bidi.B:
			return 0
		}
	}
	return 0
}

// VisualOrder implements BidiAnalyzer.
func (UnicodeBidi) VisualOrder(levels []Level) []int {
	return ReorderVisual(levels)
}

// baseLevel returns the paragraph level implied by a base direction.
func baseLevel(base Direction) Level {
	if base == DirectionRTL {
		return 1
	}
	return 0
}

// resolveLevel maps a run direction onto the lowest level of that parity
// that is not below the paragraph level.
func resolveLevel(para Level, rtl bool) Level {
	if rtl == para.IsRTL() {
		return para
	}
	return para + 1
}

// mergeRuns joins adjacent runs with equal levels.
func mergeRuns(runs []BidiRun) []BidiRun {
	if len(runs) < 2 {
		return runs
	}
	out := runs[:1]
	for _, r := range runs[1:] {
		last := &out[len(out)-1]
		if last.Level == r.Level && last.End == r.Start {
			last.End = r.End
			continue
		}
		out = append(out, r)
	}
	return out
}

// ReorderVisual computes the standard bidi visual reordering (UAX #9 rule L2):
// from the highest level down to the lowest odd level, every maximal sequence
// of items at that level or higher is reversed.
func ReorderVisual(levels []Level) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if len(levels) < 2 {
		return order
	}

	highest, lowestOdd := Level(0), Level(0xFF)
	for _, l := range levels {
		if l > highest {
			highest = l
		}
		if l.IsRTL() && l < lowestOdd {
			lowestOdd = l
		}
	}
	if lowestOdd == 0xFF {
		// No odd level: the visual order is the logical order.
		return order
	}

	for level := highest; level >= lowestOdd; level-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < level {
				i++
				continue
			}
			j := i + 1
			for j < len(order) && levels[order[j]] >= level {
				j++
			}
			reverseInts(order[i:j])
			i = j
		}
	}
	return order
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
