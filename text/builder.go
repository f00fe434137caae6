package text

import "log/slog"

// Builder turns style runs into a visually ordered ShapedText.
type Builder struct {
	// Analyzer resolves bidi runs. Defaults to UnicodeBidi when nil.
	Analyzer BidiAnalyzer

	// Shaping provides shaping results for groups with a font.
	Shaping ShapingProvider

	// Legacy measures groups without a font.
	Legacy LegacyMetrics

	// Log receives debug diagnostics. Nil discards them.
	Log *slog.Logger
}

// Build lays out runs (in logical order) for the given base direction.
//
// Runs are grouped by font, each group receives the bidi runs overlapping it
// clipped to its own coordinates and reordered visually, and finally the
// groups themselves are reordered by their run level.
func (b *Builder) Build(runs []Run, base Direction) (*ShapedText, error) {
	analyzer := b.Analyzer
	if analyzer == nil {
		analyzer = UnicodeBidi{}
	}

	text := concatRuns(runs)
	paraLevel, bidiRuns, err := analyzer.Analyze(text, base)
	if err != nil {
		return nil, err
	}

	st := &ShapedText{
		level:  paraLevel,
		legacy: b.Legacy,
	}
	if len(text) == 0 {
		return st, nil
	}

	groups := make([]*RunGroup, 0, 4)
	cursor := 0 // index into bidiRuns, only moves forward
	offset := 0

	for start := 0; start < len(runs); {
		end := start + 1
		for end < len(runs) && runs[end].Font == runs[start].Font {
			end++
		}
		groupRuns := runs[start:end]
		length := 0
		for i := range groupRuns {
			length += groupRuns[i].Len()
		}

		var clipped []BidiRun
		clipped, cursor = clipBidiRuns(bidiRuns, cursor, offset, offset+length)
		firstLevel := paraLevel
		if len(clipped) > 0 {
			firstLevel = clipped[0].Level
		}
		visual := reorderRuns(analyzer, clipped)

		g, err := NewRunGroup(groupRuns, offset, firstLevel, visual)
		if err != nil {
			return nil, err
		}
		if g.font == nil && b.Legacy == nil {
			return nil, ErrNoLegacyMetrics
		}
		if err := g.shape(b.Shaping); err != nil {
			return nil, err
		}
		groups = append(groups, g)

		offset += length
		start = end
	}

	levels := make([]Level, len(groups))
	for i, g := range groups {
		levels[i] = g.runLevel
	}
	perm := analyzer.VisualOrder(levels)
	st.groups = make([]*RunGroup, len(groups))
	for i, p := range perm {
		st.groups[i] = groups[p]
	}
	st.length = offset

	b.logger().Debug("text: built shaped text",
		"chars", st.length, "groups", len(groups), "bidiRuns", len(bidiRuns))
	return st, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Log == nil {
		return discardLogger
	}
	return b.Log
}

// clipBidiRuns returns the bidi runs overlapping [start, end), translated to
// group-local coordinates, together with the cursor to resume from for the
// next group. Runs clipping to zero length are skipped.
func clipBidiRuns(runs []BidiRun, cursor, start, end int) ([]BidiRun, int) {
	for cursor < len(runs) && runs[cursor].End <= start {
		cursor++
	}
	var out []BidiRun
	k := cursor
	for k < len(runs) && runs[k].Start < end {
		s := max(runs[k].Start, start)
		e := min(runs[k].End, end)
		if s < e {
			out = append(out, BidiRun{Start: s - start, End: e - start, Level: runs[k].Level})
		}
		if runs[k].End > end {
			// The run continues into the next group.
			break
		}
		k++
	}
	return out, k
}

// reorderRuns sorts logically ordered runs into visual order.
func reorderRuns(analyzer BidiAnalyzer, runs []BidiRun) []BidiRun {
	if len(runs) < 2 {
		return runs
	}
	levels := make([]Level, len(runs))
	for i, r := range runs {
		levels[i] = r.Level
	}
	perm := analyzer.VisualOrder(levels)
	out := make([]BidiRun, len(runs))
	for i, p := range perm {
		out[i] = runs[p]
	}
	return out
}
