// Package text implements the layout core of textlayout: run splitting,
// run groups, bidirectional reordering, shaping results and the queries
// built on them.
//
// The layout pipeline follows a separation of concerns:
//
//   - Source and FontResolver: styled characters and the font each one uses
//   - Run: a maximal span sharing style and font
//   - RunGroup: adjacent runs sharing a font, split into bidi sub-runs
//   - Shaper: pluggable shaping backend (default: go-text/typesetting HarfBuzz)
//   - ShapedText: the groups of a paragraph in visual order
//
// Characters whose font resolves to nil are measured with LegacyMetrics
// instead of being shaped.
//
// # Example usage
//
//	f, err := text.ParseGoTextFont("Go Regular", goregular.TTF, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	runs := text.SplitRuns(text.NewStyledString("abc אבג", text.Style{}),
//	    text.FontResolverFunc(func(text.Style, rune) text.Font { return f }))
//
//	b := text.Builder{
//	    Analyzer: text.UnicodeBidi{},
//	    Shaping:  cache.New(text.NewGoTextShaper()),
//	    Legacy:   text.NewBitmapMetrics(),
//	}
//	shaped, err := b.Build(runs, text.DirectionAuto)
//
//	width := shaped.Width()
//	index := shaped.CharIndexAtX(42, -1)
//	x, err := shaped.OffsetAtIndex(index, text.DirectionSettingAuto)
//
// # Indices
//
// All indices are logical character (rune) indices into the paragraph.
// Query methods return an *IndexError for indices outside [0, Len].
//
// # Wrapping
//
// LineWrapper breaks a paragraph at the opportunities reported by a
// BreakIterator. UAXBreaks follows Unicode line breaking (UAX #14) via the
// go-text segmenter.
package text
