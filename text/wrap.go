package text

import (
	"unicode"

	"github.com/go-text/typesetting/segmenter"
)

// BreakIterator yields line-break candidates in strictly increasing order.
// A candidate c allows a break before logical index c.
type BreakIterator interface {
	Next() (int, bool)
}

// SliceBreaks is a BreakIterator over a precomputed, increasing list.
type SliceBreaks struct {
	offsets []int
	pos     int
}

// NewSliceBreaks returns an iterator over offsets.
func NewSliceBreaks(offsets ...int) *SliceBreaks {
	return &SliceBreaks{offsets: offsets}
}

// Next implements BreakIterator.
func (s *SliceBreaks) Next() (int, bool) {
	if s.pos >= len(s.offsets) {
		return 0, false
	}
	s.pos++
	return s.offsets[s.pos-1], true
}

// UAXBreaks yields Unicode (UAX #14) line-break opportunities using
// github.com/go-text/typesetting/segmenter.
type UAXBreaks struct {
	seg  segmenter.Segmenter
	iter *segmenter.LineIterator
}

// NewUAXBreaks returns break candidates for text.
func NewUAXBreaks(text []rune) *UAXBreaks {
	b := &UAXBreaks{}
	b.seg.Init(text)
	b.iter = b.seg.LineIterator()
	return b
}

// Next implements BreakIterator.
func (b *UAXBreaks) Next() (int, bool) {
	if !b.iter.Next() {
		return 0, false
	}
	line := b.iter.Line()
	return line.Offset + len(line.Text), true
}

// WrapOptions configures a LineWrapper.
type WrapOptions struct {
	// KeepTrailingSpace keeps trailing whitespace inside Line.End, which
	// callers placing a caret after a word split rely on.
	KeepTrailingSpace bool
}

// Line is one wrapped line in logical indices.
type Line struct {
	// Start is the first character of the line.
	Start int

	// End is just past the last visible character, after trimming.
	End int

	// Next is where the following line starts.
	Next int

	// Hard reports whether the line was ended by a line feed.
	Hard bool
}

// LineWrapper breaks a paragraph into lines one at a time.
//
// It keeps a cursor into the text and into the break iterator, so lines can
// only be requested in order; there is no way to seek backwards.
type LineWrapper struct {
	text     []rune
	advances []float64
	breaks   BreakIterator
	maxWidth float64
	opts     WrapOptions

	lineStart int

	// pending is the next unconsumed break candidate.
	pending    int
	hasPending bool

	// lastBreak is the most recent candidate in the current line, or -1.
	lastBreak int
}

// NewLineWrapper returns a wrapper over text with a parallel advance table.
// Entries equal to NoWidth are skipped when measuring.
func NewLineWrapper(text []rune, advances []float64, breaks BreakIterator, maxWidth float64, opts WrapOptions) *LineWrapper {
	w := &LineWrapper{
		text:      text,
		advances:  advances,
		breaks:    breaks,
		maxWidth:  maxWidth,
		opts:      opts,
		lastBreak: -1,
	}
	w.pending, w.hasPending = breaks.Next()
	return w
}

// NewShapedTextWrapper returns a LineWrapper over a ShapedText using UAX #14
// break candidates.
func NewShapedTextWrapper(t *ShapedText, maxWidth float64, opts WrapOptions) *LineWrapper {
	text := t.Text()
	return NewLineWrapper(text, t.Advances(), NewUAXBreaks(text), maxWidth, opts)
}

// Done reports whether all text has been consumed.
func (w *LineWrapper) Done() bool {
	return w.lineStart >= len(w.text)
}

// consumeBreaks records every candidate at or before i as the latest break.
func (w *LineWrapper) consumeBreaks(i int) {
	for w.hasPending && w.pending <= i {
		if w.pending > w.lineStart {
			w.lastBreak = w.pending
		}
		w.pending, w.hasPending = w.breaks.Next()
	}
}

// skipBreaks drops every candidate at or before i without recording it.
func (w *LineWrapper) skipBreaks(i int) {
	for w.hasPending && w.pending <= i {
		w.pending, w.hasPending = w.breaks.Next()
	}
}

// NextLine returns the next line, or false when the text is exhausted.
func (w *LineWrapper) NextLine() (Line, bool) {
	if w.Done() {
		return Line{}, false
	}

	start := w.lineStart
	budget := w.maxWidth
	w.lastBreak = -1
	end := len(w.text)
	hard := false

	for i := start; i < len(w.text); i++ {
		w.consumeBreaks(i)

		if w.text[i] == '\n' {
			end = i + 1
			hard = true
			w.skipBreaks(end)
			break
		}

		adv := w.advanceAt(i)
		if adv == NoWidth {
			continue
		}
		budget -= adv
		// Whitespace hangs past the end; only a visible character overflows.
		if budget < 0 && !isTrimmable(w.text[i]) {
			switch {
			case w.lastBreak > start:
				end = w.lastBreak
			case i > start:
				end = i
			default:
				end = start + 1
			}
			break
		}
	}

	w.lineStart = end
	w.lastBreak = -1

	visible := end
	if hard {
		visible--
	}
	if !w.opts.KeepTrailingSpace {
		for visible > start && isTrimmable(w.text[visible-1]) {
			visible--
		}
	}
	return Line{Start: start, End: visible, Next: end, Hard: hard}, true
}

// advanceAt returns the advance of character i.
func (w *LineWrapper) advanceAt(i int) float64 {
	if i >= len(w.advances) {
		return NoWidth
	}
	return w.advances[i]
}

// isTrimmable reports whether r is trailing whitespace that can hang past the line end.
func isTrimmable(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

// Lines drives w until the text is exhausted.
func (w *LineWrapper) Lines() []Line {
	var lines []Line
	for {
		l, ok := w.NextLine()
		if !ok {
			return lines
		}
		lines = append(lines, l)
	}
}
