package text

// Shaper converts text to shaped glyph runs.
//
// Shape returns one result per input run, in input order. Each result covers
// text[run.Start:run.End], has cluster indices relative to run.Start and
// stores its glyphs in the run's visual order.
type Shaper interface {
	Shape(font Font, text []rune, runs []BidiRun) ([]*ShapingResult, error)
}

// ShapingProvider returns the shaping result for a substring in one direction.
// cache.ShapingCache is the usual implementation.
type ShapingProvider interface {
	Get(font Font, text string, rtl bool) (*ShapingResult, error)
}

// ShapeString shapes a whole string as a single run with the given direction.
func ShapeString(s Shaper, font Font, str string, rtl bool) (*ShapingResult, error) {
	runes := []rune(str)
	level := Level(0)
	if rtl {
		level = 1
	}
	results, err := s.Shape(font, runes, []BidiRun{{Start: 0, End: len(runes), Level: level}})
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, ErrResultCount
	}
	return results[0], nil
}
