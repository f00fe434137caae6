package text

import (
	"errors"
	"strconv"
)

// Sentinel errors for text package.
var (
	// ErrEmptyGroup is returned when a RunGroup is built from no runs.
	ErrEmptyGroup = errors.New("text: run group must contain at least one run")

	// ErrMixedFonts is returned when the runs of a RunGroup resolve to different fonts.
	ErrMixedFonts = errors.New("text: run group mixes fonts")

	// ErrBidiPartition is returned when bidi runs do not exactly cover a RunGroup.
	ErrBidiPartition = errors.New("text: bidi runs do not partition the group")

	// ErrMalformedResult is returned when shaping data is not a whole number of glyph records.
	ErrMalformedResult = errors.New("text: malformed shaping result data")

	// ErrResultCount is returned when a Shaper returns a different number of results than runs.
	ErrResultCount = errors.New("text: shaper returned wrong number of results")

	// ErrInvalidRange is returned when a range has start > end.
	ErrInvalidRange = errors.New("text: range start is after end")

	// ErrNoShapingProvider is returned when a font group is built without a shaping provider.
	ErrNoShapingProvider = errors.New("text: no shaping provider for shaped font")

	// ErrNoLegacyMetrics is returned when a legacy group is measured without legacy metrics.
	ErrNoLegacyMetrics = errors.New("text: no legacy metrics for unshaped text")

	// ErrUnsupportedFont is returned when a Shaper is given a Font it cannot shape with.
	ErrUnsupportedFont = errors.New("text: unsupported font type")
)

// IndexError is returned when a query index lies outside the text.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return "text: index " + strconv.Itoa(e.Index) + " out of range [0, " + strconv.Itoa(e.Len) + "]"
}
