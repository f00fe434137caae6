package atlas

import (
	"errors"
	"strconv"
)

// Sentinel errors for atlas package.
var (
	// ErrDuplicateGlyph is returned when a glyph id is inserted twice.
	ErrDuplicateGlyph = errors.New("atlas: duplicate glyph id")

	// ErrBuilt is returned when a Builder is used after Build.
	ErrBuilt = errors.New("atlas: builder already built")

	// ErrAllocationFailed is returned when a glyph does not fit even on a fresh page.
	ErrAllocationFailed = errors.New("atlas: failed to allocate glyph")
)

// SizeError is returned when a rectangle cannot fit on any page.
type SizeError struct {
	Width    int
	Height   int
	PageSize int
}

func (e *SizeError) Error() string {
	return "atlas: glyph size " + strconv.Itoa(e.Width) + "x" + strconv.Itoa(e.Height) +
		" does not fit page size " + strconv.Itoa(e.PageSize)
}

// FieldError is returned when a rectangle field exceeds its bit width.
type FieldError struct {
	Field string
	Value int
	Max   int
}

func (e *FieldError) Error() string {
	return "atlas: invalid rect." + e.Field + ": " + strconv.Itoa(e.Value) +
		" not in [0, " + strconv.Itoa(e.Max) + "]"
}
