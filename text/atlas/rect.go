package atlas

// Bit widths of the packed rectangle fields.
const (
	coordBits = 12
	pageBits  = 16

	// MaxCoord is the largest x, y, width or height a packed rect can hold.
	MaxCoord = 1<<coordBits - 1

	// MaxPage is the largest page index a packed rect can hold.
	MaxPage = 1<<pageBits - 1
)

// Field shifts, from least significant: x, y, width, height, page.
const (
	shiftX    = 0
	shiftY    = shiftX + coordBits
	shiftW    = shiftY + coordBits
	shiftH    = shiftW + coordBits
	shiftPage = shiftH + coordBits
)

// Rect locates a glyph on an atlas page, in pixels.
type Rect struct {
	X, Y          int
	Width, Height int
	Page          int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Encode packs r into a single integer. Every field is validated against
// its bit width before packing.
func Encode(r Rect) (uint64, error) {
	fields := [...]struct {
		name  string
		value int
		max   int
	}{
		{"X", r.X, MaxCoord},
		{"Y", r.Y, MaxCoord},
		{"Width", r.Width, MaxCoord},
		{"Height", r.Height, MaxCoord},
		{"Page", r.Page, MaxPage},
	}
	for _, f := range fields {
		if f.value < 0 || f.value > f.max {
			return 0, &FieldError{Field: f.name, Value: f.value, Max: f.max}
		}
	}
	return uint64(r.X)<<shiftX |
		uint64(r.Y)<<shiftY |
		uint64(r.Width)<<shiftW |
		uint64(r.Height)<<shiftH |
		uint64(r.Page)<<shiftPage, nil
}

// Decode unpacks a value produced by Encode.
func Decode(v uint64) Rect {
	const coordMask = MaxCoord
	return Rect{
		X:      int(v >> shiftX & coordMask),
		Y:      int(v >> shiftY & coordMask),
		Width:  int(v >> shiftW & coordMask),
		Height: int(v >> shiftH & coordMask),
		Page:   int(v >> shiftPage & MaxPage),
	}
}
