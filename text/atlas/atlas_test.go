package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/textlayout/text"
)

func TestNewBuilder(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantSize int
		wantErr  bool
	}{
		{"default", 0, PageSize, false},
		{"small", 64, 64, false},
		{"max", MaxCoord + 1, MaxCoord + 1, false},
		{"too large", MaxCoord + 2, 0, true},
		{"negative", -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBuilder(tt.size)
			if tt.wantErr {
				var fe *FieldError
				if !errors.As(err, &fe) {
					t.Fatalf("NewBuilder(%d) error = %v, want *FieldError", tt.size, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewBuilder(%d): %v", tt.size, err)
			}
			if b.pageSize != tt.wantSize {
				t.Errorf("pageSize = %d, want %d", b.pageSize, tt.wantSize)
			}
		})
	}
}

func TestBuilder_FitsOnePage(t *testing.T) {
	b, _ := NewBuilder(64)

	// Sixteen 16x16 squares tile a 64x64 page exactly.
	seen := make(map[[2]int]bool)
	for id := 0; id < 16; id++ {
		r, err := b.Insert(text.GlyphID(id), 16, 16)
		if err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
		if r.Page != 0 {
			t.Fatalf("Insert(%d) went to page %d, want 0", id, r.Page)
		}
		pos := [2]int{r.X, r.Y}
		if seen[pos] {
			t.Fatalf("Insert(%d) reused position %v", id, pos)
		}
		seen[pos] = true
	}
	if b.NumPages() != 1 {
		t.Errorf("NumPages = %d, want 1", b.NumPages())
	}
	if got := b.Utilization(); got != 1 {
		t.Errorf("Utilization = %v, want 1", got)
	}

	// The page is full, so the next glyph opens a second page.
	r, err := b.Insert(99, 1, 1)
	if err != nil {
		t.Fatalf("Insert overflow: %v", err)
	}
	if r.Page != 1 || b.NumPages() != 2 {
		t.Errorf("overflow glyph page = %d, pages = %d, want 1 and 2", r.Page, b.NumPages())
	}
}

func TestBuilder_MixedSizesOnePage(t *testing.T) {
	b, _ := NewBuilder(PageSize)
	sizes := [][2]int{{300, 40}, {12, 900}, {1, 1}, {2000, 2000}, {64, 64}, {7, 13}}
	for i, s := range sizes {
		if _, err := b.Insert(text.GlyphID(i), s[0], s[1]); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	if b.NumPages() != 1 {
		t.Errorf("NumPages = %d, want 1", b.NumPages())
	}
	assertDisjoint(t, b)
}

func TestBuilder_CarveOrder(t *testing.T) {
	b, _ := NewBuilder(100)

	first, _ := b.Insert(1, 30, 20)
	if first != (Rect{X: 0, Y: 0, Width: 30, Height: 20}) {
		t.Fatalf("first = %+v, want origin", first)
	}
	// The right-hand leftover was pushed last, so it is tried first.
	second, _ := b.Insert(2, 10, 10)
	if second.X != 30 || second.Y != 0 {
		t.Errorf("second at (%d, %d), want (30, 0)", second.X, second.Y)
	}
	// Too tall for the right-hand strip, falls back to the area below.
	third, _ := b.Insert(3, 50, 50)
	if third.X != 0 || third.Y != 20 {
		t.Errorf("third at (%d, %d), want (0, 20)", third.X, third.Y)
	}
}

func TestBuilder_SizeErrors(t *testing.T) {
	b, _ := NewBuilder(64)
	tests := []struct {
		name string
		w, h int
	}{
		{"width equal", 64, 1},
		{"height equal", 1, 64},
		{"both over", 100, 100},
		{"negative", -1, 5},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Insert(text.GlyphID(i), tt.w, tt.h)
			var se *SizeError
			if !errors.As(err, &se) {
				t.Fatalf("Insert(%d, %d) error = %v, want *SizeError", tt.w, tt.h, err)
			}
			if se.PageSize != 64 {
				t.Errorf("PageSize = %d, want 64", se.PageSize)
			}
		})
	}
	if b.NumPages() != 0 {
		t.Errorf("rejected inserts allocated %d pages", b.NumPages())
	}

	if _, err := b.Insert(1, 63, 63); err != nil {
		t.Errorf("Insert(63, 63): %v", err)
	}
}

func TestBuilder_Duplicate(t *testing.T) {
	b, _ := NewBuilder(64)
	if _, err := b.Insert(7, 4, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Insert(7, 4, 4); !errors.Is(err, ErrDuplicateGlyph) {
		t.Errorf("duplicate Insert error = %v, want ErrDuplicateGlyph", err)
	}
}

func TestBuilder_InsertImage(t *testing.T) {
	b, _ := NewBuilder(32)

	glyph := image.NewAlpha(image.Rect(5, 5, 9, 8))
	for y := 5; y < 8; y++ {
		for x := 5; x < 9; x++ {
			glyph.SetAlpha(x, y, color.Alpha{A: 200})
		}
	}
	_, _ = b.Insert(1, 10, 10)
	r, err := b.InsertImage(2, glyph)
	if err != nil {
		t.Fatalf("InsertImage: %v", err)
	}
	if r.Width != 4 || r.Height != 3 {
		t.Fatalf("rect = %+v, want 4x3", r)
	}

	a := b.Build()
	page := a.Page(r.Page)
	if got := page.AlphaAt(r.X, r.Y).A; got != 200 {
		t.Errorf("page alpha at glyph origin = %d, want 200", got)
	}
	if got := page.AlphaAt(r.X+r.Width, r.Y).A; got != 0 {
		t.Errorf("page alpha right of glyph = %d, want 0", got)
	}

	sub, ok := a.SubImage(2)
	if !ok || sub.Bounds().Dx() != 4 || sub.Bounds().Dy() != 3 {
		t.Errorf("SubImage = %v, %v", sub, ok)
	}
}

func TestBuilder_Build(t *testing.T) {
	b, _ := NewBuilder(64)
	want, _ := b.Insert(3, 10, 12)
	a := b.Build()

	got, ok := a.Lookup(3)
	if !ok || got != want {
		t.Errorf("Lookup(3) = %+v, %v; want %+v", got, ok, want)
	}
	if _, ok := a.Lookup(4); ok {
		t.Error("Lookup(4) should miss")
	}
	if a.NumPages() != 1 || a.Len() != 1 || a.PageSize() != 64 {
		t.Errorf("atlas = %d pages, %d glyphs, size %d", a.NumPages(), a.Len(), a.PageSize())
	}
	if p := a.Page(0); p == nil || p.Bounds().Dx() != 64 {
		t.Error("Page(0) should be a blank 64x64 bitmap")
	}
	if a.Page(1) != nil {
		t.Error("Page(1) should be nil")
	}
	if _, err := b.Insert(5, 1, 1); !errors.Is(err, ErrBuilt) {
		t.Errorf("Insert after Build error = %v, want ErrBuilt", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	tests := []Rect{
		{},
		{X: 1, Y: 2, Width: 3, Height: 4, Page: 5},
		{X: MaxCoord, Y: MaxCoord, Width: MaxCoord, Height: MaxCoord, Page: MaxPage},
		{X: 4000, Y: 17, Width: 95, Height: 4095, Page: 300},
	}
	for _, r := range tests {
		v, err := Encode(r)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", r, err)
		}
		if got := Decode(v); got != r {
			t.Errorf("Decode(Encode(%+v)) = %+v", r, got)
		}
	}
}

func TestEncode_FieldBounds(t *testing.T) {
	tests := []struct {
		rect  Rect
		field string
	}{
		{Rect{X: MaxCoord + 1}, "X"},
		{Rect{Y: MaxCoord + 1}, "Y"},
		{Rect{Width: MaxCoord + 1}, "Width"},
		{Rect{Height: MaxCoord + 1}, "Height"},
		{Rect{Page: MaxPage + 1}, "Page"},
		{Rect{X: -1}, "X"},
	}
	for _, tt := range tests {
		_, err := Encode(tt.rect)
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Errorf("Encode(%+v) error = %v, want *FieldError", tt.rect, err)
			continue
		}
		if fe.Field != tt.field {
			t.Errorf("Encode(%+v) field = %s, want %s", tt.rect, fe.Field, tt.field)
		}
	}
}

func assertDisjoint(t *testing.T, b *Builder) {
	t.Helper()
	rects := make([]Rect, 0, len(b.glyphs))
	for _, v := range b.glyphs {
		rects = append(rects, Decode(v))
	}
	for i := range rects {
		ri := rects[i]
		if ri.X+ri.Width > b.pageSize || ri.Y+ri.Height > b.pageSize {
			t.Errorf("rect %+v leaves the page", ri)
		}
		for j := i + 1; j < len(rects); j++ {
			rj := rects[j]
			if ri.Page != rj.Page {
				continue
			}
			a := image.Rect(ri.X, ri.Y, ri.X+ri.Width, ri.Y+ri.Height)
			c := image.Rect(rj.X, rj.Y, rj.X+rj.Width, rj.Y+rj.Height)
			if a.Overlaps(c) {
				t.Errorf("rects %+v and %+v overlap", ri, rj)
			}
		}
	}
}
