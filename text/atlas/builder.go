package atlas

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"github.com/gogpu/textlayout/text"
)

// Builder packs glyphs into pages. It is not safe for concurrent use.
type Builder struct {
	pageSize int
	free     freeList
	pages    []*image.Alpha
	numPages int
	glyphs   map[text.GlyphID]uint64
	built    bool
	log      *slog.Logger
}

// NewBuilder creates a builder with square pages of the given size.
// A size of 0 selects PageSize.
func NewBuilder(pageSize int) (*Builder, error) {
	if pageSize == 0 {
		pageSize = PageSize
	}
	if pageSize < 1 || pageSize > MaxCoord+1 {
		return nil, &FieldError{Field: "PageSize", Value: pageSize, Max: MaxCoord + 1}
	}
	return &Builder{
		pageSize: pageSize,
		glyphs:   make(map[text.GlyphID]uint64),
		log:      slog.New(slog.DiscardHandler),
	}, nil
}

// SetLogger sets the logger used for page allocation diagnostics.
// Nil restores the silent default.
func (b *Builder) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	b.log = l
}

// Insert reserves a width×height rectangle for id.
//
// The free rectangles of existing pages are tried first; when none fits a
// new page is added and the allocation retried once.
func (b *Builder) Insert(id text.GlyphID, width, height int) (Rect, error) {
	if b.built {
		return Rect{}, ErrBuilt
	}
	if width < 0 || height < 0 || width >= b.pageSize || height >= b.pageSize {
		return Rect{}, &SizeError{Width: width, Height: height, PageSize: b.pageSize}
	}
	if _, ok := b.glyphs[id]; ok {
		return Rect{}, ErrDuplicateGlyph
	}

	fr, ok := b.free.allocate(width, height)
	if !ok {
		b.addPage()
		fr, ok = b.free.allocate(width, height)
		if !ok {
			return Rect{}, ErrAllocationFailed
		}
	}

	r := Rect{X: fr.x, Y: fr.y, Width: fr.w, Height: fr.h, Page: fr.page}
	packed, err := Encode(r)
	if err != nil {
		return Rect{}, err
	}
	b.glyphs[id] = packed
	return r, nil
}

// InsertImage reserves a rectangle the size of img and copies img into
// the page bitmap. Only the alpha channel of img is kept.
func (b *Builder) InsertImage(id text.GlyphID, img image.Image) (Rect, error) {
	bounds := img.Bounds()
	r, err := b.Insert(id, bounds.Dx(), bounds.Dy())
	if err != nil {
		return Rect{}, err
	}
	if r.Empty() {
		return r, nil
	}
	page := b.pageImage(r.Page)
	dst := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	draw.Draw(page, dst, img, bounds.Min, draw.Src)
	return r, nil
}

// Lookup returns the rectangle already assigned to id.
func (b *Builder) Lookup(id text.GlyphID) (Rect, bool) {
	v, ok := b.glyphs[id]
	if !ok {
		return Rect{}, false
	}
	return Decode(v), true
}

// NumPages returns the number of pages allocated so far.
func (b *Builder) NumPages() int {
	return b.numPages
}

// Utilization returns the fraction of allocated page area in use.
func (b *Builder) Utilization() float64 {
	if b.numPages == 0 {
		return 0
	}
	total := b.numPages * b.pageSize * b.pageSize
	return float64(b.free.usedArea) / float64(total)
}

// Build freezes the builder into an Atlas and drops the freelist.
// The builder cannot be used afterwards.
func (b *Builder) Build() *Atlas {
	b.built = true
	b.free = freeList{}
	b.log.Debug("atlas: built",
		"glyphs", len(b.glyphs), "pages", b.numPages, "pageSize", b.pageSize)
	return &Atlas{
		pageSize: b.pageSize,
		pages:    b.pages,
		numPages: b.numPages,
		glyphs:   b.glyphs,
	}
}

func (b *Builder) addPage() {
	b.free.addPage(b.numPages, b.pageSize)
	b.numPages++
	b.log.Debug("atlas: new page", "page", b.numPages-1, "size", b.pageSize)
}

// pageImage returns the bitmap of page i, allocating it on first use.
func (b *Builder) pageImage(i int) *image.Alpha {
	for len(b.pages) <= i {
		b.pages = append(b.pages, nil)
	}
	if b.pages[i] == nil {
		b.pages[i] = image.NewAlpha(image.Rect(0, 0, b.pageSize, b.pageSize))
	}
	return b.pages[i]
}
