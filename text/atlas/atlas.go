// Package atlas packs glyph rectangles into fixed-size pages.
//
// A Builder assigns every glyph id a rectangle on some page, optionally
// copying the glyph bitmap into the page image. Build freezes the result
// into an immutable Atlas that renderers query by glyph id.
package atlas

import (
	"image"

	"github.com/gogpu/textlayout/text"
)

// PageSize is the default width and height of an atlas page.
const PageSize = 4096

// Atlas is an immutable set of pages plus the location of every glyph.
type Atlas struct {
	pageSize int
	pages    []*image.Alpha
	numPages int
	glyphs   map[text.GlyphID]uint64
}

// Lookup returns the rectangle of a glyph.
func (a *Atlas) Lookup(id text.GlyphID) (Rect, bool) {
	v, ok := a.glyphs[id]
	if !ok {
		return Rect{}, false
	}
	return Decode(v), true
}

// Packed returns the encoded rectangle of a glyph.
func (a *Atlas) Packed(id text.GlyphID) (uint64, bool) {
	v, ok := a.glyphs[id]
	return v, ok
}

// Page returns the bitmap of page i. Pages that never received a bitmap
// are returned blank.
func (a *Atlas) Page(i int) *image.Alpha {
	if i < 0 || i >= a.numPages {
		return nil
	}
	if i < len(a.pages) && a.pages[i] != nil {
		return a.pages[i]
	}
	return image.NewAlpha(image.Rect(0, 0, a.pageSize, a.pageSize))
}

// NumPages returns the number of pages.
func (a *Atlas) NumPages() int {
	return a.numPages
}

// PageSize returns the width and height of every page.
func (a *Atlas) PageSize() int {
	return a.pageSize
}

// Len returns the number of glyphs.
func (a *Atlas) Len() int {
	return len(a.glyphs)
}

// SubImage returns the glyph bitmap inside its page.
func (a *Atlas) SubImage(id text.GlyphID) (image.Image, bool) {
	r, ok := a.Lookup(id)
	if !ok {
		return nil, false
	}
	page := a.Page(r.Page)
	return page.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)), true
}
