// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/gogpu/textlayout/text"
)

// Span is a logical character range [Start, End).
type Span struct {
	Start, End int
}

// Paragraph is laid-out text ready to be placed on a page.
type Paragraph struct {
	Text *text.ShapedText

	// Lines are the wrapped lines. Nil draws the paragraph on one line.
	Lines []text.Line

	// Highlights are logical ranges drawn behind the text, such as a selection.
	Highlights []Span
}

// Style controls how a Composer draws paragraphs. Lengths are in layout pixels.
type Style struct {
	Margin       float64
	LineHeight   float64
	ParagraphGap float64

	// Ascent is the distance from the top of a line to its baseline.
	Ascent float64

	GlyphBoxes bool
	Baselines  bool
	Characters bool

	TextColor      color.RGBA
	LTRBoxColor    color.RGBA
	RTLBoxColor    color.RGBA
	LegacyBoxColor color.RGBA
	HighlightColor color.RGBA
	BaselineColor  color.RGBA
}

// DefaultStyle draws characters, glyph boxes and baselines.
func DefaultStyle() Style {
	return Style{
		Margin:         24,
		LineHeight:     24,
		ParagraphGap:   12,
		Ascent:         18,
		GlyphBoxes:     true,
		Baselines:      true,
		Characters:     true,
		TextColor:      color.RGBA{0x20, 0x20, 0x20, 0xff},
		LTRBoxColor:    color.RGBA{0x30, 0x60, 0xc0, 0xff},
		RTLBoxColor:    color.RGBA{0xd0, 0x70, 0x10, 0xff},
		LegacyBoxColor: color.RGBA{0x80, 0x80, 0x80, 0xff},
		HighlightColor: color.RGBA{0x66, 0x66, 0x00, 0x66},
		BaselineColor:  color.RGBA{0xc0, 0x20, 0x20, 0xff},
	}
}

// Composer places paragraphs on a Scene from top to bottom and starts a
// new page when a line would cross the bottom margin.
type Composer struct {
	scene *Scene
	style Style
	y     float64
	log   *slog.Logger
}

// NewComposer returns a Composer writing to scene from its top margin.
func NewComposer(scene *Scene, style Style) *Composer {
	return &Composer{
		scene: scene,
		style: style,
		y:     style.Margin,
		log:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger for page diagnostics. Nil discards them.
func (c *Composer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.log = l
}

// glyphBox is the drawable part of a visual glyph.
type glyphBox struct {
	x, adv float64
	xOff   float64
	start  int
	rtl    bool
	legacy bool
	str    string
}

func boxOf(vg text.VisualGlyph, runes []rune) glyphBox {
	switch g := vg.(type) {
	case text.ShapedGlyph:
		return glyphBox{x: g.X, adv: g.Advance, xOff: g.XOffset, start: g.Start, rtl: g.RTL,
			str: string(runes[g.Start:g.End])}
	case text.LegacyGlyph:
		return glyphBox{x: g.X, adv: g.Advance, start: g.Index, rtl: g.RTL, legacy: true,
			str: string(g.Rune)}
	default:
		return glyphBox{}
	}
}

// Add draws p below everything added so far.
func (c *Composer) Add(p Paragraph) error {
	lines := p.Lines
	if lines == nil {
		n := p.Text.Len()
		lines = []text.Line{{Start: 0, End: n, Next: n}}
	}

	// Bucket the visual glyphs by the line holding their first character.
	runes := p.Text.Text()
	perLine := make([][]glyphBox, len(lines))
	for _, vg := range p.Text.VisualGlyphs() {
		b := boxOf(vg, runes)
		li := sort.Search(len(lines), func(i int) bool { return lines[i].Next > b.start })
		if li < len(lines) {
			perLine[li] = append(perLine[li], b)
		}
	}

	st := c.style
	_, pageHeight := c.scene.Size()
	for li, line := range lines {
		if c.y+st.LineHeight > pageHeight-st.Margin && c.y > st.Margin {
			c.scene.NewPage()
			c.y = st.Margin
			c.log.Debug("render: new page", "page", c.scene.NumPages())
		}

		boxes := perLine[li]
		left, right := 0.0, 0.0
		if len(boxes) > 0 {
			left, right = math.Inf(1), math.Inf(-1)
			for _, b := range boxes {
				left = math.Min(left, b.x)
				right = math.Max(right, b.x+b.adv)
			}
		}
		originX := st.Margin - left
		baseline := c.y + st.Ascent

		c.scene.SetFillColor(st.HighlightColor)
		for _, span := range p.Highlights {
			s, e := max(span.Start, line.Start), min(span.End, line.End)
			if s >= e {
				continue
			}
			err := p.Text.HighlightRanges(s, e, func(l, r float64) {
				c.scene.FillRect(originX+l, c.y, r-l, st.LineHeight)
			})
			if err != nil {
				return fmt.Errorf("render: highlight [%d, %d): %w", span.Start, span.End, err)
			}
		}

		if st.GlyphBoxes {
			c.scene.SetStrokeWidth(0.5)
			for _, b := range boxes {
				switch {
				case b.legacy:
					c.scene.SetStrokeColor(st.LegacyBoxColor)
				case b.rtl:
					c.scene.SetStrokeColor(st.RTLBoxColor)
				default:
					c.scene.SetStrokeColor(st.LTRBoxColor)
				}
				c.scene.StrokeRect(originX+b.x, c.y, b.adv, st.LineHeight)
			}
		}

		if st.Characters {
			c.scene.SetFillColor(st.TextColor)
			for _, b := range boxes {
				if strings.TrimSpace(b.str) == "" {
					continue
				}
				c.scene.Text(originX+b.x+b.xOff, baseline, b.str)
			}
		}

		if st.Baselines && right > left {
			c.scene.SetStrokeColor(st.BaselineColor)
			c.scene.SetStrokeWidth(0.5)
			c.scene.Line(st.Margin, baseline, st.Margin+right-left, baseline)
		}

		c.y += st.LineHeight
	}
	c.y += st.ParagraphGap
	return nil
}
