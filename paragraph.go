package textlayout

import (
	"github.com/gogpu/textlayout/markup"
	"github.com/gogpu/textlayout/text"
	"github.com/gogpu/textlayout/text/indexmap"
)

// Paragraph is laid-out markup: the shaped plain text plus what is needed
// to map caret positions back into the original string.
type Paragraph struct {
	Text   *text.ShapedText
	Markup *markup.Text

	conv *indexmap.Converter
}

// Converter returns the index converter between the plain and the original
// text. It is created on first use and shared by later calls.
func (p *Paragraph) Converter() *indexmap.Converter {
	if p.conv == nil {
		p.conv = p.Markup.Converter()
	}
	return p.conv
}

// SourceIndex maps a plain-text index into the original string.
func (p *Paragraph) SourceIndex(i int) int {
	return p.Converter().FormatfulAt(i)
}

// PlainIndex maps an index into the original string onto the plain text.
func (p *Paragraph) PlainIndex(j int) int {
	return p.Converter().FormatlessAt(j)
}

// CaretAtX returns the original-string index of the caret for a click at
// horizontal position x.
func (p *Paragraph) CaretAtX(x float64) int {
	return p.SourceIndex(p.Text.CharIndexAtX(x, -1))
}
