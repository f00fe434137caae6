// Package markup parses text carrying inline formatting codes.
//
// A code is the section sign followed by one character:
//
//	§0 … §9, §a … §f   set a palette color and clear bold, italic, underline,
//	                    strikethrough and obfuscation
//	§k                  obfuscated
//	§l                  bold
//	§m                  strikethrough
//	§n                  underline
//	§o                  italic
//	§r                  reset to the base style
//
// Codes are case-insensitive. A section sign not followed by a known code
// is kept as literal text.
package markup

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/gogpu/textlayout/text"
	"github.com/gogpu/textlayout/text/indexmap"
)

// MarkerWidth is the number of characters one code occupies.
const MarkerWidth = 2

// Section is the character that starts a code.
const Section = '§'

var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Code", Pattern: `§[0-9a-fk-orA-FK-OR]`},
		{Name: "Section", Pattern: `§`},
		{Name: "Text", Pattern: `[^§]+`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(markupLexer),
	)
)

// Document is the parsed form of a marked-up string.
type Document struct {
	Items []*Item `parser:"@@*"`
}

// Item is either a formatting code or a span of literal text.
type Item struct {
	Code *string `parser:"  @Code"`
	Text *string `parser:"| @( Text | Section )"`
}

// Palette holds the sixteen code colors, indexed by hex digit.
var Palette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff},
	{0x00, 0x00, 0xaa, 0xff},
	{0x00, 0xaa, 0x00, 0xff},
	{0x00, 0xaa, 0xaa, 0xff},
	{0xaa, 0x00, 0x00, 0xff},
	{0xaa, 0x00, 0xaa, 0xff},
	{0xff, 0xaa, 0x00, 0xff},
	{0xaa, 0xaa, 0xaa, 0xff},
	{0x55, 0x55, 0x55, 0xff},
	{0x55, 0x55, 0xff, 0xff},
	{0x55, 0xff, 0x55, 0xff},
	{0x55, 0xff, 0xff, 0xff},
	{0xff, 0x55, 0x55, 0xff},
	{0xff, 0x55, 0xff, 0xff},
	{0xff, 0xff, 0x55, 0xff},
	{0xff, 0xff, 0xff, 0xff},
}

// Text is marked-up input split into plain styled text and marker positions.
type Text struct {
	// Styled is the formatless text with one style per character.
	Styled text.StyledString

	// Markers lists the formatless position of every code, in order.
	// Several codes in a row share a position.
	Markers []int

	// Source is the original input.
	Source string
}

// Parse parses s, starting from the base style.
func Parse(s string, base text.Style) (*Text, error) {
	doc, err := documentParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("markup: %w", err)
	}

	out := &Text{Source: s}
	style := base
	for _, it := range doc.Items {
		switch {
		case it.Code != nil:
			out.Markers = append(out.Markers, out.Styled.Len())
			style = apply(style, base, codeOf(*it.Code))
		case it.Text != nil:
			out.Styled = out.Styled.Append(*it.Text, style)
		}
	}
	return out, nil
}

// Plain returns the formatless text.
func (t *Text) Plain() string {
	return string(t.Styled.Runes)
}

// Converter returns an index converter between the formatless and the
// original text.
func (t *Text) Converter() *indexmap.Converter {
	return indexmap.NewConverter(t.Markers, MarkerWidth)
}

// Strip removes every code from s.
func Strip(s string) string {
	t, err := Parse(s, text.Style{})
	if err != nil {
		return s
	}
	return t.Plain()
}

// codeOf returns the lowercase code character of a Code token.
func codeOf(tok string) rune {
	r := []rune(strings.ToLower(tok))
	return r[len(r)-1]
}

// apply returns style after code c.
func apply(style, base text.Style, c rune) text.Style {
	switch {
	case c >= '0' && c <= '9':
		return text.Style{Color: Palette[c-'0']}
	case c >= 'a' && c <= 'f':
		return text.Style{Color: Palette[c-'a'+10]}
	}
	switch c {
	case 'k':
		style.Obfuscated = true
	case 'l':
		style.Bold = true
	case 'm':
		style.Strikethrough = true
	case 'n':
		style.Underline = true
	case 'o':
		style.Italic = true
	case 'r':
		return base
	}
	return style
}
