package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/gogpu/textlayout/text"
)

// atlasCommand creates the atlas command packing the glyphs of a text.
func (c *CLI) atlasCommand() *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:   "atlas [text...]",
		Short: "Pack the glyphs of a text into atlas pages",
		Long: `Pack every distinct glyph the text shapes to into square atlas pages.

Each glyph reserves its advance by the line height of the font size, the
cell a renderer would rasterize it into.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return c.runAtlas(cmd.OutOrStdout(), input, pageSize)
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", 256, "atlas page size in pixels")
	return cmd
}

// glyphCell returns the atlas cell reserved for a glyph.
func glyphCell(g text.ShapedGlyph, size float64) (w, h int) {
	return max(1, int(math.Ceil(g.Advance))), int(math.Ceil(size * 1.25))
}

func (c *CLI) runAtlas(w io.Writer, input string, pageSize int) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	doc, err := c.layout(s, input)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	b, err := s.engine.NewAtlasBuilder(pageSize)
	if err != nil {
		return err
	}

	var ids []text.GlyphID
	for _, vg := range doc.text.VisualGlyphs() {
		g, ok := vg.(text.ShapedGlyph)
		if !ok {
			continue
		}
		if _, done := b.Lookup(g.GID); done {
			continue
		}
		gw, gh := glyphCell(g, c.cfg.Size)
		if _, err := b.Insert(g.GID, gw, gh); err != nil {
			return fmt.Errorf("pack glyph %d: %w", g.GID, err)
		}
		ids = append(ids, g.GID)
	}
	utilization := b.Utilization()
	a := b.Build()
	s.engine.RegisterAtlas(s.font, a)

	printTitle(w, "Atlas")
	printKeyValue(w, "glyphs", a.Len())
	printKeyValue(w, "pages", a.NumPages())
	printKeyValue(w, "utilization", fmt.Sprintf("%.1f%%", utilization*100))
	fmt.Fprintln(w)

	t := newTable("GID", "PAGE", "X", "Y", "W", "H", "PACKED")
	for _, id := range ids {
		r, _ := a.Lookup(id)
		packed, _ := a.Packed(id)
		t.Row(fmt.Sprint(id), fmt.Sprint(r.Page), fmt.Sprint(r.X), fmt.Sprint(r.Y),
			fmt.Sprint(r.Width), fmt.Sprint(r.Height), fmt.Sprintf("%#x", packed))
	}
	return printTable(w, t)
}
