package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/textlayout/text"
)

// layoutCommand creates the layout command printing run groups and glyphs.
func (c *CLI) layoutCommand() *cobra.Command {
	var glyphs bool

	cmd := &cobra.Command{
		Use:   "layout [text...]",
		Short: "Shape text and print its run groups",
		Long: `Shape text and print its run groups in visual order.

Each group shares one font and one embedding level. With --glyphs, every
positioned glyph is listed with its logical cluster.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.OutOrStdout(), input, glyphs)
		},
	}
	cmd.Flags().BoolVarP(&glyphs, "glyphs", "g", false, "list positioned glyphs")
	return cmd
}

func (c *CLI) runLayout(w io.Writer, input string, glyphs bool) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	doc, err := c.layout(s, input)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	st := doc.text

	printTitle(w, "Layout")
	printKeyValue(w, "direction", st.Direction())
	printKeyValue(w, "level", st.Level())
	printKeyValue(w, "characters", st.Len())
	printKeyValue(w, "width", fmt.Sprintf("%.2f", st.Width()))
	fmt.Fprintln(w)

	t := newTable("GROUP", "START", "END", "FONT", "LEVEL", "RUNS")
	for i, g := range st.Groups() {
		font := "legacy"
		if !g.IsLegacy() {
			font = g.Font().Name()
		}
		t.Row(
			fmt.Sprint(i),
			fmt.Sprint(doc.source(g.CharOffset())),
			fmt.Sprint(doc.source(g.CharOffset()+g.Len())),
			font,
			fmt.Sprint(g.RunLevel()),
			fmt.Sprint(len(g.BidiRuns())),
		)
	}
	if err := printTable(w, t); err != nil {
		return err
	}

	if glyphs {
		fmt.Fprintln(w)
		return printGlyphs(w, doc)
	}
	return nil
}

// printGlyphs lists the visual glyphs of doc left to right.
func printGlyphs(w io.Writer, doc *document) error {
	t := newTable("X", "ADVANCE", "START", "END", "DIR", "GLYPH")
	for _, vg := range doc.text.VisualGlyphs() {
		switch g := vg.(type) {
		case text.ShapedGlyph:
			t.Row(fmt.Sprintf("%.2f", g.X), fmt.Sprintf("%.2f", g.Advance),
				fmt.Sprint(doc.source(g.Start)), fmt.Sprint(doc.source(g.End)),
				dirName(g.RTL), fmt.Sprintf("gid %d", g.GID))
		case text.LegacyGlyph:
			t.Row(fmt.Sprintf("%.2f", g.X), fmt.Sprintf("%.2f", g.Advance),
				fmt.Sprint(doc.source(g.Index)), fmt.Sprint(doc.source(g.Index+1)),
				dirName(g.RTL), fmt.Sprintf("%q", g.Rune))
		}
	}
	return printTable(w, t)
}

func dirName(rtl bool) string {
	if rtl {
		return "rtl"
	}
	return "ltr"
}
