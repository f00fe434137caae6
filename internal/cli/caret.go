package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gogpu/textlayout/text"
)

// caretSettings lists the edges reported for --index, in output order.
var caretSettings = []text.DirectionSetting{
	text.DirectionSettingAuto,
	text.DirectionSettingInvert,
	text.DirectionSettingForceLTR,
	text.DirectionSettingForceRTL,
}

// caretCommand creates the caret command for hit testing.
func (c *CLI) caretCommand() *cobra.Command {
	var (
		x     float64
		index int
	)

	cmd := &cobra.Command{
		Use:   "caret [text...]",
		Short: "Map between caret positions and pixel offsets",
		Long: `Map between caret positions and pixel offsets on a single line.

With --x, prints the index of the character under that offset. With --index,
prints the offset of that character edge for every direction setting. Indices
refer to the input as typed, formatting codes included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hasX, hasIndex := cmd.Flags().Changed("x"), cmd.Flags().Changed("index")
			if hasX == hasIndex {
				return errors.New("exactly one of --x and --index is required")
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if hasX {
				return c.runCaretAtX(cmd.OutOrStdout(), input, x)
			}
			return c.runCaretOffset(cmd.OutOrStdout(), input, index)
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "horizontal offset in pixels")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "character index in the input")
	return cmd
}

func (c *CLI) runCaretAtX(w io.Writer, input string, x float64) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	doc, err := c.layout(s, input)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	i := doc.text.CharIndexAtX(x, -1)
	printKeyValue(w, "index", doc.source(i))
	return nil
}

func (c *CLI) runCaretOffset(w io.Writer, input string, index int) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	doc, err := c.layout(s, input)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	i := doc.plain(index)
	t := newTable("SETTING", "OFFSET")
	for _, setting := range caretSettings {
		off, err := doc.text.OffsetAtIndex(i, setting)
		if err != nil {
			return err
		}
		t.Row(setting.String(), fmt.Sprintf("%.2f", off))
	}
	return printTable(w, t)
}
