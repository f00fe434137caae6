package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// highlightCommand creates the highlight command printing selection boxes.
func (c *CLI) highlightCommand() *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "highlight [text...]",
		Short: "Print the horizontal ranges covering a selection",
		Long: `Print the horizontal pixel ranges covering the characters [start, end).

A selection crossing direction changes is drawn as several ranges, one per
visually contiguous piece, left to right.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return c.runHighlight(cmd.OutOrStdout(), input, start, end)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "first selected character")
	cmd.Flags().IntVar(&end, "end", 0, "character just past the selection")
	return cmd
}

func (c *CLI) runHighlight(w io.Writer, input string, start, end int) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	doc, err := c.layout(s, input)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	n := 0
	err = doc.text.HighlightRanges(doc.plain(start), doc.plain(end), func(left, right float64) {
		fmt.Fprintf(w, "%.2f %.2f\n", left, right)
		n++
	})
	if err != nil {
		return err
	}
	c.Logger.Debug("highlight", "start", start, "end", end, "ranges", n)
	return nil
}
