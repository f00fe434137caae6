package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/textlayout/text"
)

// wrapCommand creates the wrap command breaking text into lines.
func (c *CLI) wrapCommand() *cobra.Command {
	var (
		width     float64
		keepSpace bool
	)

	cmd := &cobra.Command{
		Use:   "wrap [text...]",
		Short: "Break text into lines no wider than a pixel width",
		Long: `Break text into lines at Unicode line-break opportunities.

Without --width, the configured width is used; when that is zero too, the
width follows the terminal at half the font size per column.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("keep-space") {
				c.cfg.KeepTrailingSpace = keepSpace
			}
			return c.runWrap(cmd.OutOrStdout(), input, width)
		},
	}
	cmd.Flags().Float64VarP(&width, "width", "w", 0, "maximum line width in pixels")
	cmd.Flags().BoolVar(&keepSpace, "keep-space", false, "keep trailing whitespace on lines")
	return cmd
}

// wrapWidth picks the line width for w: the flag, then the configuration,
// then the terminal.
func (c *CLI) wrapWidth(w io.Writer, flag float64) float64 {
	if flag > 0 {
		return flag
	}
	if c.cfg.Width > 0 {
		return c.cfg.Width
	}
	return float64(terminalColumns(w)) * c.cfg.Size / 2
}

func (c *CLI) runWrap(w io.Writer, input string, width float64) error {
	if width < 0 {
		return fmt.Errorf("width must not be negative, got %v", width)
	}
	s, err := c.newSession()
	if err != nil {
		return err
	}
	doc, err := c.layout(s, input)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	maxWidth := c.wrapWidth(w, width)
	lines := s.engine.Wrap(doc.text, maxWidth, text.WrapOptions{KeepTrailingSpace: c.cfg.KeepTrailingSpace})
	c.Logger.Debug("wrapped", "width", maxWidth, "lines", len(lines))

	runes := doc.text.Text()
	for _, l := range lines {
		line := strings.TrimSuffix(string(runes[l.Start:l.End]), "\n")
		fmt.Fprintf(w, "%s %s\n",
			styleDim.Render(fmt.Sprintf("%4d:%-4d", doc.source(l.Start), doc.source(l.End))), line)
	}
	return nil
}
