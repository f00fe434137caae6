package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/textlayout/render"
	"github.com/gogpu/textlayout/text"
)

// renderCommand creates the render command writing a PDF of the layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		highlights []string
	)

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render the wrapped layout to a PDF",
		Long: `Render the wrapped layout to a PDF for inspection.

Every glyph is outlined in the color of its direction and every line shows
its baseline. Ranges given with --highlight (start:end, in input indices)
are filled behind the text. Blank lines separate paragraphs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			spans, err := parseSpans(highlights)
			if err != nil {
				return err
			}
			return c.runRender(cmd.OutOrStdout(), input, spans, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "layout.pdf", "output PDF file")
	cmd.Flags().StringSliceVar(&highlights, "highlight", nil, "highlight range start:end (repeatable)")
	return cmd
}

// parseSpans parses "start:end" pairs.
func parseSpans(specs []string) ([]render.Span, error) {
	spans := make([]render.Span, 0, len(specs))
	for _, s := range specs {
		a, b, ok := strings.Cut(s, ":")
		if !ok {
			return nil, fmt.Errorf("invalid highlight %q (want start:end)", s)
		}
		start, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid highlight %q: %w", s, err)
		}
		end, err := strconv.Atoi(b)
		if err != nil {
			return nil, fmt.Errorf("invalid highlight %q: %w", s, err)
		}
		spans = append(spans, render.Span{Start: start, End: end})
	}
	return spans, nil
}

// pageStyle derives the drawing style from the configuration.
func (c *CLI) pageStyle() render.Style {
	st := render.DefaultStyle()
	st.LineHeight = c.cfg.Size * 1.5
	st.Ascent = c.cfg.Size * 1.125
	st.ParagraphGap = c.cfg.Size * 0.75
	st.GlyphBoxes = c.cfg.Render.GlyphBoxes
	st.Baselines = c.cfg.Render.Baselines
	st.Characters = c.cfg.Render.Characters
	return st
}

func (c *CLI) runRender(w io.Writer, input string, highlights []render.Span, output string) error {
	s, err := c.newSession()
	if err != nil {
		return err
	}
	rc := c.cfg.Render
	style := c.pageStyle()
	maxWidth := rc.PageWidth - 2*style.Margin
	if c.cfg.Width > 0 && c.cfg.Width < maxWidth {
		maxWidth = c.cfg.Width
	}

	logger := slog.New(c.Logger)
	scene := render.NewScene(rc.PageWidth, rc.PageHeight)
	comp := render.NewComposer(scene, style)
	comp.SetLogger(logger)

	offset := 0
	for _, para := range strings.Split(input, "\n\n") {
		doc, err := c.layout(s, para)
		if err != nil {
			return fmt.Errorf("layout: %w", err)
		}
		lines := s.engine.Wrap(doc.text, maxWidth, text.WrapOptions{KeepTrailingSpace: c.cfg.KeepTrailingSpace})
		err = comp.Add(render.Paragraph{
			Text:       doc.text,
			Lines:      lines,
			Highlights: localSpans(doc, highlights, offset, offset+len([]rune(para))),
		})
		if err != nil {
			return err
		}
		offset += len([]rune(para)) + 2
	}

	r, err := render.NewPDFRenderer(render.PDFOptions{
		PixelSize: rc.PixelSize,
		FontData:  s.fontData,
		FontSize:  c.cfg.Size,
		Title:     "textlayout",
		Creator:   "textlayout",
	})
	if err != nil {
		return err
	}
	r.SetLogger(logger)

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	if err := r.Render(f, scene); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess(w, "Rendered %d page(s)", scene.NumPages())
	printFile(w, output)
	return nil
}

// localSpans converts input-wide spans into laid-out indices of the
// paragraph occupying [start, end) of the input. Spans missing the
// paragraph are dropped.
func localSpans(doc *document, spans []render.Span, start, end int) []render.Span {
	var out []render.Span
	for _, sp := range spans {
		lo, hi := max(sp.Start, start), min(sp.End, end)
		if lo >= hi {
			continue
		}
		out = append(out, render.Span{Start: doc.plain(lo - start), End: doc.plain(hi - start)})
	}
	return out
}
