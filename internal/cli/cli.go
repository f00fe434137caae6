// Package cli implements the textlayout command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/textlayout"
	"github.com/gogpu/textlayout/text"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// defaultFontName names the built-in font used when no font file is given.
const defaultFontName = "Go Regular"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the configuration in effect after flags were applied.
func (c *CLI) Config() Config {
	return c.cfg
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "textlayout",
		Short: "Lay out, wrap and inspect mixed-direction text",
		Long: `textlayout shapes text with go-text/typesetting, resolves bidirectional
runs and prints or renders the result.

Text is taken from the arguments, or from standard input when none are given.
Settings come from a TOML file (--config) and are overridden by flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd.Flags())
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")
	f.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
	f.Float64("size", c.cfg.Size, "font size in pixels")
	f.String("dir", c.cfg.Direction, "base direction: ltr, rtl, auto")
	f.Bool("markup", c.cfg.Markup, "parse § formatting codes")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.wrapCommand())
	root.AddCommand(c.caretCommand())
	root.AddCommand(c.highlightCommand())
	root.AddCommand(c.atlasCommand())
	root.AddCommand(c.renderCommand())

	return root
}

// =============================================================================
// Engine
// =============================================================================

// session is an engine set up from the configuration, with its font.
type session struct {
	engine   *textlayout.Engine
	font     *text.GoTextFont
	fontData []byte
	base     text.Direction
}

// newSession parses the configured font and creates an engine logging
// through the CLI logger.
func (c *CLI) newSession() (*session, error) {
	base, err := ParseDirection(c.cfg.Direction)
	if err != nil {
		return nil, err
	}

	data, name := goregular.TTF, defaultFontName
	if c.cfg.Font != "" {
		data, err = os.ReadFile(c.cfg.Font)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", c.cfg.Font, err)
		}
		name = strings.TrimSuffix(filepath.Base(c.cfg.Font), filepath.Ext(c.cfg.Font))
	}
	f, err := text.ParseGoTextFont(name, data, c.cfg.Size)
	if err != nil {
		return nil, err
	}

	engine := textlayout.New(textlayout.Coverage(f), textlayout.WithLogger(slog.New(c.Logger)))
	c.Logger.Debug("font loaded", "name", name, "size", c.cfg.Size, "upem", f.Upem())
	return &session{engine: engine, font: f, fontData: data, base: base}, nil
}

// document is laid-out input. Markup is nil unless markup parsing is on.
type document struct {
	text   *text.ShapedText
	markup *textlayout.Paragraph
}

// layout lays out s, parsing formatting codes when configured to.
func (c *CLI) layout(s *session, input string) (*document, error) {
	if c.cfg.Markup {
		p, err := s.engine.LayoutMarkup(input, text.Style{}, s.base)
		if err != nil {
			return nil, err
		}
		return &document{text: p.Text, markup: p}, nil
	}
	st, err := s.engine.LayoutString(input, text.Style{}, s.base)
	if err != nil {
		return nil, err
	}
	return &document{text: st}, nil
}

// source maps a laid-out index onto the input string.
func (d *document) source(i int) int {
	if d.markup == nil {
		return i
	}
	return d.markup.SourceIndex(i)
}

// plain maps an input-string index onto the laid-out text.
func (d *document) plain(j int) int {
	if d.markup == nil {
		return j
	}
	return d.markup.PlainIndex(j)
}

// =============================================================================
// Input
// =============================================================================

// readInput joins the arguments, or reads standard input when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
