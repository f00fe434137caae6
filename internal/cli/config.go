package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/gogpu/textlayout/text"
)

// Config holds the settings shared by all commands.
//
// A configuration file looks like:
//
//	font = "fonts/NotoSans-Regular.ttf"
//	size = 18
//	direction = "auto"
//	width = 480
//	markup = true
//
//	[render]
//	page_width = 595
//	page_height = 842
type Config struct {
	// Font is a font file path. Empty selects Go Regular.
	Font string `toml:"font"`

	// Size is the font size in pixels.
	Size float64 `toml:"size"`

	// Direction is the base direction: "ltr", "rtl" or "auto".
	Direction string `toml:"direction"`

	// Width is the wrap width in pixels. Zero follows the terminal.
	Width float64 `toml:"width"`

	// Markup enables § formatting codes.
	Markup bool `toml:"markup"`

	// KeepTrailingSpace keeps trailing whitespace on wrapped lines.
	KeepTrailingSpace bool `toml:"keep_trailing_space"`

	Render RenderConfig `toml:"render"`
}

// RenderConfig holds the PDF output settings.
type RenderConfig struct {
	PageWidth  float64 `toml:"page_width"`
	PageHeight float64 `toml:"page_height"`

	// PixelSize is the printed size of one layout pixel in millimetres.
	PixelSize float64 `toml:"pixel_size"`

	GlyphBoxes bool `toml:"glyph_boxes"`
	Baselines  bool `toml:"baselines"`
	Characters bool `toml:"characters"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Size:      16,
		Direction: "auto",
		Render: RenderConfig{
			PageWidth:  595,
			PageHeight: 842,
			PixelSize:  0.25,
			GlyphBoxes: true,
			Baselines:  true,
			Characters: true,
		},
	}
}

// LoadConfig reads a TOML file on top of the defaults. Unknown keys are an
// error so that typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// ParseConfig decodes TOML data on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings for values no command can use.
func (c Config) Validate() error {
	var errs []error
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %v", c.Size))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width must not be negative, got %v", c.Width))
	}
	if _, err := ParseDirection(c.Direction); err != nil {
		errs = append(errs, err)
	}
	if c.Render.PageWidth <= 0 || c.Render.PageHeight <= 0 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %vx%v",
			c.Render.PageWidth, c.Render.PageHeight))
	}
	return errors.Join(errs...)
}

// ParseDirection parses a base direction name.
func ParseDirection(s string) (text.Direction, error) {
	switch strings.ToLower(s) {
	case "ltr":
		return text.DirectionLTR, nil
	case "rtl":
		return text.DirectionRTL, nil
	case "", "auto":
		return text.DirectionAuto, nil
	default:
		return text.DirectionAuto, fmt.Errorf("unknown direction %q (want ltr, rtl or auto)", s)
	}
}

// loadConfig reads --config if given and applies the flags the user set.
func (c *CLI) loadConfig(flags *pflag.FlagSet) error {
	cfg := DefaultConfig()
	if c.configPath != "" {
		var err error
		if cfg, err = LoadConfig(c.configPath); err != nil {
			return err
		}
		c.Logger.Debug("config loaded", "path", c.configPath)
	}

	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "font":
			cfg.Font = f.Value.String()
		case "size":
			cfg.Size, err = flags.GetFloat64("size")
		case "dir":
			cfg.Direction = f.Value.String()
		case "markup":
			cfg.Markup, err = flags.GetBool("markup")
		}
	})
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}
