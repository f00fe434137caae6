package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/gogpu/textlayout/text"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, *CLI, error) {
	t.Helper()
	c := New(io.Discard, LogDebug)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), c, err
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    text.Direction
		wantErr bool
	}{
		{"ltr", text.DirectionLTR, false},
		{"RTL", text.DirectionRTL, false},
		{"auto", text.DirectionAuto, false},
		{"", text.DirectionAuto, false},
		{"sideways", text.DirectionAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
size = 20
direction = "rtl"
markup = true

[render]
page_width = 300
glyph_boxes = false
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != 20 || cfg.Direction != "rtl" || !cfg.Markup {
		t.Errorf("top-level settings = %+v", cfg)
	}
	if cfg.Render.PageWidth != 300 || cfg.Render.GlyphBoxes {
		t.Errorf("render settings = %+v", cfg.Render)
	}
	// Keys missing from the file keep their defaults.
	def := DefaultConfig()
	if cfg.Render.PageHeight != def.Render.PageHeight || !cfg.Render.Baselines {
		t.Errorf("defaults lost: %+v", cfg.Render)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `size = `},
		{"zero size", `size = 0`},
		{"negative width", `width = -1`},
		{"direction", `direction = "up"`},
		{"page", "[render]\npage_height = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.data)); err == nil {
				t.Errorf("ParseConfig(%q) succeeded", tt.data)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte("size = 12\nwidth = 200\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(good)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Size != 12 || cfg.Width != 200 {
		t.Errorf("cfg = %+v", cfg)
	}

	typo := filepath.Join(dir, "typo.toml")
	if err := os.WriteFile(typo, []byte("sise = 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(typo); err == nil || !strings.Contains(err.Error(), "sise") {
		t.Errorf("LoadConfig with unknown key: err = %v", err)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.toml")
	if err := os.WriteFile(path, []byte("size = 20\ndirection = \"rtl\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, c, err := execute(t, "", "--config", path, "--size", "12", "layout", "abc")
	if err != nil {
		t.Fatal(err)
	}
	cfg := c.Config()
	if cfg.Size != 12 {
		t.Errorf("Size = %v, want the flag value 12", cfg.Size)
	}
	if cfg.Direction != "rtl" {
		t.Errorf("Direction = %q, want rtl from the file", cfg.Direction)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := [][]string{
		{"--dir", "sideways", "layout", "x"},
		{"--size", "0", "layout", "x"},
		{"--font", "/nonexistent/font.ttf", "layout", "x"},
		{"caret", "x"},
		{"caret", "--x", "1", "--index", "0", "x"},
		{"render", "--highlight", "3", "x"},
		{"wrap", "--width", "-1", "x"},
	}
	for _, args := range tests {
		if _, _, err := execute(t, "", args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	out, _, err := execute(t, "", "--dir", "ltr", "layout", "--glyphs", "Hello")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Layout", "GROUP", "Go Regular", "gid"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if !regexp.MustCompile(`characters\s+5`).MatchString(out) {
		t.Errorf("output lacks the character count:\n%s", out)
	}
	if !regexp.MustCompile(`│\s*GROUP\s*│\s*START\s*│`).MatchString(out) {
		t.Errorf("group header is not a bordered table row:\n%s", out)
	}
	if strings.Contains(out, "\t") {
		t.Errorf("output contains tabs:\n%s", out)
	}
}

func TestLayoutCommand_Stdin(t *testing.T) {
	out, _, err := execute(t, "abc\n", "layout")
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`characters\s+3`).MatchString(out) {
		t.Errorf("trailing newline was not dropped:\n%s", out)
	}
}

func TestLayoutCommand_RTL(t *testing.T) {
	out, _, err := execute(t, "", "layout", "שלום")
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`direction\s+RTL`).MatchString(out) {
		t.Errorf("auto direction did not pick RTL:\n%s", out)
	}
	if !strings.Contains(out, "legacy") {
		t.Errorf("Hebrew should fall back to legacy metrics with Go Regular:\n%s", out)
	}
}

func TestWrapCommand(t *testing.T) {
	out, _, err := execute(t, "", "wrap", "--width", "10000", "one two\nthree")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "one two") || !strings.HasSuffix(lines[1], "three") {
		t.Errorf("lines = %q", lines)
	}
	if !strings.Contains(lines[1], "8:13") {
		t.Errorf("second line range = %q, want 8:13", lines[1])
	}
}

func TestWrapWidth(t *testing.T) {
	c := New(io.Discard, LogInfo)
	var buf bytes.Buffer
	if got := c.wrapWidth(&buf, 50); got != 50 {
		t.Errorf("flag width = %v", got)
	}
	want := float64(defaultColumns) * c.cfg.Size / 2
	if got := c.wrapWidth(&buf, 0); got != want {
		t.Errorf("non-terminal width = %v, want %v", got, want)
	}
	c.cfg.Width = 321
	if got := c.wrapWidth(&buf, 0); got != 321 {
		t.Errorf("configured width = %v, want 321", got)
	}
}

func TestCaretCommand(t *testing.T) {
	out, _, err := execute(t, "", "--dir", "ltr", "caret", "--index", "0", "abc")
	if err != nil {
		t.Fatal(err)
	}
	for _, setting := range []string{"Auto", "Invert", "ForceLTR", "ForceRTL"} {
		if !strings.Contains(out, setting) {
			t.Errorf("output lacks %s:\n%s", setting, out)
		}
	}
	if !regexp.MustCompile(`ForceLTR\s*│\s*0\.00\s*│`).MatchString(out) {
		t.Errorf("left edge of the first character is not 0:\n%s", out)
	}

	out, _, err = execute(t, "", "--dir", "ltr", "caret", "--x", "0.5", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`index\s+0`).MatchString(out) {
		t.Errorf("caret at 0.5px:\n%s", out)
	}
}

func TestHighlightCommand(t *testing.T) {
	out, _, err := execute(t, "", "--dir", "ltr", "highlight", "--start", "0", "--end", "3", "abc")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "0.00 ") {
		t.Errorf("ranges = %q, want one starting at 0", lines)
	}

	if _, _, err := execute(t, "", "highlight", "--start", "0", "--end", "9", "abc"); err == nil {
		t.Error("selection past the end should fail")
	}
}

func TestAtlasCommand(t *testing.T) {
	out, _, err := execute(t, "", "atlas", "--page-size", "128", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`glyphs\s+4`).MatchString(out) {
		t.Errorf("want 4 distinct glyphs:\n%s", out)
	}
	if !regexp.MustCompile(`pages\s+1`).MatchString(out) {
		t.Errorf("want 1 page:\n%s", out)
	}
	if !regexp.MustCompile(`│\s*GID\s*│\s*PAGE\s*│`).MatchString(out) {
		t.Errorf("atlas header is not a bordered table row:\n%s", out)
	}

	// A 16px font reserves 20px tall cells; a 16px page cannot hold one.
	if _, _, err := execute(t, "", "atlas", "--page-size", "16", "hello"); err == nil {
		t.Error("cells larger than the page should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "out.pdf")
	out, _, err := execute(t, "", "render", "-o", pdf, "--highlight", "0:5", "--highlight", "13:15",
		"hello world\n\nשלום abc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, pdf) {
		t.Errorf("output does not name the file:\n%s", out)
	}
	data, err := os.ReadFile(pdf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestParseSpans(t *testing.T) {
	spans, err := parseSpans([]string{"0:5", "7:9"})
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 || spans[1].Start != 7 || spans[1].End != 9 {
		t.Errorf("spans = %+v", spans)
	}
	for _, bad := range []string{"5", "a:1", "1:b"} {
		if _, err := parseSpans([]string{bad}); err == nil {
			t.Errorf("parseSpans(%q) succeeded", bad)
		}
	}
}
