package textlayout

import (
	"log/slog"

	"github.com/gogpu/textlayout/markup"
	"github.com/gogpu/textlayout/text"
	"github.com/gogpu/textlayout/text/atlas"
	"github.com/gogpu/textlayout/text/cache"
)

// Engine is a font and layout context. It owns the shaping cache and the
// glyph atlases of its fonts, and lays out text against them.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	resolver text.FontResolver
	analyzer text.BidiAnalyzer
	legacy   text.LegacyMetrics
	cache    *cache.ShapingCache
	atlases  map[text.Font]*atlas.Atlas
	log      *slog.Logger
}

// New creates an Engine resolving fonts with resolver. A nil resolver
// renders everything with legacy metrics.
func New(resolver text.FontResolver, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.shaper == nil {
		o.shaper = text.NewGoTextShaper()
	}
	if o.legacy == nil {
		o.legacy = text.NewBitmapMetrics()
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	e := &Engine{
		resolver: resolver,
		analyzer: o.analyzer,
		legacy:   o.legacy,
		cache:    cache.New(o.shaper),
		atlases:  make(map[text.Font]*atlas.Atlas),
	}
	e.SetLogger(o.logger)
	return e
}

// SingleFont returns a resolver that maps every character to f.
func SingleFont(f text.Font) text.FontResolver {
	return text.FontResolverFunc(func(text.Style, rune) text.Font { return f })
}

// Coverage returns a resolver picking the first font that has a glyph for
// the character. Characters no font covers, line feeds included, fall back
// to legacy metrics.
func Coverage(fonts ...*text.GoTextFont) text.FontResolver {
	return text.FontResolverFunc(func(_ text.Style, r rune) text.Font {
		for _, f := range fonts {
			if f.HasGlyph(r) {
				return f
			}
		}
		return nil
	})
}

// SetLogger sets the logger of the engine and of the components it owns.
// Nil restores silence.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	e.log = l
	propagateLogger(e.cache, l)
}

// Cache returns the engine's shaping cache.
func (e *Engine) Cache() *cache.ShapingCache {
	return e.cache
}

// Layout splits src into runs and lays them out for the base direction.
func (e *Engine) Layout(src text.Source, base text.Direction) (*text.ShapedText, error) {
	runs := text.SplitRuns(src, e.resolver)
	b := text.Builder{
		Analyzer: e.analyzer,
		Shaping:  e.cache,
		Legacy:   e.legacy,
		Log:      e.log,
	}
	return b.Build(runs, base)
}

// LayoutString lays out s with a single style.
func (e *Engine) LayoutString(s string, style text.Style, base text.Direction) (*text.ShapedText, error) {
	return e.Layout(text.NewStyledString(s, style), base)
}

// LayoutMarkup parses formatting codes in s and lays out the plain text.
func (e *Engine) LayoutMarkup(s string, style text.Style, base text.Direction) (*Paragraph, error) {
	m, err := markup.Parse(s, style)
	if err != nil {
		return nil, err
	}
	shaped, err := e.Layout(m.Styled, base)
	if err != nil {
		return nil, err
	}
	return &Paragraph{Text: shaped, Markup: m}, nil
}

// Wrap breaks t into lines no wider than maxWidth at Unicode line-break
// opportunities.
func (e *Engine) Wrap(t *text.ShapedText, maxWidth float64, opts text.WrapOptions) []text.Line {
	lines := text.NewShapedTextWrapper(t, maxWidth, opts).Lines()
	e.log.Debug("textlayout: wrapped", "chars", t.Len(), "lines", len(lines), "maxWidth", maxWidth)
	return lines
}

// RegisterAtlas attaches a built atlas to f, replacing any previous one.
func (e *Engine) RegisterAtlas(f text.Font, a *atlas.Atlas) {
	e.atlases[f] = a
}

// Atlas returns the atlas registered for f.
func (e *Engine) Atlas(f text.Font) (*atlas.Atlas, bool) {
	a, ok := e.atlases[f]
	return a, ok
}

// NewAtlasBuilder returns an atlas builder logging through the engine.
func (e *Engine) NewAtlasBuilder(pageSize int) (*atlas.Builder, error) {
	b, err := atlas.NewBuilder(pageSize)
	if err != nil {
		return nil, err
	}
	propagateLogger(b, e.log)
	return b, nil
}

// Reload handles a font or resource reload: every shaping result and atlas
// is dropped. Previously built ShapedText values stay valid.
func (e *Engine) Reload() {
	n := len(e.atlases)
	e.cache.Clear()
	e.atlases = make(map[text.Font]*atlas.Atlas)
	e.log.Info("textlayout: reload", "atlases", n)
}
