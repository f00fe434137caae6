package textlayout

import (
	"log/slog"

	"github.com/gogpu/textlayout/text"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Default go-text shaper and x/text bidi
//	engine := textlayout.New(resolver)
//
//	// Custom shaper (dependency injection)
//	engine := textlayout.New(resolver, textlayout.WithShaper(myShaper))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	shaper   text.Shaper
	analyzer text.BidiAnalyzer
	legacy   text.LegacyMetrics
	logger   *slog.Logger
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		shaper:   nil, // Will be set to GoTextShaper if nil
		analyzer: text.UnicodeBidi{},
		legacy:   nil, // Will be set to BitmapMetrics if nil
		logger:   nil, // Will use Logger() if nil
	}
}

// WithShaper sets the shaper used on cache misses.
func WithShaper(s text.Shaper) Option {
	return func(o *engineOptions) {
		o.shaper = s
	}
}

// WithBidiAnalyzer sets the bidi analyzer.
func WithBidiAnalyzer(a text.BidiAnalyzer) Option {
	return func(o *engineOptions) {
		if a != nil {
			o.analyzer = a
		}
	}
}

// WithLegacyMetrics sets the metrics for characters without a shaping font.
//
// Example:
//
//	engine := textlayout.New(resolver,
//	    textlayout.WithLegacyMetrics(&text.BitmapMetrics{Face: myFace, BoldOffset: 1}))
func WithLegacyMetrics(m text.LegacyMetrics) Option {
	return func(o *engineOptions) {
		o.legacy = m
	}
}

// WithLogger sets the engine's logger instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}
