// Package textlayout lays out styled, mixed-direction text for rendering.
//
// # Overview
//
// textlayout turns a stream of characters annotated with per-character style
// into visually ordered, shaped glyph runs, and answers the questions a text
// widget asks of them: how wide is it, which character is under the mouse,
// where does the caret go, which rectangles does a selection cover and where
// do the lines break.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/textlayout"
//	    "github.com/gogpu/textlayout/text"
//	)
//
//	f, _ := text.ParseGoTextFont("Go Regular", goregular.TTF, 16)
//	engine := textlayout.New(textlayout.SingleFont(f))
//
//	src := text.NewStyledString("Hello, עולם", text.Style{})
//	shaped, _ := engine.Layout(src, text.DirectionAuto)
//	lines := engine.Wrap(shaped, 200, text.WrapOptions{})
//
// # Architecture
//
// The library is organized into:
//   - text: core types, run splitting, run groups, bidi, shaping results and queries
//   - text/cache: per-font shaping memoization
//   - text/atlas: glyph rectangle packing into fixed-size pages
//   - text/indexmap: index conversion around invisible formatting markers
//   - markup: section-sign formatting codes
//   - render: debug PDF output
//   - cmd/textlayout: command-line front end
//
// Coverage builds a resolver from several fonts, choosing per character the
// first font that has a glyph for it.
//
// # Logging
//
// textlayout produces no log output by default. Call SetLogger to enable it.
//
// # Concurrency
//
// An Engine and everything it owns is meant for a single goroutine.
// Only SetLogger and Logger are safe for concurrent use.
package textlayout
