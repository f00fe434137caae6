// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws laid-out text for inspection.
//
// Rendering is split in two steps. A Composer turns paragraphs of
// text.ShapedText into a Scene, a page-by-page list of rectangles, lines
// and strings in layout pixels. A PDFRenderer then replays the Scene into a
// PDF document with github.com/tdewolff/canvas.
//
// The output shows the layout rather than final typography: every glyph is
// outlined in the color of its direction, highlight ranges are filled behind
// the text and each line gets its baseline. Characters are drawn with the
// font given to the renderer, placed at the pen positions computed by the
// layout.
//
// # Usage
//
//	st, _ := engine.LayoutString("Hello, שלום", text.Style{}, text.DirectionAuto)
//	lines := engine.Wrap(st, 300, text.WrapOptions{})
//
//	scene := render.NewScene(595, 842)
//	comp := render.NewComposer(scene, render.DefaultStyle())
//	_ = comp.Add(render.Paragraph{Text: st, Lines: lines, Highlights: []render.Span{{Start: 0, End: 5}}})
//
//	r, _ := render.NewPDFRenderer(render.PDFOptions{FontData: goregular.TTF})
//	_ = r.Render(w, scene)
package render
