// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image/color"
)

// Scene is a retained list of drawing commands split into pages.
//
// Coordinates are layout pixels with the origin at the top left of the
// page and y growing downwards. A Renderer maps them onto its output.
//
// Example:
//
//	scene := render.NewScene(595, 842)
//	scene.SetFillColor(color.RGBA{255, 255, 0, 255})
//	scene.FillRect(10, 10, 100, 20)
//	scene.Text(10, 26, "hello")
//
//	r, _ := render.NewPDFRenderer(render.PDFOptions{FontData: ttf})
//	err := r.Render(w, scene)
type Scene struct {
	width, height float64

	// pages stores the command stream of every page; the last one is current.
	pages [][]drawCommand

	currentFillColor   color.RGBA
	currentStrokeColor color.RGBA
	currentStrokeWidth float64
}

// drawCommand is a single drawing operation.
type drawCommand struct {
	op    drawOp
	x, y  float64
	w, h  float64
	color color.RGBA
	width float64
	text  string
}

// drawOp is the type of drawing operation.
type drawOp uint8

const (
	opFillRect drawOp = iota
	opStrokeRect
	opLine
	opText
)

// String returns the operation name.
func (op drawOp) String() string {
	switch op {
	case opFillRect:
		return "FillRect"
	case opStrokeRect:
		return "StrokeRect"
	case opLine:
		return "Line"
	case opText:
		return "Text"
	default:
		return "Unknown"
	}
}

// NewScene creates an empty single-page Scene with pages of the given size
// in layout pixels.
func NewScene(width, height float64) *Scene {
	s := &Scene{width: width, height: height}
	s.Reset()
	return s
}

// Reset clears the scene for reuse.
func (s *Scene) Reset() {
	s.pages = [][]drawCommand{make([]drawCommand, 0, 16)}
	s.currentFillColor = color.RGBA{A: 255}
	s.currentStrokeColor = color.RGBA{A: 255}
	s.currentStrokeWidth = 1
}

// Size returns the page size in layout pixels.
func (s *Scene) Size() (width, height float64) {
	return s.width, s.height
}

// NewPage starts a new page. Later commands go to it.
func (s *Scene) NewPage() {
	s.pages = append(s.pages, make([]drawCommand, 0, 16))
}

// NumPages returns the number of pages, at least one.
func (s *Scene) NumPages() int {
	return len(s.pages)
}

// SetFillColor sets the color for subsequent fills and text.
func (s *Scene) SetFillColor(c color.RGBA) {
	s.currentFillColor = c
}

// SetStrokeColor sets the color for subsequent strokes.
func (s *Scene) SetStrokeColor(c color.RGBA) {
	s.currentStrokeColor = c
}

// SetStrokeWidth sets the width for subsequent strokes, in layout pixels.
func (s *Scene) SetStrokeWidth(width float64) {
	s.currentStrokeWidth = width
}

// FillRect fills a rectangle with the fill color.
func (s *Scene) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.push(drawCommand{op: opFillRect, x: x, y: y, w: w, h: h, color: s.currentFillColor})
}

// StrokeRect outlines a rectangle with the stroke color.
func (s *Scene) StrokeRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.push(drawCommand{op: opStrokeRect, x: x, y: y, w: w, h: h,
		color: s.currentStrokeColor, width: s.currentStrokeWidth})
}

// Line strokes a segment from (x0, y0) to (x1, y1).
func (s *Scene) Line(x0, y0, x1, y1 float64) {
	s.push(drawCommand{op: opLine, x: x0, y: y0, w: x1 - x0, h: y1 - y0,
		color: s.currentStrokeColor, width: s.currentStrokeWidth})
}

// Text draws str with its baseline starting at (x, y) in the fill color.
func (s *Scene) Text(x, y float64, str string) {
	if str == "" {
		return
	}
	s.push(drawCommand{op: opText, x: x, y: y, color: s.currentFillColor, text: str})
}

func (s *Scene) push(cmd drawCommand) {
	last := len(s.pages) - 1
	s.pages[last] = append(s.pages[last], cmd)
}

// IsEmpty returns true if no page has any commands.
func (s *Scene) IsEmpty() bool {
	return s.CommandCount() == 0
}

// CommandCount returns the number of drawing commands on all pages.
func (s *Scene) CommandCount() int {
	n := 0
	for _, p := range s.pages {
		n += len(p)
	}
	return n
}

// pageCommands returns the commands of page i.
func (s *Scene) pageCommands(i int) []drawCommand {
	return s.pages[i]
}
