// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// ptPerMM converts millimetres to points.
const ptPerMM = 72 / 25.4

// PDFOptions configures a PDFRenderer.
type PDFOptions struct {
	// PixelSize is the printed size of one layout pixel in millimetres.
	// Zero means 0.25.
	PixelSize float64

	// FontData is a TrueType or OpenType font used for Text commands.
	// Without it, Text commands are skipped.
	FontData []byte

	// FontSize is the character size in layout pixels. Zero means 16.
	FontSize float64

	Title   string
	Creator string
}

// PDFRenderer writes Scenes as PDF documents using github.com/tdewolff/canvas.
type PDFRenderer struct {
	opts   PDFOptions
	family *canvas.FontFamily
	log    *slog.Logger
}

// NewPDFRenderer creates a renderer, loading opts.FontData if present.
func NewPDFRenderer(opts PDFOptions) (*PDFRenderer, error) {
	if opts.PixelSize <= 0 {
		opts.PixelSize = 0.25
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 16
	}
	r := &PDFRenderer{opts: opts, log: slog.New(slog.DiscardHandler)}
	if len(opts.FontData) > 0 {
		family := canvas.NewFontFamily("textlayout")
		if err := family.LoadFont(opts.FontData, 0, canvas.FontRegular); err != nil {
			return nil, fmt.Errorf("render: load font: %w", err)
		}
		r.family = family
	}
	return r, nil
}

// SetLogger sets the logger for render diagnostics. Nil discards them.
func (r *PDFRenderer) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	r.log = l
}

// Render writes every page of s to w as one PDF document.
func (r *PDFRenderer) Render(w io.Writer, s *Scene) error {
	if s == nil {
		return fmt.Errorf("render: nil scene")
	}
	pw, ph := s.Size()
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("render: invalid page size %vx%v", pw, ph)
	}
	px := r.opts.PixelSize
	width, height := pw*px, ph*px

	writer := pdf.New(w, width, height, nil)
	writer.SetInfo(r.opts.Title, "", "", "", r.opts.Creator)

	faces := make(map[color.RGBA]*canvas.FontFace)
	skipped := 0
	for i := 0; i < s.NumPages(); i++ {
		if i > 0 {
			writer.NewPage(width, height)
		}
		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV)

		for _, cmd := range s.pageCommands(i) {
			if !r.draw(ctx, cmd, faces) {
				skipped++
			}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("render: write pdf: %w", err)
	}
	r.log.Debug("render: pdf written",
		"pages", s.NumPages(), "commands", s.CommandCount(), "skipped", skipped)
	return nil
}

// draw replays one command and reports whether it was drawn.
func (r *PDFRenderer) draw(ctx *canvas.Context, cmd drawCommand, faces map[color.RGBA]*canvas.FontFace) bool {
	px := r.opts.PixelSize
	switch cmd.op {
	case opFillRect:
		ctx.SetFillColor(cmd.color)
		ctx.SetStrokeColor(color.RGBA{})
		ctx.DrawPath(cmd.x*px, cmd.y*px, canvas.Rectangle(cmd.w*px, cmd.h*px))
	case opStrokeRect:
		ctx.SetFillColor(color.RGBA{})
		ctx.SetStrokeColor(cmd.color)
		ctx.SetStrokeWidth(cmd.width * px)
		ctx.DrawPath(cmd.x*px, cmd.y*px, canvas.Rectangle(cmd.w*px, cmd.h*px))
	case opLine:
		ctx.SetFillColor(color.RGBA{})
		ctx.SetStrokeColor(cmd.color)
		ctx.SetStrokeWidth(cmd.width * px)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(cmd.w*px, cmd.h*px)
		ctx.DrawPath(cmd.x*px, cmd.y*px, p)
	case opText:
		if r.family == nil {
			return false
		}
		face, ok := faces[cmd.color]
		if !ok {
			face = r.family.Face(r.opts.FontSize*px*ptPerMM, cmd.color, canvas.FontRegular, canvas.FontNormal)
			faces[cmd.color] = face
		}
		ctx.DrawText(cmd.x*px, cmd.y*px, canvas.NewTextLine(face, cmd.text, canvas.Left))
	default:
		return false
	}
	return true
}
