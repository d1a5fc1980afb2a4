// seehuhn.de/go/labelmap - render labelled scatter plots
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package render draws labelled points as text on a raster image.
//
// Every label is drawn with its top-left corner at the pixel position of
// its point.  Labels which are not highlighted are drawn first, in input
// order, followed by the highlighted labels, again in input order.  If two
// highlighted labels overlap, the one later in the input is on top.
package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/labelmap"
	"seehuhn.de/go/labelmap/glyph"
	"seehuhn.de/go/labelmap/raster"
)

// label is a point, ready to be drawn.
type label struct {
	text        string
	x, y        float64 // pixel position of the top-left corner
	highlighted bool
	ink         color.RGBA
}

// Render draws the points onto a new image.
//
// If opts is nil, DefaultOptions() is used.  A nil hl is the same as
// labelmap.None{}.  The options and the font are checked before the
// points, and no drawing happens unless all checks pass.
func Render(points []labelmap.Point, hl labelmap.Highlighting, opts *Options) (*image.RGBA, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	face, labels, err := prepare(points, hl, opts)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	bg := opaque(opts.Background)
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	var c compositor
	if opts.Transparency == 0 {
		c = &directCompositor{canvas: canvas, background: bg}
	} else {
		c = newMaskCompositor(canvas, opts.Transparency, singleInk(labels))
	}

	log := opts.logger()
	clip := rect.Rect{URx: float64(opts.Width), URy: float64(opts.Height)}
	r := raster.NewRasterizer(clip)

	var placeholder *path.Data
	if opts.Anonymize {
		placeholder, err = face.Outline(opts.Placeholder)
		if err != nil {
			return nil, err
		}
	}

	for i, l := range labels {
		if opts.ProgressEvery > 0 && i%opts.ProgressEvery == 0 {
			log.Info("drawing labels", "done", i, "total", len(labels))
		}

		outline := placeholder
		if outline == nil {
			outline, err = face.Outline(l.text)
			if err != nil {
				return nil, fmt.Errorf("label %d: %w", i, err)
			}
		}

		r.Reset(clip)
		r.CTM = matrix.Matrix{1, 0, 0, 1, l.x, l.y}
		if l.highlighted && opts.Halo > 0 {
			r.Width = opts.Halo
			r.Join = graphics.LineJoinRound
			r.Cap = graphics.LineCapRound
			r.Stroke(outline, c.halo)
		}
		c.setInk(l.ink)
		r.FillNonZero(outline, c.paint)
	}

	log.Info("compositing", "labels", len(labels))
	c.finish()
	return canvas, nil
}

// prepare checks the options, loads the font and puts the points into
// drawing order.
func prepare(points []labelmap.Point, hl labelmap.Highlighting, opts *Options) (*glyph.Face, []label, error) {
	if err := opts.check(); err != nil {
		return nil, nil, err
	}
	face, err := opts.face()
	if err != nil {
		return nil, nil, err
	}
	if hl == nil {
		hl = labelmap.None{}
	}
	labels, err := layout(points, hl, opts)
	if err != nil {
		return nil, nil, err
	}
	return face, labels, nil
}

// layout maps the points to pixel coordinates and resolves their styles.
// The result is in drawing order.
func layout(points []labelmap.Point, hl labelmap.Highlighting, opts *Options) ([]label, error) {
	texts := make([]string, len(points))
	for i, p := range points {
		text, err := labelmap.NormalizeLabel(p.Label)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		texts[i] = text
	}

	w, err := labelmap.NewWindow(points, opts.Margin, opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	labels := make([]label, 0, len(points))
	var top []label
	for i, p := range points {
		pos := w.ToPixel(p.X, p.Y)
		l := label{text: texts[i], x: pos.X, y: pos.Y}
		if hl.IsHighlighted(texts[i]) {
			l.highlighted = true
			l.ink = opaque(hl.Ink(texts[i], opts.HighlightInk))
		} else {
			l.ink = opaque(hl.Ink(texts[i], opts.Ink))
		}
		if opts.Anonymize {
			l.text = opts.Placeholder
		}

		if l.highlighted {
			top = append(top, l)
		} else {
			labels = append(labels, l)
		}
	}
	return append(labels, top...), nil
}

// opaque converts c to an opaque RGBA colour, dropping the alpha channel.
func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}
}

// singleInk reports whether all labels use the same colour.
func singleInk(labels []label) bool {
	for i := 1; i < len(labels); i++ {
		if labels[i].ink != labels[0].ink {
			return false
		}
	}
	return true
}
