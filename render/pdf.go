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

package render

import (
	"fmt"
	stdcolor "image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/labelmap"
)

// WritePDF writes the label map as a single page PDF file, with one PDF
// unit per pixel.  Labels are filled outlines in the grey level of their
// ink, drawn in the same order as by Render.  Transparency is not
// represented: labels are always opaque.
func WritePDF(fname string, points []labelmap.Point, hl labelmap.Highlighting, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	face, labels, err := prepare(points, hl, opts)
	if err != nil {
		return err
	}

	var placeholder *path.Data
	if opts.Anonymize {
		placeholder, err = face.Outline(opts.Placeholder)
		if err != nil {
			return err
		}
	}

	w, h := float64(opts.Width), float64(opts.Height)
	paper := &pdf.Rectangle{URx: w, URy: h}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	bg := gray(opts.Background)
	page.SetFillColor(bg)
	page.Rectangle(0, 0, w, h)
	page.Fill()

	// PDF puts the origin at the bottom-left, the labels use top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, h})

	if opts.Halo > 0 {
		page.SetStrokeColor(bg)
		page.SetLineWidth(opts.Halo)
		page.SetLineJoin(graphics.LineJoinRound)
		page.SetLineCap(graphics.LineCapRound)
	}

	log := opts.logger()
	for i, l := range labels {
		if opts.ProgressEvery > 0 && i%opts.ProgressEvery == 0 {
			log.Info("writing labels", "done", i, "total", len(labels))
		}

		outline := placeholder
		if outline == nil {
			outline, err = face.Outline(l.text)
			if err != nil {
				page.Close()
				return fmt.Errorf("label %d: %w", i, err)
			}
		}
		if len(outline.Cmds) == 0 {
			continue
		}

		if l.highlighted && opts.Halo > 0 {
			tracePath(page, outline, l.x, l.y)
			page.Stroke()
		}
		page.SetFillColor(gray(l.ink))
		tracePath(page, outline, l.x, l.y)
		page.Fill()
	}

	return page.Close()
}

// tracePath adds p, moved by (dx, dy), to the current PDF path.
// Quadratic segments are converted to cubic ones.
func tracePath(page *document.Page, p *path.Data, dx, dy float64) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X+dx, pts[0].Y+dy)
		case path.CmdLineTo:
			page.LineTo(pts[0].X+dx, pts[0].Y+dy)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X+dx, pts[0].Y+dy, pts[1].X+dx, pts[1].Y+dy, pts[2].X+dx, pts[2].Y+dy)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// gray converts c to a PDF grey level.
func gray(c stdcolor.Color) color.Color {
	g := stdcolor.GrayModel.Convert(c).(stdcolor.Gray)
	return color.DeviceGray(float64(g.Y) / 255)
}
