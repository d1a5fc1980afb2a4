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

package labelmap

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Window maps data coordinates to pixel coordinates.
//
// The x axis of the data maps to [0, Width] and the y axis maps to
// [0, Height].  Both axes are scaled independently, so the aspect ratio of
// the data is not preserved.  Pixel y grows downwards, the same as data y.
type Window struct {
	// Data is the visible region in data coordinates, including the margin.
	Data rect.Rect

	Width, Height int
}

// NewWindow computes the bounding box of points and expands it by
// margin times the extent on each side.
//
// The points must be finite and must span a positive range on both axes.
func NewWindow(points []Point, margin float64, width, height int) (*Window, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	var bbox rect.Rect
	for i, p := range points {
		if !p.IsFinite() {
			return nil, fmt.Errorf("point %d (%q): %w", i, p.Label, ErrNonFinite)
		}
		if i == 0 {
			bbox = rect.Rect{LLx: p.X, LLy: p.Y, URx: p.X, URy: p.Y}
			continue
		}
		bbox.LLx = min(bbox.LLx, p.X)
		bbox.URx = max(bbox.URx, p.X)
		bbox.LLy = min(bbox.LLy, p.Y)
		bbox.URy = max(bbox.URy, p.Y)
	}

	dx := bbox.URx - bbox.LLx
	dy := bbox.URy - bbox.LLy
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("%w: x span %g, y span %g", ErrDegenerate, dx, dy)
	}
	if math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return nil, fmt.Errorf("%w: x span %g, y span %g", ErrNonFinite, dx, dy)
	}

	bbox.LLx -= dx * margin
	bbox.URx += dx * margin
	bbox.LLy -= dy * margin
	bbox.URy += dy * margin

	w := &Window{Data: bbox, Width: width, Height: height}
	m := w.Matrix()
	for _, x := range append([]float64{bbox.URx - bbox.LLx, bbox.URy - bbox.LLy}, m[:]...) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: data range %v cannot be mapped to pixels",
				ErrNonFinite, bbox)
		}
	}
	return w, nil
}

// ToPixel maps a data point to pixel coordinates.
func (w *Window) ToPixel(x, y float64) vec.Vec2 {
	m := w.Matrix()
	return vec.Vec2{
		X: m[0]*x + m[2]*y + m[4],
		Y: m[1]*x + m[3]*y + m[5],
	}
}

// FromPixel is the inverse of ToPixel.
func (w *Window) FromPixel(p vec.Vec2) (x, y float64) {
	x = w.Data.LLx + p.X/float64(w.Width)*(w.Data.URx-w.Data.LLx)
	y = w.Data.LLy + p.Y/float64(w.Height)*(w.Data.URy-w.Data.LLy)
	return x, y
}

// Matrix returns the affine map from data to pixel coordinates.
func (w *Window) Matrix() matrix.Matrix {
	sx := float64(w.Width) / (w.Data.URx - w.Data.LLx)
	sy := float64(w.Height) / (w.Data.URy - w.Data.LLy)
	return matrix.Matrix{sx, 0, 0, sy, -w.Data.LLx * sx, -w.Data.LLy * sy}
}
