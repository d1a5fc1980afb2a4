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

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// approaches lists thresholds which force the 2D buffer (A) and the
// active edge list (B) code paths.
var approaches = []struct {
	name      string
	threshold int
}{
	{"A", 1 << 30},
	{"B", 0},
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
			r.smallPathThreshold = a.threshold
			c := newCollect(10, 1)
			r.FillNonZero(trianglePath, c.emit)

			const epsilon = 1e-6
			for x := range 10 {
				expected := float32(2*x+1) / 20.0
				if math.Abs(float64(c.at(x, 0)-expected)) > epsilon {
					t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, c.at(x, 0))
				}
			}
		})
	}
}

func TestRectangleArea(t *testing.T) {
	p := rectangle(10.5, 10.25, 20.5, 30.75)
	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
			r.smallPathThreshold = a.threshold
			c := newCollect(64, 64)
			r.FillNonZero(p, c.emit)

			if got := c.total(); math.Abs(got-205) > 1e-3 {
				t.Errorf("expected area 205, got %g", got)
			}
			if got := c.at(15, 20); got != 1 {
				t.Errorf("interior pixel: expected coverage 1, got %g", got)
			}
			if got := c.at(10, 20); math.Abs(float64(got)-0.5) > 1e-6 {
				t.Errorf("left edge pixel: expected coverage 0.5, got %g", got)
			}
			if got := c.at(15, 10); math.Abs(float64(got)-0.75) > 1e-6 {
				t.Errorf("top edge pixel: expected coverage 0.75, got %g", got)
			}
			if c.rows[9] || c.rows[31] {
				t.Error("rows outside the rectangle were emitted")
			}
		})
	}
}

func TestStarFillRules(t *testing.T) {
	p := fivePointStar(32, 32, 25)
	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
			r.smallPathThreshold = a.threshold

			nz := newCollect(64, 64)
			r.FillNonZero(p, nz.emit)
			eo := newCollect(64, 64)
			r.FillEvenOdd(p, eo.emit)

			if got := nz.at(32, 32); got != 1 {
				t.Errorf("nonzero: expected centre coverage 1, got %g", got)
			}
			if got := eo.at(32, 32); got > 1e-4 {
				t.Errorf("even-odd: expected centre coverage 0, got %g", got)
			}
			if nz.total() <= eo.total() {
				t.Errorf("nonzero area %g should exceed even-odd area %g", nz.total(), eo.total())
			}
		})
	}
}

func TestRingArea(t *testing.T) {
	const outer, inner = 20.0, 12.0
	p := ring(32, 32, outer, inner)
	want := math.Pi * (outer*outer - inner*inner)
	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 64, URy: 64})
			r.smallPathThreshold = a.threshold
			c := newCollect(64, 64)
			r.FillNonZero(p, c.emit)

			// flattening to 0.25px shrinks the circles by about 1%
			if got := c.total(); math.Abs(got-want)/want > 0.02 {
				t.Errorf("expected area %.2f, got %.2f", want, got)
			}
			if got := c.at(32, 32); got > 1e-4 {
				t.Errorf("expected empty centre, got coverage %g", got)
			}
		})
	}
}

func TestClip(t *testing.T) {
	// the rectangle sticks out of the clip area on all sides
	p := rectangle(-5, -5, 15, 15)
	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{LLx: 2, LLy: 3, URx: 8, URy: 7})
			r.smallPathThreshold = a.threshold

			var area float64
			r.FillNonZero(p, func(y, xMin int, coverage []float32) {
				if y < 3 || y >= 7 || xMin < 2 || xMin+len(coverage) > 8 {
					t.Errorf("row %d [%d, %d) outside clip", y, xMin, xMin+len(coverage))
				}
				for _, c := range coverage {
					area += float64(c)
				}
			})
			if area != 24 {
				t.Errorf("expected area 24, got %g", area)
			}
		})
	}
}

func TestCTM(t *testing.T) {
	p := rectangle(0, 0, 4, 2)
	r := NewRasterizer(rect.Rect{URx: 32, URy: 32})
	r.CTM = matrix.Matrix{2, 0, 0, 2, 10, 5} // scale by 2, then move
	c := newCollect(32, 32)
	r.FillNonZero(p, c.emit)

	if got := c.total(); math.Abs(got-32) > 1e-4 {
		t.Errorf("expected area 32, got %g", got)
	}
	if c.at(10, 5) != 1 || c.at(17, 8) != 1 {
		t.Error("transformed rectangle not at the expected position")
	}
	if c.at(9, 5) != 0 || c.at(18, 5) != 0 || c.at(10, 9) != 0 {
		t.Error("coverage outside the transformed rectangle")
	}
}

func TestOpenSubpathsAreClosed(t *testing.T) {
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 8, Y: 0}).
		LineTo(vec.Vec2{X: 8, Y: 8}).
		LineTo(vec.Vec2{X: 0, Y: 8})
	r := NewRasterizer(rect.Rect{URx: 16, URy: 16})
	c := newCollect(16, 16)
	r.FillNonZero(open, c.emit)
	if got := c.total(); got != 64 {
		t.Errorf("expected area 64, got %g", got)
	}
}

func TestReset(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Matrix{3, 0, 0, 3, 1, 1}
	r.Width = 7
	r.Flatness = 2
	r.Reset(rect.Rect{URx: 20, URy: 20})

	if r.CTM != matrix.Identity || r.Width != 1 || r.Flatness != defaultFlatness ||
		r.MiterLimit != defaultMiterLimit || r.Clip.URx != 20 {
		t.Errorf("Reset did not restore the defaults: %+v", r)
	}
}
