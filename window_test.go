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
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestWindowMargin(t *testing.T) {
	points := []Point{
		{"a", 0, 0},
		{"b", 10, 20},
		{"c", 5, 5},
	}
	w, err := NewWindow(points, 0.05, 3000, 1800)
	if err != nil {
		t.Fatal(err)
	}

	want := rect.Rect{LLx: -0.5, LLy: -1, URx: 10.5, URy: 21}
	const eps = 1e-12
	if math.Abs(w.Data.LLx-want.LLx) > eps || math.Abs(w.Data.URx-want.URx) > eps ||
		math.Abs(w.Data.LLy-want.LLy) > eps || math.Abs(w.Data.URy-want.URy) > eps {
		t.Errorf("expected window %v, got %v", want, w.Data)
	}
}

// TestWindowNegativeBounds checks that the bounding box is not anchored
// at the origin when all points are far away from it.
func TestWindowNegativeBounds(t *testing.T) {
	points := []Point{{"a", 100, -50}, {"b", 110, -40}}
	w, err := NewWindow(points, 0, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if w.Data.LLx != 100 || w.Data.URx != 110 || w.Data.LLy != -50 || w.Data.URy != -40 {
		t.Errorf("unexpected window %v", w.Data)
	}
	p := w.ToPixel(100, -50)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected (0, 0), got %v", p)
	}
	p = w.ToPixel(110, -40)
	if p.X != 100 || p.Y != 100 {
		t.Errorf("expected (100, 100), got %v", p)
	}
}

func TestWindowErrors(t *testing.T) {
	cases := []struct {
		name   string
		points []Point
		want   error
	}{
		{"empty", nil, ErrNoPoints},
		{"single", []Point{{"x", 1, 1}}, ErrDegenerate},
		{"zero_y_span", []Point{{"x", 0, 0}, {"y", 10, 0}}, ErrDegenerate},
		{"zero_x_span", []Point{{"x", 3, 0}, {"y", 3, 7}}, ErrDegenerate},
		{"nan", []Point{{"x", 0, 0}, {"y", math.NaN(), 1}}, ErrNonFinite},
		{"inf", []Point{{"x", 0, math.Inf(-1)}, {"y", 1, 1}}, ErrNonFinite},
		{"span_overflow", []Point{{"x", -1e308, -1e308}, {"y", 1e308, 1e308}}, ErrNonFinite},
		{"margin_overflow", []Point{{"x", 0, 0}, {"y", 1.75e308, 1.75e308}}, ErrNonFinite},
		{"tiny_span", []Point{{"x", 0, 0}, {"y", 5e-324, 5e-324}}, ErrNonFinite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewWindow(tc.points, 0.05, 100, 100)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestWindowRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	points := make([]Point, 50)
	for i := range points {
		points[i] = Point{Label: "p", X: rng.NormFloat64() * 40, Y: rng.NormFloat64()*3 + 7}
	}
	w, err := NewWindow(points, 0.05, 3000, 2000)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range points {
		px := w.ToPixel(p.X, p.Y)
		if px.X < 0 || px.X > 3000 || px.Y < 0 || px.Y > 2000 {
			t.Errorf("point %v maps outside the canvas: %v", p, px)
		}
		x, y := w.FromPixel(px)
		if math.Abs(x-p.X) > 1e-9 || math.Abs(y-p.Y) > 1e-9 {
			t.Errorf("round trip of (%g, %g) gave (%g, %g)", p.X, p.Y, x, y)
		}
	}
}

func TestWindowMatrix(t *testing.T) {
	points := []Point{{"a", -3, 2}, {"b", 5, 9}, {"c", 1, 4}}
	w, err := NewWindow(points, 0.1, 640, 480)
	if err != nil {
		t.Fatal(err)
	}
	m := w.Matrix()
	for _, p := range points {
		want := w.ToPixel(p.X, p.Y)
		got := vec.Vec2{
			X: m[0]*p.X + m[2]*p.Y + m[4],
			Y: m[1]*p.X + m[3]*p.Y + m[5],
		}
		if got.Sub(want).Length() > 1e-9 {
			t.Errorf("%s: matrix gives %v, ToPixel gives %v", p.Label, got, want)
		}
	}
}
