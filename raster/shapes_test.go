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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// rectangle builds a closed axis-aligned rectangle.
func rectangle(x0, y0, x1, y1 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(vec.Vec2{X: x0, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y0}).
		LineTo(vec.Vec2{X: x1, Y: y1}).
		LineTo(vec.Vec2{X: x0, Y: y1}).
		Close()
}

// fivePointStar builds a self-intersecting five-pointed star.  The centre
// pentagon has winding number 2.
func fivePointStar(cx, cy, r float64) *path.Data {
	var pts [5]vec.Vec2
	for i := range pts {
		angle := float64(i)*2*math.Pi/5 - math.Pi/2
		pts[i] = vec.Vec2{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	p := (&path.Data{}).MoveTo(pts[0])
	for _, i := range []int{2, 4, 1, 3} {
		p = p.LineTo(pts[i])
	}
	return p.Close()
}

// appendCircle adds a circle made of four cubic Bézier arcs to p.
func appendCircle(p *path.Data, cx, cy, r float64, clockwise bool) {
	const k = 0.5522847498 // control point distance for quarter circles
	kr := k * r
	s := 1.0
	if clockwise {
		s = -1
	}

	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, vec.Vec2{X: cx, Y: cy - r})
	quarters := [4][3]vec.Vec2{
		{{X: cx + s*kr, Y: cy - r}, {X: cx + s*r, Y: cy - kr}, {X: cx + s*r, Y: cy}},
		{{X: cx + s*r, Y: cy + kr}, {X: cx + s*kr, Y: cy + r}, {X: cx, Y: cy + r}},
		{{X: cx - s*kr, Y: cy + r}, {X: cx - s*r, Y: cy + kr}, {X: cx - s*r, Y: cy}},
		{{X: cx - s*r, Y: cy - kr}, {X: cx - s*kr, Y: cy - r}, {X: cx, Y: cy - r}},
	}
	for _, q := range quarters {
		p.Cmds = append(p.Cmds, path.CmdCubeTo)
		p.Coords = append(p.Coords, q[0], q[1], q[2])
	}
	p.Cmds = append(p.Cmds, path.CmdClose)
}

// ring builds an "O" shape: outer circle one way, inner circle the other.
func ring(cx, cy, outer, inner float64) *path.Data {
	p := &path.Data{}
	appendCircle(p, cx, cy, outer, false)
	appendCircle(p, cx, cy, inner, true)
	return p
}

// collect records coverage into a dense grayscale buffer.
type collect struct {
	w, h int
	pix  []float32
	rows map[int]bool
}

func newCollect(w, h int) *collect {
	return &collect{w: w, h: h, pix: make([]float32, w*h), rows: map[int]bool{}}
}

func (c *collect) emit(y, xMin int, coverage []float32) {
	c.rows[y] = true
	copy(c.pix[y*c.w+xMin:], coverage)
}

func (c *collect) at(x, y int) float32 {
	return c.pix[y*c.w+x]
}

func (c *collect) total() float64 {
	var sum float64
	for _, v := range c.pix {
		sum += float64(v)
	}
	return sum
}
