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
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke paints the outline of p, using Width, Cap, Join and MiterLimit.
//
// The stroke is built as a set of simple polygons: one rectangle per
// flattened segment, plus one polygon per join and per cap.  All polygons
// are given the same orientation and are filled together using the
// nonzero rule, so that overlaps are painted only once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	d := r.Width / 2
	if d <= 0 {
		return
	}

	r.flattenSubpaths(p)
	r.pieces = r.pieces[:0]
	r.pieceStart = r.pieceStart[:0]
	for i := range r.flatStart {
		r.strokeSubpath(r.subpath(i), r.flatClosed[i], d)
	}

	r.startEdges()
	for i := range r.pieceStart {
		poly := r.piece(i)
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.scan(nonZero, emit)
}

// flattenSubpaths converts p into polygonal subpaths.  Consecutive
// duplicate vertices are dropped.
func (r *Rasterizer) flattenSubpaths(p *path.Data) {
	r.flat = r.flat[:0]
	r.flatStart = r.flatStart[:0]
	r.flatClosed = r.flatClosed[:0]

	open := false
	begin := func(pt vec.Vec2) {
		r.flatStart = append(r.flatStart, len(r.flat))
		r.flatClosed = append(r.flatClosed, false)
		r.flat = append(r.flat, pt)
		open = true
	}
	lineTo := func(_, b vec.Vec2) {
		if b.Sub(r.flat[len(r.flat)-1]).Length() < zeroLengthThreshold {
			return
		}
		r.flat = append(r.flat, b)
	}

	var cur vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		if !open && cmd != path.CmdMoveTo && cmd != path.CmdClose {
			// drawing after ClosePath starts a new subpath at the
			// previous start point
			begin(cur)
		}
		switch cmd {
		case path.CmdMoveTo:
			cur = p.Coords[k]
			begin(cur)
			k++
		case path.CmdLineTo:
			lineTo(cur, p.Coords[k])
			cur = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, p.Coords[k], p.Coords[k+1], lineTo)
			cur = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(cur, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			cur = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if open {
				last := len(r.flatStart) - 1
				r.flatClosed[last] = true
				cur = r.flat[r.flatStart[last]]
				open = false
			}
		}
	}
}

// subpath returns the vertices of the i-th flattened subpath.
func (r *Rasterizer) subpath(i int) []vec.Vec2 {
	end := len(r.flat)
	if i+1 < len(r.flatStart) {
		end = r.flatStart[i+1]
	}
	return r.flat[r.flatStart[i]:end]
}

// piece returns the vertices of the i-th outline polygon.
func (r *Rasterizer) piece(i int) []vec.Vec2 {
	end := len(r.pieces)
	if i+1 < len(r.pieceStart) {
		end = r.pieceStart[i+1]
	}
	return r.pieces[r.pieceStart[i]:end]
}

func (r *Rasterizer) strokeSubpath(pts []vec.Vec2, closed bool, d float64) {
	n := len(pts)
	if closed && n > 1 && pts[n-1].Sub(pts[0]).Length() < zeroLengthThreshold {
		n--
		pts = pts[:n]
	}

	if n == 1 {
		// A subpath without direction: only round and square caps
		// produce output.
		switch r.Cap {
		case graphics.LineCapRound:
			r.addCircle(pts[0], d)
		case graphics.LineCapSquare:
			r.addCap(pts[0], vec.Vec2{X: 1, Y: 0}, d)
			r.addCap(pts[0], vec.Vec2{X: -1, Y: 0}, d)
		}
		return
	}

	for j := 0; j+1 < n; j++ {
		r.addSegment(pts[j], pts[j+1], d)
	}

	if closed {
		r.addSegment(pts[n-1], pts[0], d)
		for j := range n {
			prev := pts[(j+n-1)%n]
			next := pts[(j+1)%n]
			r.addJoin(pts[j], direction(prev, pts[j]), direction(pts[j], next), d)
		}
		return
	}

	for j := 1; j+1 < n; j++ {
		r.addJoin(pts[j], direction(pts[j-1], pts[j]), direction(pts[j], pts[j+1]), d)
	}
	r.addCap(pts[0], direction(pts[1], pts[0]), d)
	r.addCap(pts[n-1], direction(pts[n-2], pts[n-1]), d)
}

// direction returns the unit vector pointing from a to b.
func direction(a, b vec.Vec2) vec.Vec2 {
	v := b.Sub(a)
	return v.Mul(1 / v.Length())
}

// normal returns t rotated by 90 degrees.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

// addSegment adds the rectangle swept by the segment a-b.
func (r *Rasterizer) addSegment(a, b vec.Vec2, d float64) {
	n := normal(direction(a, b)).Mul(d)
	start := len(r.pieces)
	r.pieces = append(r.pieces, a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
	r.endPiece(start)
}

// addJoin fills the gap on the outer side of the corner at p, where the
// direction changes from t1 to t2.
func (r *Rasterizer) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cos := t1.Dot(t2)
	sin := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(sin) < collinearityThreshold && cos > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addCircle(p, d)
		return
	}

	// the outer side of the corner is opposite to the turn direction
	side := -1.0
	if sin < 0 {
		side = 1
	}
	n1 := normal(t1).Mul(side * d)
	n2 := normal(t2).Mul(side * d)

	start := len(r.pieces)
	r.pieces = append(r.pieces, p, p.Add(n1))
	if r.Join == graphics.LineJoinMiter && cos > cuspCosineThreshold {
		sinHalf := math.Sqrt((1 + cos) / 2)
		if 1/sinHalf <= r.MiterLimit+miterEpsilon {
			bisector := n1.Add(n2)
			bisector = bisector.Mul(d / sinHalf / bisector.Length())
			r.pieces = append(r.pieces, p.Add(bisector))
		}
	}
	r.pieces = append(r.pieces, p.Add(n2))
	r.endPiece(start)
}

// addCap adds the cap at the end point p of an open subpath.
// t points away from the stroked line.
func (r *Rasterizer) addCap(p, t vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addCircle(p, d)
	case graphics.LineCapSquare:
		n := normal(t).Mul(d)
		ext := t.Mul(d)
		start := len(r.pieces)
		r.pieces = append(r.pieces, p.Add(n), p.Add(n).Add(ext), p.Sub(n).Add(ext), p.Sub(n))
		r.endPiece(start)
	}
}

// addCircle adds a polygon approximating the circle of the given radius.
// The number of vertices depends on the size of the circle in device
// space.
func (r *Rasterizer) addCircle(center vec.Vec2, radius float64) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length(),
	)

	// A chord spanning angle θ deviates from the circle by r(1-cos(θ/2)).
	n := 4
	if devRadius > 0 {
		step := 2 * math.Acos(max(-1, min(1, 1-r.Flatness/devRadius)))
		if step > 0 {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	start := len(r.pieces)
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.pieces = append(r.pieces, center.Add(vec.Vec2{
			X: radius * math.Cos(phi),
			Y: radius * math.Sin(phi),
		}))
	}
	r.endPiece(start)
}

// endPiece finishes the polygon starting at r.pieces[start].  Polygons
// with (almost) no area are discarded, all others are oriented to have
// positive signed area.
func (r *Rasterizer) endPiece(start int) {
	poly := r.pieces[start:]
	a := signedArea(poly)
	if len(poly) < 3 || math.Abs(a) < zeroAreaThreshold {
		r.pieces = r.pieces[:start]
		return
	}
	if a < 0 {
		slices.Reverse(poly)
	}
	r.pieceStart = append(r.pieceStart, start)
}

// signedArea computes the signed area of a polygon using the shoelace
// formula.
func signedArea(poly []vec.Vec2) float64 {
	var sum float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Tolerances used for stroking.
const (
	// zeroLengthThreshold is the minimum length of a flattened segment.
	zeroLengthThreshold = 1e-10

	// zeroAreaThreshold is the minimum area of an outline polygon.
	zeroAreaThreshold = 1e-12

	// collinearityThreshold detects corners which need no join.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself,
	// cos(179.43°) ≈ -0.9999.  Such corners are beveled.
	cuspCosineThreshold = -0.9999

	miterEpsilon = 1e-10
)
