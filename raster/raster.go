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

// Package raster converts vector outlines into anti-aliased pixel coverage.
//
// Coverage is the exact fraction of each pixel's area inside the shape,
// computed from signed edge crossings.  Results are delivered row by row
// through a callback, so the caller decides how coverage is composited.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one pixel row.  coverage[i] belongs to
// pixel (xMin+i, y).  The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates, never horizontal.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// Rasterizer computes pixel coverage for filled and stroked paths.
// Internal buffers are kept between calls, so a single Rasterizer should be
// reused for many paths.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device rectangle.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments which approximate it.  Must be positive.
	Flatness float64

	// Width is the stroke width in user space.
	Width float64

	// Cap is the shape of the ends of open subpaths when stroking.
	Cap graphics.LineCapStyle

	// Join is the shape of the corners when stroking.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the
	// stroke width.  Longer miters are drawn as bevels.
	MiterLimit float64

	// smallPathThreshold is the bounding box area, in pixels, below which
	// a full 2D accumulation buffer is used.
	smallPathThreshold int

	cover   []float32
	area    []float32
	rowUsed []bool
	edges   []edge
	active  []int

	bboxEmpty        bool
	bboxMin, bboxMax vec.Vec2 // device space bounding box of edges

	cursor, subpathStart vec.Vec2 // path walking state, user space

	// stroking
	flat       []vec.Vec2 // flattened vertices of all subpaths
	flatStart  []int      // start of each subpath in flat
	flatClosed []bool
	pieces     []vec.Vec2 // outline polygons, all with positive orientation
	pieceStart []int      // start of each polygon in pieces
}

// NewRasterizer returns a Rasterizer for the given clip rectangle.
// All other parameters are set to their defaults.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is retained.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.smallPathThreshold = smallPathThreshold

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.flat = r.flat[:0]
	r.flatStart = r.flatStart[:0]
	r.flatClosed = r.flatClosed[:0]
	r.pieces = r.pieces[:0]
	r.pieceStart = r.pieceStart[:0]
}

// FillNonZero fills p using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.fill(p, nonZero, emit)
}

// FillEvenOdd fills p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p *path.Data, emit EmitFunc) {
	r.fill(p, evenOdd, emit)
}

type fillRule int

const (
	nonZero fillRule = iota
	evenOdd
)

func (r *Rasterizer) fill(p *path.Data, rule fillRule, emit EmitFunc) {
	r.startEdges()
	r.walk(p, r.addEdge, true)
	r.scan(rule, emit)
}

// walk visits the line segments of p, after flattening curves.  If
// closeAll is set, open subpaths are closed, as required for filling.
// The segment end points are given in user space.
func (r *Rasterizer) walk(p *path.Data, seg func(a, b vec.Vec2), closeAll bool) {
	open := false
	closeSubpath := func() {
		if open && r.cursor != r.subpathStart {
			seg(r.cursor, r.subpathStart)
		}
		r.cursor = r.subpathStart
		open = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if closeAll {
				closeSubpath()
			}
			r.cursor = p.Coords[k]
			r.subpathStart = r.cursor
			open = true
			k++
		case path.CmdLineTo:
			seg(r.cursor, p.Coords[k])
			r.cursor = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(r.cursor, p.Coords[k], p.Coords[k+1], seg)
			r.cursor = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(r.cursor, p.Coords[k], p.Coords[k+1], p.Coords[k+2], seg)
			r.cursor = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			closeSubpath()
		}
	}
	if closeAll {
		closeSubpath()
	}
}

// transformLinear applies the linear part of the CTM, ignoring translation.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments.  The number of segments is chosen such that the
// distance to the curve in device space is at most r.Flatness.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, seg func(a, b vec.Vec2)) {
	// max deviation of the chord is |p0 - 2p1 + p2| / 4
	dev := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		seg(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's bound for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, seg func(a, b vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		seg(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms a user space segment to device space and appends it
// to the edge list.  Horizontal edges do not contribute and are dropped.
func (r *Rasterizer) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	lo := vec.Vec2{X: min(x0, x1), Y: min(y0, y1)}
	hi := vec.Vec2{X: max(x0, x1), Y: max(y0, y1)}
	if r.bboxEmpty {
		r.bboxMin, r.bboxMax = lo, hi
		r.bboxEmpty = false
		return
	}
	r.bboxMin = vec.Vec2{X: min(r.bboxMin.X, lo.X), Y: min(r.bboxMin.Y, lo.Y)}
	r.bboxMax = vec.Vec2{X: max(r.bboxMax.X, hi.X), Y: max(r.bboxMax.Y, hi.Y)}
}

// pixelBounds returns the pixel range touched by the edge list, clipped.
func (r *Rasterizer) pixelBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if r.bboxEmpty || len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bboxMin.X)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bboxMax.X))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bboxMin.Y)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bboxMax.Y))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// scan converts the current edge list into coverage.
func (r *Rasterizer) scan(rule fillRule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.pixelBounds()
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.scanSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.scanLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// Each pixel holds two accumulators.  cover is the signed vertical extent
// of the edge pieces inside the pixel; area is the same, weighted by the
// fraction of the pixel to the right of the piece.  Summing cover from the
// left and adding area gives the signed coverage of the pixel.  Pieces to
// the left of the buffer are folded into the first pixel.

// accumulate adds the part of e inside scanline y to cover and area,
// which are indexed by x-xMin.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), e.yMin())
	yBot := min(float64(y+1), e.yMax())
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	colA := int(math.Floor(min(xTop, xBot)))
	colB := int(math.Floor(max(xTop, xBot)))

	if colA == colB {
		xMid := (xTop + xBot) / 2
		deposit(cover, area, colA, sign*float32(yBot-yTop), xMid-float64(colA), xMin, xMax)
		return
	}

	// The piece crosses several pixel columns: split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for col := colA; col <= colB; col++ {
		if col >= xMax {
			break
		}
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
		deposit(cover, area, col, sign*float32(hi-lo), xMid-float64(col), xMin, xMax)
	}
}

// deposit records a piece of signed height c at horizontal offset frac
// inside pixel column col.
func deposit(cover, area []float32, col int, c float32, frac float64, xMin, xMax int) {
	switch {
	case col < xMin:
		cover[0] += c
		area[0] += c
	case col < xMax:
		cover[col-xMin] += c
		area[col-xMin] += c * float32(1-frac)
	}
}

// integrate turns one row of accumulators into coverage values, in place.
func integrate(cover, area []float32, rule fillRule) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		if rule == evenOdd {
			v -= 2 * float32(int(v/2))
			if v > 1 {
				v = 2 - v
			}
		} else if v > 1 {
			v = 1
		}
		cover[i] = v
	}
}

// emitTrimmed passes the non-zero part of a coverage row to emit.
func emitTrimmed(emit EmitFunc, y, xMin int, coverage []float32) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo < hi {
		emit(y, xMin+lo, coverage[lo:hi])
	}
}

// scanSmall accumulates all edges into a 2D buffer covering the bounding
// box, then integrates the rows.
func (r *Rasterizer) scanSmall(xMin, xMax, yMin, yMax int, rule fillRule, emit EmitFunc) {
	w, h := xMax-xMin, yMax-yMin
	n := w * h
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	r.rowUsed = slices.Grow(r.rowUsed[:0], h)[:h]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(e.yMin())), yMin)
		y1 := min(int(math.Floor(e.yMax()))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			accumulate(e, y, r.cover[row*w:(row+1)*w], r.area[row*w:(row+1)*w], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range h {
		if !r.rowUsed[row] {
			continue
		}
		c := r.cover[row*w : (row+1)*w]
		integrate(c, r.area[row*w:(row+1)*w], rule)
		emitTrimmed(emit, yMin+row, xMin, c)
	}
}

// scanLarge walks the scanlines with an active edge list and one row of
// accumulators.
func (r *Rasterizer) scanLarge(xMin, xMax, yMin, yMax int, rule fillRule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], w)[:w]
	r.area = slices.Grow(r.area[:0], w)[:w]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)
		for next < len(r.edges) && r.edges[next].yMin() < bot {
			r.active = append(r.active, next)
			next++
		}
		r.active = slices.DeleteFunc(r.active, func(i int) bool {
			return r.edges[i].yMax() <= top
		})
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		for _, i := range r.active {
			accumulate(&r.edges[i], y, r.cover, r.area, xMin, xMax)
		}
		integrate(r.cover, r.area, rule)
		emitTrimmed(emit, y, xMin, r.cover)
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF default, which bevels corners
	// sharper than about 11.5 degrees.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold selects between scanSmall and scanLarge.
	// Label glyphs almost always fall below it.
	smallPathThreshold = 65536
)
