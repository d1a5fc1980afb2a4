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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

var benchSizes = []int{20, 200, 2000}

// BenchmarkRasterizerRing measures filling an "O" shape.
func BenchmarkRasterizerRing(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			c := float64(size) / 2
			p := ring(c, c, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillNonZero(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, v := range coverage {
						row[i] = uint8(v * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorRing draws the same shape with x/image/vector, for
// comparison.
func BenchmarkVectorRing(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			c := float32(size) / 2
			outer := float32(size) * 0.45
			inner := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				vectorCircle(z, c, c, outer, false)
				vectorCircle(z, c, c, inner, true)
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkStrokeStar measures stroking a self-intersecting outline with
// round joins, as used for label halos.
func BenchmarkStrokeStar(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			c := float64(size) / 2
			p := fivePointStar(c, c, float64(size)*0.4)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Width = float64(size) / 50
				r.Join = graphics.LineJoinRound
				r.Stroke(p, func(y, xMin int, coverage []float32) {})
			}
		})
	}
}

func vectorCircle(z *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius
	s := float32(1)
	if clockwise {
		s = -1
	}

	z.MoveTo(cx, cy-radius)
	z.CubeTo(cx+s*kr, cy-radius, cx+s*radius, cy-kr, cx+s*radius, cy)
	z.CubeTo(cx+s*radius, cy+kr, cx+s*kr, cy+radius, cx, cy+radius)
	z.CubeTo(cx-s*kr, cy+radius, cx-s*radius, cy+kr, cx-s*radius, cy)
	z.CubeTo(cx-s*radius, cy-kr, cx-s*kr, cy-radius, cx, cy-radius)
	z.ClosePath()
}
