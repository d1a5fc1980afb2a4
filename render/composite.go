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
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// A compositor receives the coverage of the labels, one at a time.
type compositor interface {
	// setInk sets the colour for the following calls to paint.
	setInk(ink color.RGBA)

	// paint adds one row of label coverage.
	paint(y, xMin int, coverage []float32)

	// halo adds one row of halo coverage.
	halo(y, xMin int, coverage []float32)

	// finish completes the image.
	finish()
}

// directCompositor paints every label straight onto the canvas.
type directCompositor struct {
	canvas     *image.RGBA
	ink        color.RGBA
	background color.RGBA
}

func (c *directCompositor) setInk(ink color.RGBA) {
	c.ink = ink
}

func (c *directCompositor) paint(y, xMin int, coverage []float32) {
	blendRow(c.canvas, y, xMin, coverage, c.ink)
}

func (c *directCompositor) halo(y, xMin int, coverage []float32) {
	blendRow(c.canvas, y, xMin, coverage, c.background)
}

func (c *directCompositor) finish() {}

// maskCompositor accumulates the labels in an alpha mask.  The final
// image is the background, overlaid with the ink layer through the mask.
type maskCompositor struct {
	canvas *image.RGBA
	mask   *image.Alpha

	// inks is the ink layer.  It is nil if all labels share one colour.
	inks *image.RGBA
	ink  color.RGBA

	// weight is the mask intensity of a fully covered pixel.
	weight uint32
}

func newMaskCompositor(canvas *image.RGBA, transparency float64, single bool) *maskCompositor {
	b := canvas.Bounds()
	c := &maskCompositor{
		canvas: canvas,
		mask:   image.NewAlpha(b),
		weight: uint32(math.Round(255 * (1 - transparency))),
	}
	if !single {
		c.inks = image.NewRGBA(b)
	}
	return c
}

func (c *maskCompositor) setInk(ink color.RGBA) {
	c.ink = ink
}

func (c *maskCompositor) paint(y, xMin int, coverage []float32) {
	base := y*c.mask.Stride + xMin
	for i, v := range coverage {
		a := quantize(v)
		if a == 0 {
			continue
		}
		m := uint32(c.mask.Pix[base+i]) + (a*c.weight+127)/255
		c.mask.Pix[base+i] = uint8(min(m, 255))

		if c.inks == nil {
			continue
		}
		k := y*c.inks.Stride + 4*(xMin+i)
		px := c.inks.Pix[k : k+4 : k+4]
		if px[3] == 0 {
			px[0], px[1], px[2], px[3] = c.ink.R, c.ink.G, c.ink.B, 255
		} else {
			px[0] = mix(c.ink.R, px[0], a)
			px[1] = mix(c.ink.G, px[1], a)
			px[2] = mix(c.ink.B, px[2], a)
		}
	}
}

func (c *maskCompositor) halo(y, xMin int, coverage []float32) {
	base := y*c.mask.Stride + xMin
	for i, v := range coverage {
		a := quantize(v)
		m := uint32(c.mask.Pix[base+i])
		c.mask.Pix[base+i] = uint8((m*(255-a) + 127) / 255)
	}
}

func (c *maskCompositor) finish() {
	var src image.Image = c.inks
	if c.inks == nil {
		src = image.NewUniform(c.ink)
	}
	draw.DrawMask(c.canvas, c.canvas.Bounds(), src, image.Point{}, c.mask, image.Point{}, draw.Over)
}

// blendRow paints one row of coverage onto img, in the given colour.
// Fully covered pixels are set to exactly ink.
func blendRow(img *image.RGBA, y, xMin int, coverage []float32, ink color.RGBA) {
	base := y*img.Stride + 4*xMin
	for i, v := range coverage {
		a := quantize(v)
		if a == 0 {
			continue
		}
		k := base + 4*i
		px := img.Pix[k : k+4 : k+4]
		px[0] = mix(ink.R, px[0], a)
		px[1] = mix(ink.G, px[1], a)
		px[2] = mix(ink.B, px[2], a)
		px[3] = 255
	}
}

// quantize converts a coverage value to the range 0-255.
func quantize(v float32) uint32 {
	return min(uint32(v*255+0.5), 255)
}

// mix blends fg over bg with weight a/255.
func mix(fg, bg uint8, a uint32) uint8 {
	return uint8((uint32(fg)*a + uint32(bg)*(255-a) + 127) / 255)
}
