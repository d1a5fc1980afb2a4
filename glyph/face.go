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

// Package glyph converts text into glyph outlines, ready to be filled by
// the rasterizer.
//
// Coordinates are in pixels, with the y axis pointing down.  The origin
// of a text outline is the top-left corner of its line box, so that the
// baseline is at y = Ascent().
package glyph

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrFontNotFound is returned by Open if the font file does not exist.
	ErrFontNotFound = errors.New("font file not found")

	// ErrInvalidSize is returned for font sizes which are not positive.
	ErrInvalidSize = errors.New("invalid font size")
)

// Face is a font at a fixed pixel size.
//
// A Face caches glyph outlines and is not safe for concurrent use.
type Face struct {
	font *sfnt.Font
	buf  sfnt.Buffer
	ppem fixed.Int26_6
	size float64

	ascent, descent float64

	glyphs map[rune]*outline
}

// outline is the cached shape of a single glyph, relative to the glyph
// origin on the baseline.
type outline struct {
	index   sfnt.GlyphIndex
	cmds    []path.Command
	coords  []vec.Vec2
	advance float64
}

// Open loads a TrueType or OpenType font (or the first font of a font
// collection) from a file.  The size is the em size in pixels.
func Open(fname string, size float64) (*Face, error) {
	if _, err := os.Stat(fname); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFontNotFound, fname)
		}
		return nil, err
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		coll, collErr := sfnt.ParseCollection(data)
		if collErr != nil || coll.NumFonts() == 0 {
			return nil, fmt.Errorf("font %q: %w", fname, err)
		}
		f, err = coll.Font(0)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", fname, err)
		}
	}
	return newFace(f, size)
}

// Default returns the Go Regular font at the given size.
func Default(size float64) (*Face, error) {
	f, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return newFace(f, size)
}

func newFace(f *sfnt.Font, size float64) (*Face, error) {
	if !(size > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSize, size)
	}

	face := &Face{
		font:   f,
		ppem:   fixed.Int26_6(size*64 + 0.5),
		size:   size,
		glyphs: make(map[rune]*outline),
	}
	m, err := f.Metrics(&face.buf, face.ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	face.ascent = fromFixed(m.Ascent)
	face.descent = fromFixed(m.Descent)
	return face, nil
}

// Size returns the em size of the face in pixels.
func (f *Face) Size() float64 {
	return f.size
}

// Ascent returns the distance from the top of the line box to the
// baseline.
func (f *Face) Ascent() float64 {
	return f.ascent
}

// Height returns the height of the line box.
func (f *Face) Height() float64 {
	return f.ascent + f.descent
}

// Outline returns the outline of text, laid out on a single line.
// Kerning is applied between adjacent glyphs.  All contours in the
// returned path are closed.
func (f *Face) Outline(text string) (*path.Data, error) {
	p := &path.Data{}
	_, err := f.appendText(p, text)
	return p, err
}

// Advance returns the width of text, without drawing it.
func (f *Face) Advance(text string) (float64, error) {
	return f.appendText(nil, text)
}

// appendText lays out text and, if p is not nil, appends the glyph
// contours to p.  The return value is the total advance width.
func (f *Face) appendText(p *path.Data, text string) (float64, error) {
	var x float64
	prev := sfnt.GlyphIndex(0)
	for i, r := range text {
		g, err := f.glyph(r)
		if err != nil {
			return 0, fmt.Errorf("glyph for %q: %w", r, err)
		}
		if i > 0 && prev != 0 && g.index != 0 {
			// most fonts have no kerning for most pairs
			k, err := f.font.Kern(&f.buf, prev, g.index, f.ppem, font.HintingNone)
			if err == nil {
				x += fromFixed(k)
			}
		}
		if p != nil {
			shift := vec.Vec2{X: x, Y: f.ascent}
			p.Cmds = append(p.Cmds, g.cmds...)
			for _, c := range g.coords {
				p.Coords = append(p.Coords, c.Add(shift))
			}
		}
		x += g.advance
		prev = g.index
	}
	return x, nil
}

func (f *Face) glyph(r rune) (*outline, error) {
	if g, ok := f.glyphs[r]; ok {
		return g, nil
	}

	idx, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return nil, err
	}
	adv, err := f.font.GlyphAdvance(&f.buf, idx, f.ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	segs, err := f.font.LoadGlyph(&f.buf, idx, f.ppem, nil)
	if err != nil {
		return nil, err
	}

	g := &outline{index: idx, advance: fromFixed(adv)}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				g.cmds = append(g.cmds, path.CmdClose)
			}
			g.cmds = append(g.cmds, path.CmdMoveTo)
			g.coords = append(g.coords, toVec(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			g.cmds = append(g.cmds, path.CmdLineTo)
			g.coords = append(g.coords, toVec(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			g.cmds = append(g.cmds, path.CmdQuadTo)
			g.coords = append(g.coords, toVec(s.Args[0]), toVec(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			g.cmds = append(g.cmds, path.CmdCubeTo)
			g.coords = append(g.coords, toVec(s.Args[0]), toVec(s.Args[1]), toVec(s.Args[2]))
		}
	}
	if open {
		g.cmds = append(g.cmds, path.CmdClose)
	}

	f.glyphs[r] = g
	return g, nil
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

func toVec(p fixed.Point26_6) vec.Vec2 {
	return vec.Vec2{X: fromFixed(p.X), Y: fromFixed(p.Y)}
}
