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
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"seehuhn.de/go/labelmap/glyph"
)

var (
	// ErrInvalidOptions is returned for option values outside their
	// documented range.
	ErrInvalidOptions = errors.New("invalid render options")

	// ErrFormat is returned by ToFile for unsupported file extensions.
	ErrFormat = errors.New("unsupported output format")
)

// Options control the layout and appearance of a rendered label map.
type Options struct {
	// Width and Height give the canvas size in pixels.
	Width, Height int

	// Margin is the fraction of the data extent added on each side of
	// the bounding box.
	Margin float64

	// Transparency is in [0, 1].  Zero selects opaque drawing, where each
	// label is painted directly onto the canvas.  Positive values
	// accumulate the labels in an alpha mask, each label contributing an
	// intensity of 1-Transparency.
	Transparency float64

	// FontPath is a TrueType or OpenType file.  If empty, Go Regular is
	// used.
	FontPath string

	// FontSize is the em size in pixels.
	FontSize float64

	// If Anonymize is set, Placeholder is drawn instead of every label.
	Anonymize   bool
	Placeholder string

	// Ink is used for labels which are not highlighted, HighlightInk for
	// highlighted labels without a colour of their own.  The alpha
	// channel of all three colours is ignored.
	Ink          color.Color
	HighlightInk color.Color
	Background   color.Color

	// Halo is the width of the background coloured outline drawn
	// around highlighted labels.  Zero disables halos.
	Halo float64

	// Logger receives progress messages.  If nil, nothing is logged.
	Logger *slog.Logger

	// ProgressEvery sets how many labels are drawn between progress
	// messages.
	ProgressEvery int
}

// DefaultOptions returns the default settings.
func DefaultOptions() *Options {
	return &Options{
		Width:         3000,
		Height:        1800,
		Margin:        0.05,
		Transparency:  0.4,
		FontSize:      12,
		Placeholder:   "xxxx",
		Ink:           color.Black,
		HighlightInk:  color.Black,
		Background:    color.White,
		ProgressEvery: 1000,
	}
}

func (o *Options) check() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case !(o.Margin >= 0) || math.IsInf(o.Margin, 0):
		return fmt.Errorf("%w: margin %g", ErrInvalidOptions, o.Margin)
	case !(o.Transparency >= 0 && o.Transparency <= 1):
		return fmt.Errorf("%w: transparency %g", ErrInvalidOptions, o.Transparency)
	case !(o.FontSize > 0):
		return fmt.Errorf("%w: font size %g", ErrInvalidOptions, o.FontSize)
	case !(o.Halo >= 0):
		return fmt.Errorf("%w: halo width %g", ErrInvalidOptions, o.Halo)
	case o.Anonymize && o.Placeholder == "":
		return fmt.Errorf("%w: empty placeholder", ErrInvalidOptions)
	case o.Ink == nil || o.HighlightInk == nil || o.Background == nil:
		return fmt.Errorf("%w: missing colour", ErrInvalidOptions)
	}
	return nil
}

// face loads the configured font.
func (o *Options) face() (*glyph.Face, error) {
	if o.FontPath == "" {
		return glyph.Default(o.FontSize)
	}
	return glyph.Open(o.FontPath, o.FontSize)
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
