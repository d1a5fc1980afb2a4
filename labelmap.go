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

// Package labelmap holds the data model shared by the sampler and the
// renderer: labelled vectors, labelled 2D points, highlighting choices
// and the bounding window used to map data coordinates to pixels.
//
// The two processing stages live in sub-packages. Package sample selects a
// bounded subset of a stream of labelled vectors while keeping every
// highlighted label, and package render draws labelled points as text.
// The stages only exchange plain values from this package.
package labelmap

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Errors reported for malformed input.
var (
	ErrEmptyLabel = errors.New("empty label")
	ErrNonFinite  = errors.New("non-finite coordinate")
	ErrNoPoints   = errors.New("no points")
	ErrDegenerate = errors.New("degenerate bounding box")
	ErrDimension  = errors.New("vector dimension mismatch")
)

// Record is a labelled vector, as read from an embedding file.
type Record struct {
	Label  string
	Vector []float64
}

// Point is a labelled position in the plane.
type Point struct {
	Label string
	X, Y  float64
}

// IsFinite reports whether both coordinates of p are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// NormalizeLabel trims surrounding white space from s and converts the
// result to Unicode normal form C.  Labels which are empty after trimming
// give ErrEmptyLabel.
func NormalizeLabel(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyLabel
	}
	return norm.NFC.String(s), nil
}

// NormalizeL2 scales v in place to unit Euclidean length.
// The zero vector is left unchanged.
func NormalizeL2(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	scale := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] *= scale
	}
}
