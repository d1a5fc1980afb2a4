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
	"image/color"
	"slices"
)

// Highlighting selects the labels which are drawn with emphasis.
//
// There are exactly three implementations: [None], [Set] and [Keyed].
type Highlighting interface {
	// IsHighlighted reports whether the label is drawn on top of the
	// other labels.
	IsHighlighted(label string) bool

	// Ink returns the colour used for the label.  Labels without a
	// specific colour use fallback.
	Ink(label string, fallback color.Color) color.Color

	isHighlighting()
}

// None highlights no labels.
type None struct{}

// IsHighlighted implements the [Highlighting] interface.
func (None) IsHighlighted(string) bool { return false }

// Ink implements the [Highlighting] interface.
func (None) Ink(_ string, fallback color.Color) color.Color { return fallback }

func (None) isHighlighting() {}

// Set is binary emphasis: the labels in the set are drawn last, in the
// highlight ink chosen by the renderer.
type Set map[string]struct{}

// NewSet returns a Set containing the given labels.
// Labels are normalised with [NormalizeLabel]; empty labels are skipped.
func NewSet(labels ...string) Set {
	s := make(Set, len(labels))
	for _, l := range labels {
		l, err := NormalizeLabel(l)
		if err != nil {
			continue
		}
		s[l] = struct{}{}
	}
	return s
}

// IsHighlighted implements the [Highlighting] interface.
func (s Set) IsHighlighted(label string) bool {
	_, ok := s[label]
	return ok
}

// Ink implements the [Highlighting] interface.
func (s Set) Ink(_ string, fallback color.Color) color.Color { return fallback }

// Labels returns the members of s in sorted order.
func (s Set) Labels() []string {
	res := make([]string, 0, len(s))
	for l := range s {
		res = append(res, l)
	}
	slices.Sort(res)
	return res
}

func (Set) isHighlighting() {}

// Keyed is keyed emphasis: each label in the map is drawn last, in its own
// colour.
type Keyed map[string]color.Color

// IsHighlighted implements the [Highlighting] interface.
func (k Keyed) IsHighlighted(label string) bool {
	_, ok := k[label]
	return ok
}

// Ink implements the [Highlighting] interface.
func (k Keyed) Ink(label string, fallback color.Color) color.Color {
	if c, ok := k[label]; ok {
		return c
	}
	return fallback
}

func (Keyed) isHighlighting() {}

// Merge combines several highlight sets into one.
// The result is None if no labels are given.
func Merge(sets ...Set) Highlighting {
	res := Set{}
	for _, s := range sets {
		for l := range s {
			res[l] = struct{}{}
		}
	}
	if len(res) == 0 {
		return None{}
	}
	return res
}
