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
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		in, want string
		err      error
	}{
		{"word", "word", nil},
		{"  padded\t", "padded", nil},
		{"\n", "", ErrEmptyLabel},
		{"", "", ErrEmptyLabel},
		{"cafe\u0301", "caf\u00e9", nil},
	}
	for _, tc := range cases {
		got, err := NormalizeLabel(tc.in)
		if !errors.Is(err, tc.err) {
			t.Errorf("NormalizeLabel(%q): expected error %v, got %v", tc.in, tc.err, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeL2(t *testing.T) {
	v := []float64{3, 4}
	NormalizeL2(v)
	if diff := cmp.Diff([]float64{0.6, 0.8}, v, cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-12
	})); diff != "" {
		t.Errorf("NormalizeL2 mismatch (-want +got):\n%s", diff)
	}

	zero := []float64{0, 0, 0}
	NormalizeL2(zero)
	if diff := cmp.Diff([]float64{0, 0, 0}, zero); diff != "" {
		t.Errorf("zero vector changed (-want +got):\n%s", diff)
	}
}

func TestHighlighting(t *testing.T) {
	black := color.Gray{Y: 0}
	red := color.RGBA{R: 255, A: 255}

	var h Highlighting = None{}
	if h.IsHighlighted("a") || h.Ink("a", black) != black {
		t.Error("None highlights a label")
	}

	h = NewSet(" a ", "b", "")
	if !h.IsHighlighted("a") || !h.IsHighlighted("b") || h.IsHighlighted("c") {
		t.Error("wrong Set membership")
	}
	if h.Ink("a", black) != black {
		t.Error("Set changed the ink")
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.(Set).Labels()); diff != "" {
		t.Errorf("Set labels mismatch (-want +got):\n%s", diff)
	}

	h = Keyed{"a": red}
	if !h.IsHighlighted("a") || h.IsHighlighted("b") {
		t.Error("wrong Keyed membership")
	}
	if h.Ink("a", black) != red || h.Ink("b", black) != black {
		t.Error("wrong Keyed ink")
	}
}

func TestMerge(t *testing.T) {
	if _, ok := Merge().(None); !ok {
		t.Error("merging nothing should give None")
	}
	if _, ok := Merge(Set{}, Set{}).(None); !ok {
		t.Error("merging empty sets should give None")
	}
	h := Merge(NewSet("a"), NewSet("b", "a"))
	if diff := cmp.Diff([]string{"a", "b"}, h.(Set).Labels()); diff != "" {
		t.Errorf("merged labels mismatch (-want +got):\n%s", diff)
	}
}
