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

package dataset

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/labelmap"
)

// ReadStyles reads label colours from a YAML mapping of labels to hex
// colours:
//
//	apple: "#c00000"
//	banana: "#e0c000"
//
// The labels are normalised with labelmap.NormalizeLabel.
func ReadStyles(r io.Reader) (labelmap.Keyed, error) {
	var raw map[string]string
	err := yaml.NewDecoder(r).Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("style file: %w", err)
	}

	res := make(labelmap.Keyed, len(raw))
	for label, hex := range raw {
		l, err := labelmap.NormalizeLabel(label)
		if err != nil {
			return nil, fmt.Errorf("style file: %w", err)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("style file: label %q: %w", label, err)
		}
		red, green, blue := c.RGB255()
		res[l] = color.RGBA{R: red, G: green, B: blue, A: 255}
	}
	return res, nil
}

// ReadStyleFile reads label colours from the named file.
func ReadStyleFile(fname string) (labelmap.Keyed, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadStyles(f)
}
