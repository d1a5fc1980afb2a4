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
	"io"
	"os"
	"path/filepath"
	"strings"

	"seehuhn.de/go/labelmap"
)

// ReadLabels reads one label per line.  Blank lines are ignored, all other
// lines are normalised with labelmap.NormalizeLabel.
func ReadLabels(r io.Reader) ([]string, error) {
	var res []string
	s := newScanner(r)
	for s.Scan() {
		l, err := labelmap.NormalizeLabel(s.Text())
		if err != nil {
			continue
		}
		res = append(res, l)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ReadLabelFile reads a highlight file.  The returned stem is the base name
// of the file without its extension, used to name derived outputs.
func ReadLabelFile(fname string) (stem string, labels []string, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	labels, err = ReadLabels(f)
	if err != nil {
		return "", nil, err
	}
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base)), labels, nil
}
