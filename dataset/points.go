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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/labelmap"
)

// ReadPoints reads labelled 2D coordinates.
//
// In the plain format, every non-blank line holds a label followed by the
// x and y coordinate, separated by white space.  The label may itself
// contain white space.
//
// In CSV format, the first row is a header which must name the columns
// "label" (or "word"), "x" and "y", in any order and case.
func ReadPoints(r io.Reader, isCSV bool) ([]labelmap.Point, error) {
	if isCSV {
		return readPointsCSV(r)
	}

	var res []labelmap.Point
	s := newScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: %w: expected label, x and y", lineNo, ErrSyntax)
		}
		n := len(fields)
		p, err := makePoint(strings.Join(fields[:n-2], " "), fields[n-2], fields[n-1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		res = append(res, p)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func readPointsCSV(r io.Reader) ([]labelmap.Point, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	col := map[string]int{"label": -1, "x": -1, "y": -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "word" {
			h = "label"
		}
		if j, ok := col[h]; ok && j < 0 {
			col[h] = i
		}
	}
	for _, name := range []string{"label", "x", "y"} {
		if col[name] < 0 {
			return nil, fmt.Errorf("%w: csv header has no %q column", ErrSyntax, name)
		}
	}

	var res []labelmap.Point
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		p, err := makePoint(row[col["label"]], row[col["x"]], row[col["y"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		res = append(res, p)
	}
	return res, nil
}

func makePoint(label, xs, ys string) (labelmap.Point, error) {
	label, err := labelmap.NormalizeLabel(label)
	if err != nil {
		return labelmap.Point{}, err
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return labelmap.Point{}, fmt.Errorf("%w: x coordinate %q", ErrSyntax, xs)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return labelmap.Point{}, fmt.Errorf("%w: y coordinate %q", ErrSyntax, ys)
	}
	return labelmap.Point{Label: label, X: x, Y: y}, nil
}

// WritePoints writes points in the plain format read by ReadPoints.
func WritePoints(w io.Writer, points []labelmap.Point) error {
	for _, p := range points {
		_, err := fmt.Fprintf(w, "%s %s %s\n", p.Label,
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64))
		if err != nil {
			return err
		}
	}
	return nil
}
