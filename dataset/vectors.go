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

// Package dataset reads and writes the files used by the labelmap tools:
// embedding vectors, label lists, point coordinates, label colours and
// word categories.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"seehuhn.de/go/labelmap"
)

// ErrSyntax is returned for lines which cannot be parsed.
var ErrSyntax = errors.New("malformed input")

// maxLineSize bounds the length of a single input line.  Embedding files
// with a few thousand dimensions have lines of tens of kilobytes.
const maxLineSize = 16 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineSize)
	return s
}

// Combined reads labelled vectors in word2vec text format: one record per
// line, the label followed by the vector components, separated by white
// space.  An optional first line with two integers gives the number of
// records and the vector dimension.  If present, every record must have
// this dimension.  Blank lines are skipped.
//
// A first line like "7 3" is ambiguous.  It is taken as a header if the
// record after it has the stated dimension, or if no record follows.
// Otherwise it is read as the label "7" with a one-component vector.
//
// The sequence stops after the first error.
func Combined(r io.Reader) iter.Seq2[labelmap.Record, error] {
	return func(yield func(labelmap.Record, error) bool) {
		s := newScanner(r)
		lineNo := 0
		first := true
		dim := -1
		var header []string
		for s.Scan() {
			lineNo++
			fields := strings.Fields(s.Text())
			if len(fields) == 0 {
				continue
			}
			if first {
				first = false
				if _, ok := parseHeader(fields); ok {
					header = fields
					continue
				}
			}

			v, err := parseVector(fields[1:])
			if err != nil {
				yield(labelmap.Record{}, fmt.Errorf("line %d: %w", lineNo, err))
				return
			}
			if header != nil {
				n, _ := parseHeader(header)
				if len(v) == n {
					dim = n
				} else {
					hv, _ := parseVector(header[1:])
					if !yield(labelmap.Record{Label: header[0], Vector: hv}, nil) {
						return
					}
				}
				header = nil
			}
			if dim >= 0 && len(v) != dim {
				yield(labelmap.Record{}, fmt.Errorf("line %d: %w: got %d, want %d",
					lineNo, labelmap.ErrDimension, len(v), dim))
				return
			}
			if !yield(labelmap.Record{Label: fields[0], Vector: v}, nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(labelmap.Record{}, err)
		}
	}
}

// parseHeader recognises the "count dimension" line of a combined file.
func parseHeader(fields []string) (int, bool) {
	if len(fields) != 2 {
		return 0, false
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return 0, false
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil || dim < 0 {
		return 0, false
	}
	return dim, true
}

func parseVector(fields []string) ([]float64, error) {
	v := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: component %d: %q", ErrSyntax, i+1, f)
		}
		v[i] = x
	}
	return v, nil
}

// Separated reads labels and vectors from two parallel files.  Each
// non-blank line of words is one label.  Each non-blank line of vectors
// holds the components of one vector.  Both files must contain the same
// number of records.
func Separated(vectors, words io.Reader) iter.Seq2[labelmap.Record, error] {
	return func(yield func(labelmap.Record, error) bool) {
		vs := newScanner(vectors)
		ws := newScanner(words)
		next := func(s *bufio.Scanner) (string, bool) {
			for s.Scan() {
				if line := strings.TrimSpace(s.Text()); line != "" {
					return line, true
				}
			}
			return "", false
		}

		for n := 1; ; n++ {
			word, okW := next(ws)
			line, okV := next(vs)
			if err := errors.Join(ws.Err(), vs.Err()); err != nil {
				yield(labelmap.Record{}, err)
				return
			}
			if !okW && !okV {
				return
			}
			if okW != okV {
				yield(labelmap.Record{}, fmt.Errorf("%w: record %d: word and vector counts differ", ErrSyntax, n))
				return
			}

			v, err := parseVector(strings.Fields(line))
			if err != nil {
				yield(labelmap.Record{}, fmt.Errorf("record %d: %w", n, err))
				return
			}
			if !yield(labelmap.Record{Label: word, Vector: v}, nil) {
				return
			}
		}
	}
}

// WriteCombined writes records in the format read by Combined, including
// the header line.  Labels must not contain white space.
func WriteCombined(w io.Writer, records []labelmap.Record) error {
	dim := 0
	if len(records) > 0 {
		dim = len(records[0].Vector)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", len(records), dim)
	buf := make([]byte, 0, 64)
	for i, r := range records {
		if len(r.Vector) != dim {
			return fmt.Errorf("record %d: %w", i, labelmap.ErrDimension)
		}
		if r.Label == "" || strings.ContainsFunc(r.Label, unicode.IsSpace) {
			return fmt.Errorf("record %d: %w: label %q", i, ErrSyntax, r.Label)
		}
		bw.WriteString(r.Label)
		for _, x := range r.Vector {
			buf = append(buf[:0], ' ')
			buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
