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

// Package sample selects a bounded subset from a stream of labelled
// vectors.
//
// At most Limit records which are not highlighted are kept, in stream
// order.  The first occurrence of every highlight label is kept in
// addition, no matter where it appears in the stream.
package sample

import (
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"

	"seehuhn.de/go/labelmap"
)

// ErrInvalidOptions is returned for a negative limit or a thinning
// probability outside [0, 1].
var ErrInvalidOptions = errors.New("invalid sample options")

// Options control the selection.
type Options struct {
	// Limit is the maximum number of records kept which are not
	// highlighted.
	Limit int

	// Highlights lists labels which are kept whenever they occur.
	Highlights []string

	// Thinning is the probability of dropping a record which would
	// otherwise count towards Limit.
	Thinning float64

	// Rand is the source for thinning decisions.  If nil, the global
	// source of math/rand/v2 is used.
	Rand *rand.Rand
}

// Stats describes a completed sampling pass.
type Stats struct {
	// Scanned is the number of records read from the stream.
	Scanned int

	// Kept is the number of records kept which count towards the limit.
	Kept int

	// Highlighted is the number of highlight labels found.
	Highlighted int

	// Thinned is the number of records dropped by thinning.
	Thinned int

	// Missing lists the highlight labels which were not found, in the
	// order given in the options.
	Missing []string
}

// Sample reads records from seq and returns the selected ones, in stream
// order.  Reading stops early once the limit is reached and all
// highlight labels have been seen.
func Sample(seq iter.Seq2[labelmap.Record, error], opts Options) ([]labelmap.Record, error) {
	res, _, err := SampleStats(seq, opts)
	return res, err
}

// SampleStats is like Sample, but also reports statistics about the pass.
func SampleStats(seq iter.Seq2[labelmap.Record, error], opts Options) ([]labelmap.Record, *Stats, error) {
	if opts.Limit < 0 {
		return nil, nil, fmt.Errorf("%w: limit %d", ErrInvalidOptions, opts.Limit)
	}
	if !(opts.Thinning >= 0 && opts.Thinning <= 1) {
		return nil, nil, fmt.Errorf("%w: thinning probability %g", ErrInvalidOptions, opts.Thinning)
	}

	uniform := rand.Float64
	if opts.Rand != nil {
		uniform = opts.Rand.Float64
	}

	var order []string
	pending := make(map[string]bool)
	for _, h := range opts.Highlights {
		h, err := labelmap.NormalizeLabel(h)
		if err != nil {
			continue
		}
		if !pending[h] {
			pending[h] = true
			order = append(order, h)
		}
	}

	stats := &Stats{}
	var res []labelmap.Record
	dim := -1
	accept := func(rec labelmap.Record) error {
		if dim < 0 {
			dim = len(rec.Vector)
		} else if len(rec.Vector) != dim {
			return fmt.Errorf("record %d (%q): %w: got %d, want %d",
				stats.Scanned, rec.Label, labelmap.ErrDimension, len(rec.Vector), dim)
		}
		res = append(res, rec)
		return nil
	}

	remaining := len(pending)
	done := func() bool {
		return stats.Kept >= opts.Limit && remaining == 0
	}
	if done() {
		return res, stats, nil
	}
	for rec, err := range seq {
		if err != nil {
			return nil, nil, err
		}
		stats.Scanned++

		label, err := labelmap.NormalizeLabel(rec.Label)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", stats.Scanned, err)
		}
		rec.Label = label

		switch {
		case pending[label]:
			pending[label] = false
			remaining--
			if err := accept(rec); err != nil {
				return nil, nil, err
			}
			stats.Highlighted++
		case stats.Kept < opts.Limit:
			if uniform() < opts.Thinning {
				stats.Thinned++
				break
			}
			if err := accept(rec); err != nil {
				return nil, nil, err
			}
			stats.Kept++
		}

		if done() {
			break
		}
	}

	for _, h := range order {
		if pending[h] {
			stats.Missing = append(stats.Missing, h)
		}
	}
	return res, stats, nil
}
