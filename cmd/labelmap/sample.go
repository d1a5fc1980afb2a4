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

package main

import (
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"os"

	"seehuhn.de/go/labelmap"
	"seehuhn.de/go/labelmap/dataset"
	"seehuhn.de/go/labelmap/sample"
)

func runSample(logger *slog.Logger, args []string) error {
	flags := flag.NewFlagSet("sample", flag.ContinueOnError)
	limit := flags.Int("limit", 500, "maximum number of labels which are not highlighted")
	thin := flags.Float64("thin", 0, "probability of dropping a label which is not highlighted")
	seed := flags.Uint64("seed", 0, "random seed for thinning (0 picks a random seed)")
	normalize := flags.Bool("normalize", false, "scale each vector to unit length")
	words := flags.String("words", "", "read labels from this file, one per line, and vectors without labels")
	var highlights fileList
	flags.Var(&highlights, "highlight", "file of labels which are always kept (repeatable)")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: labelmap sample [flags] vectors out\n\n")
		flags.PrintDefaults()
	}
	if err := parseArgs(flags, args, 2); err != nil {
		return err
	}
	in, out := flags.Arg(0), flags.Arg(1)

	opts := sample.Options{Limit: *limit, Thinning: *thin}
	if *seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(*seed, *seed))
	}
	var sets []labelmap.Set
	for _, fname := range highlights {
		_, labels, err := dataset.ReadLabelFile(fname)
		if err != nil {
			return err
		}
		sets = append(sets, labelmap.NewSet(labels...))
	}
	if set, ok := labelmap.Merge(sets...).(labelmap.Set); ok {
		opts.Highlights = set.Labels()
	}

	vf, err := os.Open(in)
	if err != nil {
		return err
	}
	defer vf.Close()

	var seq iter.Seq2[labelmap.Record, error]
	if *words != "" {
		wf, err := os.Open(*words)
		if err != nil {
			return err
		}
		defer wf.Close()
		seq = dataset.Separated(vf, wf)
	} else {
		seq = dataset.Combined(vf)
	}

	logger.Info("sampling", "file", in, "limit", opts.Limit, "highlights", len(opts.Highlights))
	recs, stats, err := sample.SampleStats(seq, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logger.Info("sampled",
		"scanned", stats.Scanned,
		"kept", stats.Kept,
		"highlighted", stats.Highlighted,
		"thinned", stats.Thinned)
	if len(stats.Missing) > 0 {
		logger.Warn("highlight labels not found", "count", len(stats.Missing))
	}

	if *normalize {
		for _, r := range recs {
			labelmap.NormalizeL2(r.Vector)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := dataset.WriteCombined(f, recs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
