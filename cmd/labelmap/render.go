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
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/labelmap"
	"seehuhn.de/go/labelmap/dataset"
	"seehuhn.de/go/labelmap/render"
)

func runRender(logger *slog.Logger, args []string) error {
	def := render.DefaultOptions()

	flags := flag.NewFlagSet("render", flag.ContinueOnError)
	width := flags.Int("width", def.Width, "canvas width in pixels")
	height := flags.Int("height", def.Height, "canvas height in pixels")
	scale := flags.Float64("scale", 1, "scale the canvas size by this factor")
	margin := flags.Float64("margin", def.Margin, "margin as a fraction of the data range")
	transparency := flags.Float64("transparency", def.Transparency, "label transparency in [0, 1]")
	fast := flags.Bool("fast", false, "draw opaque labels, same as -transparency 0")
	font := flags.String("font", "", "TrueType or OpenType font file")
	size := flags.Float64("size", def.FontSize, "font size in pixels")
	anonymize := flags.Bool("anonymize", false, "draw a placeholder instead of every label")
	halo := flags.Float64("halo", 0, "width of the outline around highlighted labels")
	styles := flags.String("styles", "", "YAML file mapping labels to colours")
	isCSV := flags.Bool("csv", false, "read the points as CSV")
	jobs := flags.Int("j", runtime.GOMAXPROCS(0), "number of images rendered in parallel")
	var highlights fileList
	flags.Var(&highlights, "highlight", "file of labels to highlight (repeatable, one image per file)")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: labelmap render [flags] points out\n\n")
		flags.PrintDefaults()
	}
	if err := parseArgs(flags, args, 2); err != nil {
		return err
	}
	in, out := flags.Arg(0), flags.Arg(1)

	opts := render.DefaultOptions()
	opts.Width = int(float64(*width) * *scale)
	opts.Height = int(float64(*height) * *scale)
	opts.Margin = *margin
	opts.Transparency = *transparency
	if *fast {
		opts.Transparency = 0
	}
	opts.FontPath = *font
	opts.FontSize = *size
	opts.Anonymize = *anonymize
	opts.Halo = *halo
	opts.Logger = logger

	var keyed labelmap.Keyed
	if *styles != "" {
		var err error
		keyed, err = dataset.ReadStyleFile(*styles)
		if err != nil {
			return err
		}
	}

	pf, err := os.Open(in)
	if err != nil {
		return err
	}
	points, err := dataset.ReadPoints(pf, *isCSV)
	pf.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logger.Info("read points", "file", in, "count", len(points))

	if len(highlights) == 0 {
		var hl labelmap.Highlighting = labelmap.None{}
		if keyed != nil {
			hl = keyed
		}
		return render.ToFile(out, points, hl, opts)
	}

	type job struct {
		out string
		hl  labelmap.Highlighting
	}
	var todo []job
	seen := make(map[string]bool)
	for _, fname := range highlights {
		stem, labels, err := dataset.ReadLabelFile(fname)
		if err != nil {
			return err
		}
		target := out
		if len(highlights) > 1 {
			target = filepath.Join(filepath.Dir(out), stem+filepath.Ext(out))
		}
		if seen[target] {
			return fmt.Errorf("%s: output %s written twice", fname, target)
		}
		seen[target] = true
		todo = append(todo, job{out: target, hl: highlighting(labels, keyed)})
	}

	g := &errgroup.Group{}
	g.SetLimit(max(*jobs, 1))
	for _, j := range todo {
		g.Go(func() error {
			o := *opts
			o.Logger = logger.With("output", j.out)
			if err := render.ToFile(j.out, points, j.hl, &o); err != nil {
				return fmt.Errorf("%s: %w", j.out, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// highlighting combines a highlight list with the label colours from a
// style file.  Only the listed labels are highlighted.
func highlighting(labels []string, keyed labelmap.Keyed) labelmap.Highlighting {
	set := labelmap.NewSet(labels...)
	if keyed == nil {
		return set
	}
	res := make(labelmap.Keyed, len(set))
	def := render.DefaultOptions().HighlightInk
	for l := range set {
		if c, ok := keyed[l]; ok {
			res[l] = c
		} else {
			res[l] = def
		}
	}
	return res
}
