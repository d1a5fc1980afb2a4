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

	"seehuhn.de/go/labelmap/dataset"
)

// runSplit reads inprefix.cats and inprefix.words and writes the words
// of each category to a separate file in outdir.
func runSplit(logger *slog.Logger, args []string) error {
	flags := flag.NewFlagSet("split", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: labelmap split inprefix outdir\n")
	}
	if err := parseArgs(flags, args, 2); err != nil {
		return err
	}
	prefix, dir := flags.Arg(0), flags.Arg(1)

	cats, err := os.Open(prefix + ".cats")
	if err != nil {
		return err
	}
	defer cats.Close()
	words, err := os.Open(prefix + ".words")
	if err != nil {
		return err
	}
	defer words.Close()

	if err := dataset.SplitCategories(cats, words, dir); err != nil {
		return err
	}
	logger.Info("split words", "input", prefix, "output", dir)
	return nil
}
