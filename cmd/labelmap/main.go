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

// Command labelmap selects labelled vectors and renders labelled points.
//
// Usage:
//
//	labelmap sample [flags] vectors out
//	labelmap render [flags] points out
//	labelmap split inprefix outdir
//
// The 2D projection of the sampled vectors is computed by an external
// tool, which must write the points in the format read by "render".
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
)

// errUsage is returned by a sub-command after it has printed its usage
// message.
var errUsage = errors.New("invalid arguments")

// fileList is a repeatable command line flag.
type fileList []string

func (l *fileList) String() string {
	return strings.Join(*l, ",")
}

func (l *fileList) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// parseArgs parses the flags of a sub-command and checks the number of
// remaining arguments.
func parseArgs(flags *flag.FlagSet, args []string, n int) error {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if flags.NArg() != n {
		flags.Usage()
		return errUsage
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] args...\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  sample   select labelled vectors, keeping all highlighted labels")
	fmt.Fprintln(os.Stderr, "  render   draw labelled points as an image")
	fmt.Fprintln(os.Stderr, "  split    split a word list by category")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for the flags of a command.\n", os.Args[0])
}

func main() {
	log.SetFlags(0)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "sample":
		err = runSample(logger, args)
	case "render":
		err = runRender(logger, args)
	case "split":
		err = runSplit(logger, args)
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		// pass
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}
