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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// SplitCategories distributes words into one file per category.
//
// The n-th line of cats holds the integer category of the n-th line of
// words.  Extra lines in the longer input are ignored.  The directory dir
// is created and must not exist beforehand.  The words of category c are
// written to dir/%02d, in input order.
func SplitCategories(cats, words io.Reader, dir string) error {
	bins := make(map[int][]string)
	cs := newScanner(cats)
	ws := newScanner(words)
	for lineNo := 1; cs.Scan() && ws.Scan(); lineNo++ {
		c, err := strconv.Atoi(strings.TrimSpace(cs.Text()))
		if err != nil {
			return fmt.Errorf("category line %d: %w: %q", lineNo, ErrSyntax, cs.Text())
		}
		bins[c] = append(bins[c], ws.Text())
	}
	if err := cs.Err(); err != nil {
		return err
	}
	if err := ws.Err(); err != nil {
		return err
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return err
	}

	keys := make([]int, 0, len(bins))
	for c := range bins {
		keys = append(keys, c)
	}
	slices.Sort(keys)
	for _, c := range keys {
		if err := writeLines(filepath.Join(dir, fmt.Sprintf("%02d", c)), bins[c]); err != nil {
			return err
		}
	}
	return nil
}

func writeLines(fname string, lines []string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
