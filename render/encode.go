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

package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"seehuhn.de/go/labelmap"
)

type encoder func(w io.Writer, img image.Image) error

var encoders = map[string]encoder{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Encode writes img in the lossless format given by a file extension
// such as ".png".
func Encode(w io.Writer, img image.Image, ext string) error {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	return enc(w, img)
}

// ToFile renders the points and writes the result to fname.
// The file format is chosen by the file name extension: PNG, BMP and TIFF
// files contain the rendered image, PDF files a vector version of the
// same layout.
//
// Unsupported extensions are detected before any work is done.  The file
// is only created once rendering has succeeded.
func ToFile(fname string, points []labelmap.Point, hl labelmap.Highlighting, opts *Options) error {
	ext := strings.ToLower(filepath.Ext(fname))
	if ext == ".pdf" {
		return WritePDF(fname, points, hl, opts)
	}
	enc, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}

	img, err := Render(points, hl, opts)
	if err != nil {
		return err
	}
	if opts != nil {
		opts.logger().Info("writing image", "file", fname)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	err = enc(w, img)
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		f.Close()
		os.Remove(fname)
		return err
	}
	return f.Close()
}
