/*
 * files.go, part of tsi.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package tsi

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression is the way a tsi file is compressed on disk.
type Compression int

const (
	Plain Compression = iota
	Gzip
	Zstd
)

// CompressionFor returns the compression implied by the extension of the
// file name: ".gz" for gzip, ".zst" or ".zstd" for zstandard, and no
// compression for anything else.
func CompressionFor(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	}
	return Plain
}

//zstd's Decoder has a Close with no return value, so it doesn't make
//an io.ReadCloser by itself.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func newDecompressor(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		g, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return g, nil
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{d}, nil
	}
	return io.NopCloser(r), nil
}

func newCompressor(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		g, err := gzip.NewWriterLevel(w, gzip.DefaultCompression)
		if err != nil {
			return nil, err
		}
		return g, nil
	case Zstd:
		z, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	return nopWriteCloser{w}, nil
}

// FileRead reads the tsi file name, decompressing it first if its
// extension says so (see CompressionFor).
func FileRead(name string) (*Mesh, error) {
	var R Reader
	return R.FileRead(name)
}

// FileRead is like the package-level FileRead, but uses the receiver to parse.
func (R *Reader) FileRead(name string) (*Mesh, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{Kind: IOError, message: "unable to open file", fname: name, deco: []string{"FileRead"}, err: err}
	}
	defer f.Close()
	dec, err := newDecompressor(CompressionFor(name), bufio.NewReader(f))
	if err != nil {
		return nil, &Error{Kind: IOError, message: "unable to decompress file", fname: name, deco: []string{"FileRead"}, err: err}
	}
	defer dec.Close()
	M, err := R.Read(dec)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.fname = name
		}
		return nil, errDecorate(err, "FileRead")
	}
	return M, nil
}

// FileWrite writes M to the file name, which will be created, or truncated
// if it exists. The file is compressed if its extension says so
// (see CompressionFor).
func FileWrite(name string, M *Mesh) error {
	var W Writer
	return W.FileWrite(name, M)
}

// FileWrite is like the package-level FileWrite, but uses the receiver to write.
func (W *Writer) FileWrite(name string, M *Mesh) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return &Error{Kind: IOError, message: "unable to create file", fname: name, deco: []string{"FileWrite"}, err: err}
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = &Error{Kind: IOError, message: "unable to close file", fname: name, deco: []string{"FileWrite"}, err: cerr}
		}
	}()
	comp, err := newCompressor(CompressionFor(name), f)
	if err != nil {
		return &Error{Kind: IOError, message: "unable to set up compression", fname: name, deco: []string{"FileWrite"}, err: err}
	}
	if err = W.Write(comp, M); err != nil {
		comp.Close()
		return &Error{Kind: IOError, message: "unable to write mesh", fname: name, deco: []string{"FileWrite"}, err: err}
	}
	if err = comp.Close(); err != nil {
		return &Error{Kind: IOError, message: "unable to finish compressed stream", fname: name, deco: []string{"FileWrite"}, err: err}
	}
	return nil
}
